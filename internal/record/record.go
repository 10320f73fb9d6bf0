// Package record parses JSON text into an array of records whose fields
// keep their document order. Scans over records must report findings in
// encounter order, so the usual map-based decoding is not enough.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Record is one element of the input array, identified by its zero-based
// position. Object is false for array elements that are not JSON objects;
// such records carry no fields and are skipped by scans.
type Record struct {
	Index  int
	Object bool
	Fields []Field
}

// Field is one key/value pair of an object record, in document order.
type Field struct {
	Key   string
	Value Value
}

// ParseArray parses text as JSON and returns its records. Malformed JSON is
// an error. Valid JSON whose top level is not an array yields no records and
// no error; callers that want stricter shape handling can tell the two cases
// apart by the nil slice with nil error.
func ParseArray(text string) ([]Record, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	var top json.RawMessage
	if err := dec.Decode(&top); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level JSON value")
	}
	if kindOf(top) != KindArray {
		return nil, nil
	}

	arr := json.NewDecoder(bytes.NewReader(top))
	if _, err := arr.Token(); err != nil { // opening '['
		return nil, err
	}
	var records []Record
	for arr.More() {
		var elem json.RawMessage
		if err := arr.Decode(&elem); err != nil {
			return nil, err
		}
		rec := Record{Index: len(records)}
		if kindOf(elem) == KindObject {
			fields, err := parseObject(elem)
			if err != nil {
				return nil, err
			}
			rec.Object = true
			rec.Fields = fields
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseObject walks the object token stream so field order survives. Fields
// form a mapping: a duplicated key keeps its first position and the last
// value overwrites the earlier ones.
func parseObject(raw json.RawMessage) ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // opening '{'
		return nil, err
	}
	var fields []Field
	seen := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", tok)
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		if at, dup := seen[key]; dup {
			fields[at].Value = Value{raw: val}
			continue
		}
		seen[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: Value{raw: val}})
	}
	return fields, nil
}
