// Package scan holds the two data-quality checks: empty values and numeric
// conformance against a CREATE TABLE schema. Scans are pure functions over
// their input text; concurrent invocations share no state.
package scan

import (
	"strconv"
	"time"

	"github.com/datalint/datalint/internal/ddl"
	"github.com/datalint/datalint/internal/record"
)

// Outcome wraps a finding list with the elapsed wall-clock duration.
type Outcome[T any] struct {
	Data       []T   `json:"data"`
	DurationMS int64 `json:"duration_ms"`
}

// EmptyValue identifies a record field whose value is null or a zero-length
// string.
type EmptyValue struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
}

// InvalidNumeric identifies a numeric-designated field whose value is
// neither a JSON number nor a string parseable as a float.
type InvalidNumeric struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FindEmptyValues scans jsonText for null or empty-string field values.
// Malformed JSON fails the whole scan; a valid non-array top level yields an
// empty finding list.
func FindEmptyValues(jsonText string) (Outcome[EmptyValue], error) {
	start := time.Now()
	records, err := record.ParseArray(jsonText)
	if err != nil {
		return Outcome[EmptyValue]{}, JSONError(err)
	}
	data := emptyValues(records)
	return Outcome[EmptyValue]{Data: data, DurationMS: time.Since(start).Milliseconds()}, nil
}

// FindInvalidNumerics derives the numeric column set from sqlText, then
// scans jsonText for values in those columns that fail numeric parsing. The
// DDL is parsed first: a bad schema fails the scan before the JSON is ever
// touched.
func FindInvalidNumerics(jsonText, sqlText string) (Outcome[InvalidNumeric], error) {
	start := time.Now()
	table, err := ddl.Parse(sqlText)
	if err != nil {
		return Outcome[InvalidNumeric]{}, SQLError(err)
	}
	records, err := record.ParseArray(jsonText)
	if err != nil {
		return Outcome[InvalidNumeric]{}, JSONError(err)
	}
	data := invalidNumerics(records, table.NumericColumns())
	return Outcome[InvalidNumeric]{Data: data, DurationMS: time.Since(start).Milliseconds()}, nil
}

// EmptyValuesIn scans already-parsed records, for callers that parse the
// JSON once and run both checks over it.
func EmptyValuesIn(records []record.Record) Outcome[EmptyValue] {
	start := time.Now()
	data := emptyValues(records)
	return Outcome[EmptyValue]{Data: data, DurationMS: time.Since(start).Milliseconds()}
}

// InvalidNumericsIn is the already-parsed counterpart of
// FindInvalidNumerics.
func InvalidNumericsIn(records []record.Record, table *ddl.CreateTable) Outcome[InvalidNumeric] {
	start := time.Now()
	data := invalidNumerics(records, table.NumericColumns())
	return Outcome[InvalidNumeric]{Data: data, DurationMS: time.Since(start).Milliseconds()}
}

func emptyValues(records []record.Record) []EmptyValue {
	out := []EmptyValue{}
	for _, rec := range records {
		if !rec.Object {
			continue
		}
		for _, f := range rec.Fields {
			if f.Value.IsNull() {
				out = append(out, EmptyValue{Index: rec.Index, Key: f.Key})
				continue
			}
			if s, ok := f.Value.Str(); ok && s == "" {
				out = append(out, EmptyValue{Index: rec.Index, Key: f.Key})
			}
		}
	}
	return out
}

func invalidNumerics(records []record.Record, numeric map[string]bool) []InvalidNumeric {
	out := []InvalidNumeric{}
	for _, rec := range records {
		if !rec.Object {
			continue
		}
		for _, f := range rec.Fields {
			if !numeric[f.Key] {
				continue
			}
			if f.Value.IsNumber() {
				continue
			}
			if s, ok := f.Value.Str(); ok {
				if _, err := strconv.ParseFloat(s, 64); err != nil {
					out = append(out, InvalidNumeric{Index: rec.Index, Key: f.Key, Value: s})
				}
				continue
			}
			// null, bool, array, object: always a finding, rendered as JSON
			out = append(out, InvalidNumeric{Index: rec.Index, Key: f.Key, Value: f.Value.Text()})
		}
	}
	return out
}
