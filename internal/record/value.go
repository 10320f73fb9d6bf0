package record

import (
	"bytes"
	"encoding/json"
)

// Kind is the JSON type of a field value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a single field value, kept as raw JSON so its exact textual form
// is available to findings.
type Value struct {
	raw json.RawMessage
}

func (v Value) Kind() Kind { return kindOf(v.raw) }

func (v Value) IsNull() bool   { return v.Kind() == KindNull }
func (v Value) IsNumber() bool { return v.Kind() == KindNumber }

// Str returns the decoded Go string and true when the value is a JSON
// string.
func (v Value) Str() (string, bool) {
	if v.Kind() != KindString {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Text renders the value as compact JSON: null, true, 5, "x", [1,2].
func (v Value) Text() string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, v.raw); err != nil {
		return string(v.raw)
	}
	return buf.String()
}

// kindOf classifies a raw JSON value by its first non-space byte. The raw
// bytes come from a successful decode, so the first byte is decisive.
func kindOf(raw json.RawMessage) Kind {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return KindNull
	}
	switch trimmed[0] {
	case 'n':
		return KindNull
	case 't', 'f':
		return KindBool
	case '"':
		return KindString
	case '[':
		return KindArray
	case '{':
		return KindObject
	default:
		return KindNumber
	}
}
