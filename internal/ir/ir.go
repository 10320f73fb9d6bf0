package ir

import (
	"fmt"
	"hash/crc32"
	"time"
)

const Version = "1.0"

// Run is one validation pass over a JSON data set, as persisted and
// reported.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Source    string    `json:"source,omitempty"`        // JSON input path or "api"
	SchemaSrc string    `json:"schema_source,omitempty"` // DDL input path, if any
	IRVersion string    `json:"ir_version,omitempty"`

	Summary  Summary   `json:"summary"`
	Findings []Finding `json:"findings,omitempty"`
}

// Summary carries per-run counts for listings and reports.
type Summary struct {
	Records         int   `json:"records"`
	EmptyValues     int   `json:"empty_values"`
	InvalidNumerics int   `json:"invalid_numerics"`
	Waived          int   `json:"waived,omitempty"`
	EmptyMS         int64 `json:"empty_ms"`
	NumericMS       int64 `json:"numeric_ms"`
}

// Finding is one reported data defect: an empty value or a value that fails
// numeric conformance, tied to a record index and field key.
type Finding struct {
	ID      string `json:"id"`
	Check   string `json:"check"`
	Index   int    `json:"index"`
	Key     string `json:"key"`
	Value   string `json:"value,omitempty"` // offending value, textual form
	Message string `json:"message"`
}

// NewFinding builds a Finding with a content-derived ID so the same defect
// gets the same ID across runs.
func NewFinding(check string, index int, key, value, message string) Finding {
	data := fmt.Sprintf("%s|%d|%s|%s", check, index, key, value)
	sum := crc32.ChecksumIEEE([]byte(data))
	return Finding{
		ID:      fmt.Sprintf("%s-%08x", check, sum),
		Check:   check,
		Index:   index,
		Key:     key,
		Value:   value,
		Message: message,
	}
}
