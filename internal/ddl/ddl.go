// Package ddl extracts column metadata from a single SQL CREATE TABLE
// statement. It is not a general SQL parser: it recognizes just enough of
// the statement form to recover column names and their declared types.
package ddl

import "strings"

// Column is one declared column: its exact name (quoting stripped, case
// preserved) and the declared type text, e.g. "DECIMAL(10,2)".
type Column struct {
	Name string
	Type string
}

// CreateTable is the parsed form of a CREATE TABLE statement.
type CreateTable struct {
	Table   string
	Columns []Column
}

// numericHints are substrings that mark a lower-cased declared type as
// numeric-like. A substring match, not a type-system lookup: BIGINT,
// DOUBLE PRECISION and DECIMAL(10,2) all match; width, precision and
// signedness are not distinguished.
var numericHints = []string{"int", "numeric", "decimal", "float", "double"}

// NumericType reports whether a declared SQL type implies a numeric value
// domain.
func NumericType(declared string) bool {
	t := strings.ToLower(declared)
	for _, hint := range numericHints {
		if strings.Contains(t, hint) {
			return true
		}
	}
	return false
}

// NumericColumns returns the set of column names whose declared type is
// numeric-like. If a column name is declared more than once, the last
// declaration wins.
func (t *CreateTable) NumericColumns() map[string]bool {
	marks := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		marks[c.Name] = NumericType(c.Type)
	}
	set := make(map[string]bool, len(marks))
	for name, numeric := range marks {
		if numeric {
			set[name] = true
		}
	}
	return set
}
