package scan

import (
	"github.com/datalint/datalint/internal/ir"
)

// Check identifiers, used in findings, waivers and the API inventory.
const (
	CheckEmptyValue     = "EMPTY-VALUE"
	CheckInvalidNumeric = "INVALID-NUMERIC"
)

// CheckInfo describes one check for inventory listings.
type CheckInfo struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
}

// Checks returns the check inventory in stable order.
func Checks() []CheckInfo {
	return []CheckInfo{
		{ID: CheckEmptyValue, Summary: "Field value is JSON null or an empty string."},
		{ID: CheckInvalidNumeric, Summary: "Value in a numeric-typed column is not a number and does not parse as one."},
	}
}

// CollectFindings folds the outcomes of both scans into run findings, in
// scan order: empty values first, then numeric conformance.
func CollectFindings(empty []EmptyValue, invalid []InvalidNumeric) []ir.Finding {
	var out []ir.Finding
	for _, e := range empty {
		out = append(out, ir.NewFinding(CheckEmptyValue, e.Index, e.Key, "",
			"field value is null or an empty string"))
	}
	for _, n := range invalid {
		out = append(out, ir.NewFinding(CheckInvalidNumeric, n.Index, n.Key, n.Value,
			"value is not numeric"))
	}
	return out
}
