package scan

import (
	"strings"

	"github.com/datalint/datalint/internal/ir"
	"github.com/datalint/datalint/internal/storage"
)

// ApplyWaivers filters out findings that match any active waiver.
// Returns (kept, waivedCount).
func ApplyWaivers(in []ir.Finding, waivers []storage.Waiver) ([]ir.Finding, int) {
	if len(waivers) == 0 || len(in) == 0 {
		return in, 0
	}
	var out []ir.Finding
	waived := 0
nextFinding:
	for _, f := range in {
		for _, w := range waivers {
			if !strings.EqualFold(strings.TrimSpace(f.Check), strings.TrimSpace(w.Check)) {
				continue
			}
			// Keys are JSON field names: exact, case-sensitive match.
			if w.Key != "" && f.Key != w.Key {
				continue
			}
			if w.PatternSub != "" {
				ps := strings.ToUpper(w.PatternSub)
				if !strings.Contains(strings.ToUpper(f.Value), ps) &&
					!strings.Contains(strings.ToUpper(f.Message), ps) {
					continue
				}
			}
			waived++
			continue nextFinding
		}
		out = append(out, f)
	}
	return out, waived
}
