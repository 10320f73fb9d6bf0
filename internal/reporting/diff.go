package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/datalint/datalint/internal/ir"
)

// Diffing two runs of the same data set shows quality drift: defects that
// appeared and defects that were fixed between base and head.

type diffPayload struct {
	BaseID   string        `json:"base_id"`
	HeadID   string        `json:"head_id"`
	Summary  diffSummary   `json:"summary"`
	New      []diffFinding `json:"new"`
	Resolved []diffFinding `json:"resolved"`
}

type diffSummary struct {
	NewCount      int `json:"new"`
	ResolvedCount int `json:"resolved"`
}

type diffFinding struct {
	Check   string `json:"check"`
	Index   int    `json:"index"`
	Key     string `json:"key"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
}

func WriteDiffJSON(baseID, headID, outDir string, base, head *ir.Run) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	bm := map[string]ir.Finding{}
	hm := map[string]ir.Finding{}
	for _, f := range base.Findings {
		bm[keyOf(f)] = f
	}
	for _, f := range head.Findings {
		hm[keyOf(f)] = f
	}

	var added []diffFinding
	var resolved []diffFinding
	for k, hf := range hm {
		if _, ok := bm[k]; !ok {
			added = append(added, asDiff(hf))
		}
	}
	for k, bf := range bm {
		if _, ok := hm[k]; !ok {
			resolved = append(resolved, asDiff(bf))
		}
	}

	sort.Slice(added, func(i, j int) bool { return diffLess(added[i], added[j]) })
	sort.Slice(resolved, func(i, j int) bool { return diffLess(resolved[i], resolved[j]) })

	payload := diffPayload{
		BaseID: baseID, HeadID: headID,
		Summary: diffSummary{
			NewCount:      len(added),
			ResolvedCount: len(resolved),
		},
		New:      added,
		Resolved: resolved,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}

// keyOf is the logical identity of a finding: check, field key and value.
// Record index is excluded; row positions shift between extracts of the
// same data set.
func keyOf(f ir.Finding) string {
	sb := strings.Builder{}
	sb.WriteString(f.Check)
	sb.WriteByte('|')
	sb.WriteString(f.Key)
	sb.WriteByte('|')
	sb.WriteString(f.Value)
	return sb.String()
}

func asDiff(f ir.Finding) diffFinding {
	return diffFinding{
		Check:   f.Check,
		Index:   f.Index,
		Key:     f.Key,
		Value:   f.Value,
		Message: f.Message,
	}
}

func diffLess(a, b diffFinding) bool {
	if a.Check != b.Check {
		return a.Check < b.Check
	}
	if a.Index != b.Index {
		return a.Index < b.Index
	}
	if a.Key != b.Key {
		return a.Key < b.Key
	}
	return a.Value < b.Value
}
