package golden

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/datalint/datalint/internal/ir"
	"github.com/datalint/datalint/internal/record"
	"github.com/datalint/datalint/internal/scan"
)

var update = flag.Bool("update", false, "update golden snapshot")

const goldenFile = "expected.json"

const sampleOrders = `[
  {"id": 1, "customer": "Ada", "amount": "19.99", "quantity": 2, "note": "first order"},
  {"id": "two", "customer": "", "amount": null, "quantity": "3", "note": null},
  {"id": 3, "customer": "Grace", "amount": true, "quantity": 4.5, "note": ""}
]`

const sampleSchema = `CREATE TABLE orders (
  id INT PRIMARY KEY,
  customer VARCHAR(64),
  amount DECIMAL(10,2),
  quantity INTEGER NOT NULL,
  note TEXT
);`

func TestGolden_OrdersSnapshot(t *testing.T) {
	empty, err := scan.FindEmptyValues(sampleOrders)
	if err != nil {
		t.Fatalf("empty scan: %v", err)
	}
	invalid, err := scan.FindInvalidNumerics(sampleOrders, sampleSchema)
	if err != nil {
		t.Fatalf("numeric scan: %v", err)
	}
	records, err := record.ParseArray(sampleOrders)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	run := ir.Run{
		ID:        "run-golden", // stable id for snapshot
		Source:    "samples/orders-small/orders.json",
		SchemaSrc: "samples/orders-small/schema.sql",
		IRVersion: ir.Version,
	}
	run.Summary = ir.Summary{
		Records:         len(records),
		EmptyValues:     len(empty.Data),
		InvalidNumerics: len(invalid.Data),
	}
	run.Findings = scan.CollectFindings(empty.Data, invalid.Data)

	// Normalize volatile fields before snapshot
	norm := normalize(run)

	// Serialize pretty
	got, err := json.MarshalIndent(norm, "", "  ")
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}

	if *update {
		if err := os.WriteFile(goldenFile, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		t.Logf("updated %s", goldenFile)
		return
	}

	want, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("read golden (%s): %v\nRun with: go test ./test/golden -run TestGolden_OrdersSnapshot -args -update", goldenFile, err)
	}

	if !bytes.Equal(bytes.TrimSpace(got), bytes.TrimSpace(want)) {
		tmp := filepath.Join(t.TempDir(), "got.json")
		_ = os.WriteFile(tmp, got, 0o644)
		t.Fatalf("golden mismatch.\n  golden: %s\n  actual: %s\nTip: update with\n  go test ./test/golden -run TestGolden_OrdersSnapshot -count=1 -args -update", goldenFile, tmp)
	}
}

type runLite struct {
	ID        string        `json:"id"`
	Source    string        `json:"source"`
	SchemaSrc string        `json:"schema_source"`
	IRVersion string        `json:"ir_version"`
	Summary   summaryLite   `json:"summary"`
	Findings  []findingLite `json:"findings"`
}

type summaryLite struct {
	Records         int `json:"records"`
	EmptyValues     int `json:"empty_values"`
	InvalidNumerics int `json:"invalid_numerics"`
}

type findingLite struct {
	Check   string `json:"check"`
	Index   int    `json:"index"`
	Key     string `json:"key"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// normalize drops volatile fields (finding IDs, timestamps, durations).
// Findings keep collection order, which is already deterministic.
func normalize(run ir.Run) runLite {
	finds := make([]findingLite, 0, len(run.Findings))
	for _, f := range run.Findings {
		finds = append(finds, findingLite{
			Check:   f.Check,
			Index:   f.Index,
			Key:     f.Key,
			Value:   f.Value,
			Message: f.Message,
		})
	}
	return runLite{
		ID:        run.ID,
		Source:    run.Source,
		SchemaSrc: run.SchemaSrc,
		IRVersion: run.IRVersion,
		Summary: summaryLite{
			Records:         run.Summary.Records,
			EmptyValues:     run.Summary.EmptyValues,
			InvalidNumerics: run.Summary.InvalidNumerics,
		},
		Findings: finds,
	}
}
