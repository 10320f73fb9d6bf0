package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/datalint/datalint/internal/ir"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.CreateSchema(); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

func sampleRun(id string, started time.Time) ir.Run {
	return ir.Run{
		ID:        id,
		StartedAt: started,
		Source:    "testdata/data.json",
		SchemaSrc: "testdata/schema.sql",
		IRVersion: ir.Version,
		Summary:   ir.Summary{Records: 2, EmptyValues: 1, InvalidNumerics: 1},
		Findings: []ir.Finding{
			ir.NewFinding("EMPTY-VALUE", 0, "a", "", "field value is null or an empty string"),
			ir.NewFinding("INVALID-NUMERIC", 1, "b", "five", "value is not numeric"),
		},
	}
}

func TestSaveLoadRun(t *testing.T) {
	db := openTestDB(t)
	run := sampleRun("run-1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	if err := db.SaveRun(&run); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.LoadRun("run-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != run.ID || len(got.Findings) != 2 {
		t.Fatalf("loaded run mismatch: %+v", got)
	}
	if got.Summary.EmptyValues != 1 || got.Summary.InvalidNumerics != 1 {
		t.Fatalf("summary mismatch: %+v", got.Summary)
	}

	ok, err := db.HasRun("run-1")
	if err != nil || !ok {
		t.Fatalf("HasRun(run-1) = %v, %v", ok, err)
	}
	ok, err = db.HasRun("nope")
	if err != nil || ok {
		t.Fatalf("HasRun(nope) = %v, %v", ok, err)
	}
}

func TestSaveRun_UpsertRewritesFindings(t *testing.T) {
	db := openTestDB(t)
	run := sampleRun("run-1", time.Now().UTC())
	if err := db.SaveRun(&run); err != nil {
		t.Fatalf("save: %v", err)
	}
	run.Findings = run.Findings[:1]
	if err := db.SaveRun(&run); err != nil {
		t.Fatalf("resave: %v", err)
	}
	items, err := db.ListFindings("run-1", "")
	if err != nil {
		t.Fatalf("list findings: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected findings rewritten to 1, got %d", len(items))
	}
}

func TestListRunsAndLatest(t *testing.T) {
	db := openTestDB(t)
	r1 := sampleRun("run-1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	r2 := sampleRun("run-2", time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	if err := db.SaveRun(&r1); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveRun(&r2); err != nil {
		t.Fatal(err)
	}

	rows, err := db.ListRuns(10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "run-2" {
		t.Fatalf("expected newest first, got %+v", rows)
	}
	if rows[0].Findings != 2 {
		t.Fatalf("finding count = %d", rows[0].Findings)
	}

	latest, err := db.LoadLatestRun()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != "run-2" {
		t.Fatalf("latest = %s", latest.ID)
	}
}

func TestListFindings_CheckFilter(t *testing.T) {
	db := openTestDB(t)
	run := sampleRun("run-1", time.Now().UTC())
	if err := db.SaveRun(&run); err != nil {
		t.Fatal(err)
	}
	items, err := db.ListFindings("run-1", "EMPTY-VALUE")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Check != "EMPTY-VALUE" {
		t.Fatalf("filter: %+v", items)
	}
}

func TestWaiverLifecycle(t *testing.T) {
	db := openTestDB(t)
	exp := time.Now().Add(24 * time.Hour)
	id, err := db.CreateWaiver("EMPTY-VALUE", "notes", "", "migration backlog", "admin", exp)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	active, err := db.ListWaivers(true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].Check != "EMPTY-VALUE" || active[0].Key != "notes" {
		t.Fatalf("active waivers: %+v", active)
	}

	if err := db.RevokeWaiver(id); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	active, err = db.ListWaivers(true)
	if err != nil {
		t.Fatalf("list after revoke: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("revoked waiver still active: %+v", active)
	}
	all, err := db.ListWaivers(false)
	if err != nil || len(all) != 1 {
		t.Fatalf("all waivers: %+v, %v", all, err)
	}
	if all[0].RevokedAt == nil {
		t.Fatal("revoked_at not set")
	}
}

func TestUsersAndSessions(t *testing.T) {
	db := openTestDB(t)
	id, err := db.CreateUser("ana", "hash", "admin")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	u, hash, err := db.GetUserByUsername("ana")
	if err != nil || u.ID != id || hash != "hash" || u.Role != "admin" {
		t.Fatalf("get user: %+v, %q, %v", u, hash, err)
	}

	if err := db.CreateSession(id, "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create session: %v", err)
	}
	su, err := db.GetSession("tok")
	if err != nil || su.Username != "ana" {
		t.Fatalf("get session: %+v, %v", su, err)
	}
	if err := db.DeleteSession("tok"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := db.GetSession("tok"); err == nil {
		t.Fatal("session survived deletion")
	}
}
