package storage

import (
	"time"

	"github.com/datalint/datalint/internal/ir"
)

// ListRuns returns a lightweight list of runs with finding counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.source, r.schema_source, r.ir_version,
		       (SELECT COUNT(1) FROM findings f WHERE f.run_id = r.id) AS findings
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Source, &rr.SchemaSrc, &rr.IRVersion, &rr.Findings); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, startedAtStr); err == nil {
			rr.StartedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, startedAtStr); err2 == nil {
			rr.StartedAt = t2
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListFindings returns findings for a run, optionally filtered to one
// check. Order is stable: check, then record index, then key.
func (db *DB) ListFindings(runID, checkID string) ([]ir.Finding, error) {
	const q = `
		SELECT id, check_id, idx, key, value, message
		  FROM findings
		 WHERE run_id = ?
		   AND (? = '' OR check_id = ?)
		 ORDER BY check_id, idx, key, id`
	rows, err := db.conn.Query(q, runID, checkID, checkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ir.Finding
	for rows.Next() {
		var f ir.Finding
		if err := rows.Scan(&f.ID, &f.Check, &f.Index, &f.Key, &f.Value, &f.Message); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
