package api

import (
	"encoding/json"
	"net/http"

	"github.com/datalint/datalint/internal/scan"
)

// The scan endpoints carry their inputs as UTF-8 text in the request body;
// the server never touches the caller's filesystem.

type scanEmptyReq struct {
	JSON string `json:"json"`
}

type scanNumericReq struct {
	JSON string `json:"json"`
	SQL  string `json:"sql"`
}

// POST /api/v1/scan/empty
func (s *Server) handleScanEmpty(w http.ResponseWriter, r *http.Request) {
	var in scanEmptyReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.err(w, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := scan.FindEmptyValues(in.JSON)
	if err != nil {
		s.scanErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /api/v1/scan/numeric
func (s *Server) handleScanNumeric(w http.ResponseWriter, r *http.Request) {
	var in scanNumericReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.err(w, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := scan.FindInvalidNumerics(in.JSON, in.SQL)
	if err != nil {
		s.scanErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// scanErr maps the scan error taxonomy onto HTTP statuses, keeping each
// kind distinguishable in the payload.
func (s *Server) scanErr(w http.ResponseWriter, err error) {
	kind := scan.KindOf(err)
	code := http.StatusInternalServerError
	switch kind {
	case scan.KindJSON, scan.KindSQL:
		code = http.StatusUnprocessableEntity
	case scan.KindGeneric:
		code = http.StatusBadRequest
	}
	writeJSON(w, code, map[string]any{"error": err.Error(), "kind": kind.String()})
}
