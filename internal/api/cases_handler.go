// File path: internal/api/cases_handler.go
package api

import (
	"context"
	"net/http"

	"github.com/nicodishanthj/casemate/internal/casebook"
)

func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := s.store.ListCases(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]caseSummary, 0, len(cases))
	for _, c := range cases {
		out = append(out, newCaseSummary(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	c, err := s.store.GetCase(r.Context(), id)
	if err != nil {
		respondError(w, describe(err, "Case"))
		return
	}
	writeJSON(w, http.StatusOK, newCaseDetail(c))
}

func (s *Server) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	var req caseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	id, err := s.store.CreateCase(r.Context(), casebook.CaseInput{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Detective:        req.Detective,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

// handleUpdateCase takes the case identifier from the query string.
func (s *Server) handleUpdateCase(w http.ResponseWriter, r *http.Request) {
	id, err := parseID("case_id", r.URL.Query().Get("case_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	var req casePatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	patch := casebook.CasePatch{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Detective:        req.Detective,
	}
	if err := s.store.UpdateCase(r.Context(), id, patch); err != nil {
		respondError(w, describe(err, "Case"))
		return
	}
	writeSuccess(w)
}

func (s *Server) handleDeleteCase(w http.ResponseWriter, r *http.Request) {
	var req caseRefRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	id, err := parseID("caseid", req.CaseID)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.store.DeleteCase(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeSuccess(w)
}

// requireCase resolves a caseid field and checks the case exists before a
// child row is written.
func (s *Server) requireCase(ctx context.Context, raw string) (string, error) {
	id, err := parseID("caseid", raw)
	if err != nil {
		return "", err
	}
	if _, err := s.store.GetCase(ctx, id); err != nil {
		return "", describe(err, "Case")
	}
	return id, nil
}

// listScope reads the optional case filter from the query string, or from a
// {"caseid": ...} body on POST. A named case must exist.
func (s *Server) listScope(r *http.Request) (string, error) {
	if r.Method == http.MethodPost {
		var req caseRefRequest
		if err := decodeJSON(r, &req); err != nil {
			return "", err
		}
		return s.requireCase(r.Context(), req.CaseID)
	}
	id, err := parseOptionalID("case_id", r.URL.Query().Get("case_id"))
	if err != nil || id == "" {
		return id, err
	}
	return s.requireCase(r.Context(), id)
}
