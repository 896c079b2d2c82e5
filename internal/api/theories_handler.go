// File path: internal/api/theories_handler.go
package api

import (
	"net/http"

	"github.com/nicodishanthj/casemate/internal/casebook"
)

// handleListTheories returns a map keyed by theory id.
func (s *Server) handleListTheories(w http.ResponseWriter, r *http.Request) {
	caseID, err := s.listScope(r)
	if err != nil {
		respondError(w, err)
		return
	}
	theories, err := s.store.ListTheories(r.Context(), caseID)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make(map[string]theoryView, len(theories))
	for _, t := range theories {
		out[t.ID] = theoryView{Name: t.Name, Content: t.Content}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTheory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	t, err := s.store.GetTheory(r.Context(), id)
	if err != nil {
		respondError(w, describe(err, "Theory"))
		return
	}
	writeJSON(w, http.StatusOK, theoryDetail{ID: t.ID, CaseID: t.CaseID, theoryView: theoryView{Name: t.Name, Content: t.Content}})
}

func (s *Server) handleCreateTheory(w http.ResponseWriter, r *http.Request) {
	var req theoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	in := casebook.TheoryInput{CaseID: req.CaseID, Name: req.Name, Content: req.Content}
	if err := in.Validate(); err != nil {
		respondError(w, err)
		return
	}
	var err error
	if in.CaseID, err = s.requireCase(r.Context(), req.CaseID); err != nil {
		respondError(w, err)
		return
	}
	id, err := s.store.CreateTheory(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleUpdateTheory(w http.ResponseWriter, r *http.Request) {
	var req theoryPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	id, err := parseID("id", req.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.store.UpdateTheory(r.Context(), id, casebook.TheoryPatch{Name: req.Name, Content: req.Content}); err != nil {
		respondError(w, describe(err, "Theory"))
		return
	}
	writeSuccess(w)
}

func (s *Server) handleDeleteTheory(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	id, err := parseID("id", req.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.store.DeleteTheory(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeSuccess(w)
}
