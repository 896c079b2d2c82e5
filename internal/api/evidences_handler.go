// File path: internal/api/evidences_handler.go
package api

import (
	"net/http"

	"github.com/nicodishanthj/casemate/internal/casebook"
)

func (s *Server) handleListEvidence(w http.ResponseWriter, r *http.Request) {
	caseID, err := s.listScope(r)
	if err != nil {
		respondError(w, err)
		return
	}
	items, err := s.store.ListEvidence(r.Context(), caseID)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]evidenceView, 0, len(items))
	for _, e := range items {
		out = append(out, newEvidenceView(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetEvidence(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	e, err := s.store.GetEvidence(r.Context(), id)
	if err != nil {
		respondError(w, describe(err, "Evidence"))
		return
	}
	writeJSON(w, http.StatusOK, newEvidenceView(e))
}

func (s *Server) handleCreateEvidence(w http.ResponseWriter, r *http.Request) {
	var req evidenceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	in := casebook.EvidenceInput{
		CaseID:      req.CaseID,
		Name:        req.Name,
		Status:      req.Status,
		Place:       req.Place,
		Description: req.Description,
	}
	if err := in.Validate(); err != nil {
		respondError(w, err)
		return
	}
	suspects, err := parseIDs("suspects", req.Suspects)
	if err != nil {
		respondError(w, err)
		return
	}
	in.Suspects = suspects
	if in.CaseID, err = s.requireCase(r.Context(), req.CaseID); err != nil {
		respondError(w, err)
		return
	}
	id, err := s.store.CreateEvidence(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleUpdateEvidence(w http.ResponseWriter, r *http.Request) {
	var req evidencePatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	id, err := parseID("id", req.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	patch := casebook.EvidencePatch{
		Name:        req.Name,
		Status:      req.Status,
		Place:       req.Place,
		Description: req.Description,
	}
	if req.Suspects != nil {
		suspects, err := parseIDs("suspects", *req.Suspects)
		if err != nil {
			respondError(w, err)
			return
		}
		patch.Suspects = &suspects
	}
	if err := s.store.UpdateEvidence(r.Context(), id, patch); err != nil {
		respondError(w, describe(err, "Evidence"))
		return
	}
	writeSuccess(w)
}

func (s *Server) handleDeleteEvidence(w http.ResponseWriter, r *http.Request) {
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
	if err := s.store.DeleteEvidence(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeSuccess(w)
}
