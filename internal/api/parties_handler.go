// File path: internal/api/parties_handler.go
package api

import (
	"net/http"

	"github.com/nicodishanthj/casemate/internal/casebook"
)

// handleListParties answers both GET (optional case_id query) and POST
// ({"caseid": ...}) with a map keyed by party id.
func (s *Server) handleListParties(w http.ResponseWriter, r *http.Request) {
	caseID, err := s.listScope(r)
	if err != nil {
		respondError(w, err)
		return
	}
	parties, err := s.store.ListParties(r.Context(), caseID)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make(map[string]partyView, len(parties))
	for _, p := range parties {
		out[p.ID] = newPartyView(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetParty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	p, err := s.store.GetParty(r.Context(), id)
	if err != nil {
		respondError(w, describe(err, "Party"))
		return
	}
	writeJSON(w, http.StatusOK, partyDetail{ID: p.ID, CaseID: p.CaseID, partyView: newPartyView(p)})
}

func (s *Server) handleCreateParty(w http.ResponseWriter, r *http.Request) {
	var req partyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	in := casebook.PartyInput{
		CaseID:      req.CaseID,
		Name:        req.Name,
		Role:        req.Role,
		Description: req.Description,
		Alibi:       req.Alibi,
	}
	if err := in.Validate(); err != nil {
		respondError(w, err)
		return
	}
	caseID, err := s.requireCase(r.Context(), req.CaseID)
	if err != nil {
		respondError(w, err)
		return
	}
	in.CaseID = caseID
	id, err := s.store.CreateParty(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleUpdateParty(w http.ResponseWriter, r *http.Request) {
	var req partyPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	id, err := parseID("partyid", req.PartyID)
	if err != nil {
		respondError(w, err)
		return
	}
	patch := casebook.PartyPatch{
		Name:        req.Name,
		Role:        req.Role,
		Description: req.Description,
		Alibi:       req.Alibi,
	}
	if err := s.store.UpdateParty(r.Context(), id, patch); err != nil {
		respondError(w, describe(err, "Party"))
		return
	}
	writeSuccess(w)
}

func (s *Server) handleDeleteParty(w http.ResponseWriter, r *http.Request) {
	var req partyRefRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	id, err := parseID("partyid", req.PartyID)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.store.DeleteParty(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeSuccess(w)
}
