// File path: internal/api/timelines_handler.go
package api

import (
	"net/http"

	"github.com/nicodishanthj/casemate/internal/casebook"
)

// handleListTimeline returns events oldest first.
func (s *Server) handleListTimeline(w http.ResponseWriter, r *http.Request) {
	caseID, err := s.listScope(r)
	if err != nil {
		respondError(w, err)
		return
	}
	events, err := s.store.ListTimelineEvents(r.Context(), caseID)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]timelineView, 0, len(events))
	for _, e := range events {
		out = append(out, newTimelineView(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTimelineEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	e, err := s.store.GetTimelineEvent(r.Context(), id)
	if err != nil {
		respondError(w, describe(err, "Timeline event"))
		return
	}
	writeJSON(w, http.StatusOK, newTimelineView(e))
}

func (s *Server) handleCreateTimelineEvent(w http.ResponseWriter, r *http.Request) {
	var req timelineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	in := casebook.TimelineEventInput{
		CaseID:      req.CaseID,
		Timestamp:   req.Timestamp,
		Status:      req.Status,
		Name:        req.Name,
		Place:       req.Place,
		Description: req.Description,
	}
	if err := in.Validate(); err != nil {
		respondError(w, err)
		return
	}
	var err error
	if in.CaseID, err = s.requireCase(r.Context(), req.CaseID); err != nil {
		respondError(w, err)
		return
	}
	id, err := s.store.CreateTimelineEvent(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleUpdateTimelineEvent(w http.ResponseWriter, r *http.Request) {
	var req timelinePatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	id, err := parseID("id", req.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	patch := casebook.TimelineEventPatch{
		Timestamp:   req.Timestamp,
		Place:       req.Place,
		Status:      req.Status,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.store.UpdateTimelineEvent(r.Context(), id, patch); err != nil {
		respondError(w, describe(err, "Timeline event"))
		return
	}
	writeSuccess(w)
}

func (s *Server) handleDeleteTimelineEvent(w http.ResponseWriter, r *http.Request) {
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
	if err := s.store.DeleteTimelineEvent(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeSuccess(w)
}
