// File path: internal/api/types.go
package api

import (
	"fmt"

	"github.com/nicodishanthj/casemate/internal/casebook"
	"github.com/nicodishanthj/casemate/internal/common"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type idResponse struct {
	ID string `json:"id"`
}

type caseRefRequest struct {
	CaseID string `json:"caseid"`
}

type caseRequest struct {
	Name             string  `json:"name"`
	ShortDescription *string `json:"short_description"`
	Detective        *string `json:"detective"`
}

type casePatchRequest struct {
	Name             *string `json:"name"`
	ShortDescription *string `json:"short_description"`
	Detective        *string `json:"detective"`
}

type caseSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
}

type caseDetail struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	ShortDescription string  `json:"short_description"`
	Detective        *string `json:"detective"`
}

type partyRequest struct {
	CaseID      string  `json:"caseid"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Description *string `json:"description"`
	Alibi       *string `json:"alibi"`
}

type partyPatchRequest struct {
	PartyID     string  `json:"partyid"`
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	Description *string `json:"description"`
	Alibi       *string `json:"alibi"`
}

type partyRefRequest struct {
	PartyID string `json:"partyid"`
}

// partyView is keyed by party id in list responses.
type partyView struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Alibi       *string `json:"alibi"`
	Role        string  `json:"role"`
	Image       string  `json:"image"`
}

type partyDetail struct {
	ID     string `json:"id"`
	CaseID string `json:"case_id"`
	partyView
}

type evidenceRequest struct {
	CaseID      string   `json:"caseid"`
	Name        string   `json:"name"`
	Status      *string  `json:"status"`
	Place       *string  `json:"place"`
	Description *string  `json:"description"`
	Suspects    []string `json:"suspects"`
}

type evidencePatchRequest struct {
	ID          string    `json:"id"`
	Name        *string   `json:"name"`
	Status      *string   `json:"status"`
	Place       *string   `json:"place"`
	Description *string   `json:"description"`
	Suspects    *[]string `json:"suspects"`
}

type idRequest struct {
	ID string `json:"id"`
}

type evidenceView struct {
	ID          string   `json:"id"`
	CaseID      string   `json:"case_id"`
	Status      string   `json:"status"`
	Place       *string  `json:"place"`
	Description *string  `json:"description"`
	Name        string   `json:"name"`
	Suspects    []string `json:"suspects"`
}

type theoryRequest struct {
	CaseID  string  `json:"caseid"`
	Name    string  `json:"name"`
	Content *string `json:"content"`
}

type theoryPatchRequest struct {
	ID      string  `json:"id"`
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

// theoryView is keyed by theory id in list responses.
type theoryView struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type theoryDetail struct {
	ID     string `json:"id"`
	CaseID string `json:"case_id"`
	theoryView
}

type timelineRequest struct {
	CaseID      string  `json:"caseid"`
	Timestamp   *int64  `json:"timestamp"`
	Status      string  `json:"status"`
	Name        string  `json:"name"`
	Place       *string `json:"place"`
	Description *string `json:"description"`
}

type timelinePatchRequest struct {
	ID          string  `json:"id"`
	Timestamp   *int64  `json:"timestamp"`
	Place       *string `json:"place"`
	Status      *string `json:"status"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type timelineView struct {
	ID          string  `json:"id"`
	CaseID      string  `json:"case_id"`
	Timestamp   int64   `json:"timestamp"`
	Place       string  `json:"place"`
	Status      string  `json:"status"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type logsResponse struct {
	Entries []common.LogEntry `json:"entries"`
}

func newCaseSummary(c casebook.Case) caseSummary {
	return caseSummary{ID: c.ID, Name: c.Name, ShortDescription: deref(c.ShortDescription)}
}

func newCaseDetail(c casebook.Case) caseDetail {
	return caseDetail{ID: c.ID, Name: c.Name, ShortDescription: deref(c.ShortDescription), Detective: c.Detective}
}

func newPartyView(p casebook.Party) partyView {
	return partyView{
		Name:        p.Name,
		Description: p.Description,
		Alibi:       p.Alibi,
		Role:        p.Role,
		Image:       partyImagePath(p.ID),
	}
}

func partyImagePath(id string) string {
	return fmt.Sprintf("/api/parties/%s/image", id)
}

func newEvidenceView(e casebook.Evidence) evidenceView {
	suspects := e.Suspects
	if suspects == nil {
		suspects = []string{}
	}
	return evidenceView{
		ID:          e.ID,
		CaseID:      e.CaseID,
		Status:      e.Status,
		Place:       e.Place,
		Description: e.Description,
		Name:        e.Name,
		Suspects:    suspects,
	}
}

func newTimelineView(e casebook.TimelineEvent) timelineView {
	return timelineView{
		ID:          e.ID,
		CaseID:      e.CaseID,
		Timestamp:   casebook.MillisFromTime(e.Timestamp),
		Place:       e.Place,
		Status:      e.Status,
		Name:        e.Name,
		Description: e.Description,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
