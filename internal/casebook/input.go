// File path: internal/casebook/input.go
package casebook

import "strings"

// CaseInput carries the fields accepted when creating a case.
type CaseInput struct {
	Name             string
	ShortDescription *string
	Detective        *string
}

// Validate checks the mandatory fields of a new case.
func (in CaseInput) Validate() error {
	if blank(in.Name) {
		return missing("name")
	}
	return nil
}

// PartyInput carries the fields accepted when creating a party.
type PartyInput struct {
	CaseID      string
	Name        string
	Role        string
	Description *string
	Alibi       *string
}

// Validate checks the mandatory fields of a new party.
func (in PartyInput) Validate() error {
	switch {
	case blank(in.CaseID):
		return missing("caseid")
	case blank(in.Name):
		return missing("name")
	case blank(in.Role):
		return missing("role")
	}
	return nil
}

// EvidenceInput carries the fields accepted when creating evidence. A nil
// Status falls back to DefaultEvidenceStatus.
type EvidenceInput struct {
	CaseID      string
	Name        string
	Status      *string
	Place       *string
	Description *string
	Suspects    []string
}

// Validate checks the mandatory fields of new evidence.
func (in EvidenceInput) Validate() error {
	switch {
	case blank(in.CaseID):
		return missing("caseid")
	case blank(in.Name):
		return missing("name")
	}
	return nil
}

// TheoryInput carries the fields accepted when creating a theory.
type TheoryInput struct {
	CaseID  string
	Name    string
	Content *string
}

// Validate checks the mandatory fields of a new theory.
func (in TheoryInput) Validate() error {
	switch {
	case blank(in.CaseID):
		return missing("caseid")
	case blank(in.Name):
		return missing("name")
	}
	return nil
}

// TimelineEventInput carries the fields accepted when creating a timeline
// event. Timestamp is milliseconds since the Unix epoch.
type TimelineEventInput struct {
	CaseID      string
	Timestamp   *int64
	Status      string
	Name        string
	Place       *string
	Description *string
}

// Validate checks the mandatory fields of a new timeline event.
func (in TimelineEventInput) Validate() error {
	switch {
	case blank(in.CaseID):
		return missing("caseid")
	case in.Timestamp == nil:
		return missing("timestamp")
	case blank(in.Status):
		return missing("status")
	case blank(in.Name):
		return missing("name")
	}
	return nil
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}
