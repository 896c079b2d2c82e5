// File path: internal/casebook/store.go

// Package casebook defines the investigation-board domain: cases and their
// parties, evidence, theories and timeline events, together with the storage
// contract the HTTP layer talks to.
//
// Create operations validate their input and return a *MissingFieldError
// before touching storage. Update operations apply only the fields present in
// the patch. Delete operations succeed for unknown identifiers. Identifiers
// are canonical UUID strings.
package casebook

import "context"

// CaseStore persists cases. DeleteCase removes the case's parties, evidence,
// theories and timeline events before the case itself.
type CaseStore interface {
	ListCases(ctx context.Context) ([]Case, error)
	GetCase(ctx context.Context, id string) (Case, error)
	CreateCase(ctx context.Context, in CaseInput) (string, error)
	UpdateCase(ctx context.Context, id string, patch CasePatch) error
	DeleteCase(ctx context.Context, id string) error
}

// PartyStore persists parties. An empty caseID lists every party.
type PartyStore interface {
	ListParties(ctx context.Context, caseID string) ([]Party, error)
	GetParty(ctx context.Context, id string) (Party, error)
	CreateParty(ctx context.Context, in PartyInput) (string, error)
	UpdateParty(ctx context.Context, id string, patch PartyPatch) error
	DeleteParty(ctx context.Context, id string) error
}

// ImageStore keeps the optional photo of a party. PartyImage returns
// ErrNotFound both when the party is unknown and when it has no image.
type ImageStore interface {
	PartyImage(ctx context.Context, partyID string) ([]byte, error)
	SetPartyImage(ctx context.Context, partyID string, data []byte) error
	ClearPartyImage(ctx context.Context, partyID string) error
}

type EvidenceStore interface {
	ListEvidence(ctx context.Context, caseID string) ([]Evidence, error)
	GetEvidence(ctx context.Context, id string) (Evidence, error)
	CreateEvidence(ctx context.Context, in EvidenceInput) (string, error)
	UpdateEvidence(ctx context.Context, id string, patch EvidencePatch) error
	DeleteEvidence(ctx context.Context, id string) error
}

type TheoryStore interface {
	ListTheories(ctx context.Context, caseID string) ([]Theory, error)
	GetTheory(ctx context.Context, id string) (Theory, error)
	CreateTheory(ctx context.Context, in TheoryInput) (string, error)
	UpdateTheory(ctx context.Context, id string, patch TheoryPatch) error
	DeleteTheory(ctx context.Context, id string) error
}

// TimelineStore persists timeline events. ListTimelineEvents always returns
// events in ascending timestamp order.
type TimelineStore interface {
	ListTimelineEvents(ctx context.Context, caseID string) ([]TimelineEvent, error)
	GetTimelineEvent(ctx context.Context, id string) (TimelineEvent, error)
	CreateTimelineEvent(ctx context.Context, in TimelineEventInput) (string, error)
	UpdateTimelineEvent(ctx context.Context, id string, patch TimelineEventPatch) error
	DeleteTimelineEvent(ctx context.Context, id string) error
}

// Store is the full repository used by the API layer.
type Store interface {
	CaseStore
	PartyStore
	ImageStore
	EvidenceStore
	TheoryStore
	TimelineStore
}
