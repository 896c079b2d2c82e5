// File path: internal/casebook/types.go
package casebook

import "time"

const (
	// DefaultEvidenceStatus is stored when evidence is created without a status.
	DefaultEvidenceStatus = "unknown"
	// DefaultTimelinePlace is stored when a timeline event is created without a place.
	DefaultTimelinePlace = "unknown"
)

// Case is the root investigation record. Every other entity hangs off a case
// through its CaseID.
type Case struct {
	ID               string
	Name             string
	Detective        *string
	ShortDescription *string
}

// Party is a person involved in a case. Role is free text ("detective",
// "suspect", "victim" or anything else). The photo is kept apart from the
// row and fetched through the image store.
type Party struct {
	ID          string
	CaseID      string
	Name        string
	Role        string
	Description *string
	Alibi       *string
}

// Evidence is a discovered item or fact. Suspects holds party identifiers in
// the order they were supplied; duplicates are kept and the identifiers are
// never checked against the parties table, so they may dangle.
type Evidence struct {
	ID          string
	CaseID      string
	Status      string
	Place       *string
	Description *string
	Name        string
	Suspects    []string
}

// Theory is a free-text hypothesis about a case.
type Theory struct {
	ID      string
	CaseID  string
	Name    string
	Content string
}

// TimelineEvent is a dated occurrence within a case.
type TimelineEvent struct {
	ID          string
	CaseID      string
	Timestamp   time.Time
	Place       string
	Status      string
	Name        string
	Description *string
}

// TimeFromMillis converts a wire timestamp (milliseconds since the Unix
// epoch) into a UTC time.
func TimeFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// MillisFromTime converts a time back into its wire representation.
func MillisFromTime(t time.Time) int64 {
	return t.UTC().UnixMilli()
}
