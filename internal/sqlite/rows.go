// File path: internal/sqlite/rows.go
package sqlite

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/nicodishanthj/casemate/internal/casebook"
)

type caseRow struct {
	ID               string         `db:"id"`
	Name             string         `db:"name"`
	Detective        sql.NullString `db:"detective"`
	ShortDescription sql.NullString `db:"short_description"`
}

func (r caseRow) toDomain() casebook.Case {
	return casebook.Case{
		ID:               r.ID,
		Name:             r.Name,
		Detective:        stringPtr(r.Detective),
		ShortDescription: stringPtr(r.ShortDescription),
	}
}

// partyRow never includes the image column.
type partyRow struct {
	ID          string         `db:"id"`
	CaseID      string         `db:"case_id"`
	Name        string         `db:"name"`
	Role        string         `db:"role"`
	Description sql.NullString `db:"description"`
	Alibi       sql.NullString `db:"alibi"`
}

func (r partyRow) toDomain() casebook.Party {
	return casebook.Party{
		ID:          r.ID,
		CaseID:      r.CaseID,
		Name:        r.Name,
		Role:        r.Role,
		Description: stringPtr(r.Description),
		Alibi:       stringPtr(r.Alibi),
	}
}

type evidenceRow struct {
	ID          string         `db:"id"`
	CaseID      string         `db:"case_id"`
	Status      string         `db:"status"`
	Place       sql.NullString `db:"place"`
	Description sql.NullString `db:"description"`
	Name        string         `db:"name"`
	Suspects    idList         `db:"suspects"`
}

func (r evidenceRow) toDomain() casebook.Evidence {
	suspects := []string(r.Suspects)
	if suspects == nil {
		suspects = []string{}
	}
	return casebook.Evidence{
		ID:          r.ID,
		CaseID:      r.CaseID,
		Status:      r.Status,
		Place:       stringPtr(r.Place),
		Description: stringPtr(r.Description),
		Name:        r.Name,
		Suspects:    suspects,
	}
}

type theoryRow struct {
	ID      string `db:"id"`
	CaseID  string `db:"case_id"`
	Name    string `db:"name"`
	Content string `db:"content"`
}

func (r theoryRow) toDomain() casebook.Theory {
	return casebook.Theory{ID: r.ID, CaseID: r.CaseID, Name: r.Name, Content: r.Content}
}

type timelineRow struct {
	ID          string         `db:"id"`
	CaseID      string         `db:"case_id"`
	OccurredAt  int64          `db:"occurred_at"`
	Place       string         `db:"place"`
	Status      string         `db:"status"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
}

func (r timelineRow) toDomain() casebook.TimelineEvent {
	return casebook.TimelineEvent{
		ID:          r.ID,
		CaseID:      r.CaseID,
		Timestamp:   casebook.TimeFromMillis(r.OccurredAt),
		Place:       r.Place,
		Status:      r.Status,
		Name:        r.Name,
		Description: stringPtr(r.Description),
	}
}

// idList stores an ordered list of identifiers as a JSON array in a TEXT
// column.
type idList []string

func (l idList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *idList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = idList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scan id list: unsupported type %T", src)
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return fmt.Errorf("scan id list: %w", err)
	}
	*l = ids
	return nil
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// nullable converts an optional string into a driver value, keeping NULL for
// absence.
func nullable(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func orDefault(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
