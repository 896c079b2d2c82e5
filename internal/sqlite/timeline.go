// File path: internal/sqlite/timeline.go
package sqlite

import (
	"context"
	"fmt"

	"github.com/nicodishanthj/casemate/internal/casebook"
)

// Timestamps are stored as UTC epoch milliseconds so that ORDER BY on the
// column is chronological.
const timelineColumns = `id, case_id, occurred_at, place, status, name, description`

// ListTimelineEvents returns events ordered by timestamp, oldest first.
// Events sharing a timestamp keep their insertion order.
func (s *Store) ListTimelineEvents(ctx context.Context, caseID string) ([]casebook.TimelineEvent, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	query, args := scopedQuery(`SELECT `+timelineColumns+` FROM timeline_events`, caseID, "occurred_at, rowid")
	rows := []timelineRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select timeline events: %w", err)
	}
	out := make([]casebook.TimelineEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (s *Store) GetTimelineEvent(ctx context.Context, id string) (casebook.TimelineEvent, error) {
	if err := s.ensureReady(); err != nil {
		return casebook.TimelineEvent{}, err
	}
	var row timelineRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+timelineColumns+` FROM timeline_events WHERE id = ?`, id); err != nil {
		return casebook.TimelineEvent{}, notFound(err)
	}
	return row.toDomain(), nil
}

func (s *Store) CreateTimelineEvent(ctx context.Context, in casebook.TimelineEventInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	if err := s.ensureReady(); err != nil {
		return "", err
	}
	id, err := newID()
	if err != nil {
		return "", err
	}
	occurredAt := casebook.MillisFromTime(casebook.TimeFromMillis(*in.Timestamp))
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO timeline_events(id, case_id, occurred_at, place, status, name, description) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		id, in.CaseID, occurredAt, orDefault(in.Place, casebook.DefaultTimelinePlace), in.Status, in.Name, nullable(in.Description),
	); err != nil {
		return "", fmt.Errorf("insert timeline event: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateTimelineEvent(ctx context.Context, id string, patch casebook.TimelineEventPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	if err := s.ensureReady(); err != nil {
		return err
	}
	var a assignments
	if patch.Timestamp != nil {
		a.set("occurred_at", casebook.MillisFromTime(casebook.TimeFromMillis(*patch.Timestamp)))
	}
	a.setString("place", patch.Place)
	a.setString("status", patch.Status)
	a.setString("name", patch.Name)
	a.setString("description", patch.Description)
	return applyUpdate(ctx, s.db, "timeline_events", id, a)
}

func (s *Store) DeleteTimelineEvent(ctx context.Context, id string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	return deleteByID(ctx, s.db, "timeline_events", id)
}
