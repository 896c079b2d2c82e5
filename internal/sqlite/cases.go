// File path: internal/sqlite/cases.go
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nicodishanthj/casemate/internal/casebook"
	"github.com/nicodishanthj/casemate/internal/common"
	"github.com/nicodishanthj/casemate/internal/common/telemetry"
)

// caseChildTables lists the tables DeleteCase clears, in deletion order.
var caseChildTables = []string{"parties", "evidences", "theories", "timeline_events"}

// ListCases returns every case in insertion order.
func (s *Store) ListCases(ctx context.Context) ([]casebook.Case, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	rows := []caseRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, name, detective, short_description FROM cases ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("select cases: %w", err)
	}
	out := make([]casebook.Case, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// GetCase returns one case or casebook.ErrNotFound.
func (s *Store) GetCase(ctx context.Context, id string) (casebook.Case, error) {
	if err := s.ensureReady(); err != nil {
		return casebook.Case{}, err
	}
	var row caseRow
	if err := s.db.GetContext(ctx, &row, `SELECT id, name, detective, short_description FROM cases WHERE id = ?`, id); err != nil {
		return casebook.Case{}, notFound(err)
	}
	return row.toDomain(), nil
}

// CreateCase inserts a case and returns its generated identifier.
func (s *Store) CreateCase(ctx context.Context, in casebook.CaseInput) (string, error) {
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
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO cases(id, name, detective, short_description) VALUES(?, ?, ?, ?)`,
		id, in.Name, nullable(in.Detective), orDefault(in.ShortDescription, ""),
	); err != nil {
		return "", fmt.Errorf("insert case: %w", err)
	}
	return id, nil
}

// UpdateCase applies the fields present in patch.
func (s *Store) UpdateCase(ctx context.Context, id string, patch casebook.CasePatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	if err := s.ensureReady(); err != nil {
		return err
	}
	var a assignments
	a.setString("name", patch.Name)
	a.setString("short_description", patch.ShortDescription)
	a.setString("detective", patch.Detective)
	return applyUpdate(ctx, s.db, "cases", id, a)
}

// DeleteCase removes the case's parties, evidence, theories and timeline
// events, then the case itself, in one transaction. Unknown ids succeed.
func (s *Store) DeleteCase(ctx context.Context, id string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	ctx, end := telemetry.StartSpan(ctx, "sqlite.delete_case")
	var removed int64
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, table := range caseChildTables {
			res, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE case_id = ?", table), id)
			if err != nil {
				return fmt.Errorf("delete %s of case: %w", table, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				removed += n
			}
		}
		return deleteByID(ctx, tx, "cases", id)
	})
	end("case_id", id, "children", removed, "ok", err == nil)
	if err != nil {
		return err
	}
	telemetry.RecordCaseDelete()
	common.Logger().Debug("sqlite: case deleted", "case_id", id, "children", removed)
	return nil
}
