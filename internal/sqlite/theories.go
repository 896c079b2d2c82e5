// File path: internal/sqlite/theories.go
package sqlite

import (
	"context"
	"fmt"

	"github.com/nicodishanthj/casemate/internal/casebook"
)

func (s *Store) ListTheories(ctx context.Context, caseID string) ([]casebook.Theory, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	query, args := scopedQuery(`SELECT id, case_id, name, content FROM theories`, caseID, "rowid")
	rows := []theoryRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select theories: %w", err)
	}
	out := make([]casebook.Theory, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (s *Store) GetTheory(ctx context.Context, id string) (casebook.Theory, error) {
	if err := s.ensureReady(); err != nil {
		return casebook.Theory{}, err
	}
	var row theoryRow
	if err := s.db.GetContext(ctx, &row, `SELECT id, case_id, name, content FROM theories WHERE id = ?`, id); err != nil {
		return casebook.Theory{}, notFound(err)
	}
	return row.toDomain(), nil
}

func (s *Store) CreateTheory(ctx context.Context, in casebook.TheoryInput) (string, error) {
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
		`INSERT INTO theories(id, case_id, name, content) VALUES(?, ?, ?, ?)`,
		id, in.CaseID, in.Name, orDefault(in.Content, ""),
	); err != nil {
		return "", fmt.Errorf("insert theory: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateTheory(ctx context.Context, id string, patch casebook.TheoryPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	if err := s.ensureReady(); err != nil {
		return err
	}
	var a assignments
	a.setString("name", patch.Name)
	a.setString("content", patch.Content)
	return applyUpdate(ctx, s.db, "theories", id, a)
}

func (s *Store) DeleteTheory(ctx context.Context, id string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	return deleteByID(ctx, s.db, "theories", id)
}
