// File path: internal/sqlite/evidences.go
package sqlite

import (
	"context"
	"fmt"

	"github.com/nicodishanthj/casemate/internal/casebook"
)

const evidenceColumns = `id, case_id, status, place, description, name, suspects`

// ListEvidence returns evidence in insertion order, scoped to caseID when set.
func (s *Store) ListEvidence(ctx context.Context, caseID string) ([]casebook.Evidence, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	query, args := scopedQuery(`SELECT `+evidenceColumns+` FROM evidences`, caseID, "rowid")
	rows := []evidenceRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select evidences: %w", err)
	}
	out := make([]casebook.Evidence, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (s *Store) GetEvidence(ctx context.Context, id string) (casebook.Evidence, error) {
	if err := s.ensureReady(); err != nil {
		return casebook.Evidence{}, err
	}
	var row evidenceRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+evidenceColumns+` FROM evidences WHERE id = ?`, id); err != nil {
		return casebook.Evidence{}, notFound(err)
	}
	return row.toDomain(), nil
}

// CreateEvidence stores the suspects list as given; identifiers are not
// checked against the parties table.
func (s *Store) CreateEvidence(ctx context.Context, in casebook.EvidenceInput) (string, error) {
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
		`INSERT INTO evidences(id, case_id, status, place, description, name, suspects) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		id, in.CaseID, orDefault(in.Status, casebook.DefaultEvidenceStatus), nullable(in.Place), nullable(in.Description), in.Name, idList(in.Suspects),
	); err != nil {
		return "", fmt.Errorf("insert evidence: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateEvidence(ctx context.Context, id string, patch casebook.EvidencePatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	if err := s.ensureReady(); err != nil {
		return err
	}
	var a assignments
	a.setString("name", patch.Name)
	a.setString("status", patch.Status)
	a.setString("place", patch.Place)
	a.setString("description", patch.Description)
	if patch.Suspects != nil {
		a.set("suspects", idList(*patch.Suspects))
	}
	return applyUpdate(ctx, s.db, "evidences", id, a)
}

func (s *Store) DeleteEvidence(ctx context.Context, id string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	return deleteByID(ctx, s.db, "evidences", id)
}
