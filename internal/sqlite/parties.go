// File path: internal/sqlite/parties.go
package sqlite

import (
	"context"
	"fmt"

	"github.com/nicodishanthj/casemate/internal/casebook"
)

const partyColumns = `id, case_id, name, role, description, alibi`

// ListParties returns parties in insertion order, scoped to caseID when set.
func (s *Store) ListParties(ctx context.Context, caseID string) ([]casebook.Party, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	query, args := scopedQuery(`SELECT `+partyColumns+` FROM parties`, caseID, "rowid")
	rows := []partyRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select parties: %w", err)
	}
	out := make([]casebook.Party, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (s *Store) GetParty(ctx context.Context, id string) (casebook.Party, error) {
	if err := s.ensureReady(); err != nil {
		return casebook.Party{}, err
	}
	var row partyRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+partyColumns+` FROM parties WHERE id = ?`, id); err != nil {
		return casebook.Party{}, notFound(err)
	}
	return row.toDomain(), nil
}

func (s *Store) CreateParty(ctx context.Context, in casebook.PartyInput) (string, error) {
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
		`INSERT INTO parties(id, case_id, name, role, description, alibi) VALUES(?, ?, ?, ?, ?, ?)`,
		id, in.CaseID, in.Name, in.Role, nullable(in.Description), nullable(in.Alibi),
	); err != nil {
		return "", fmt.Errorf("insert party: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateParty(ctx context.Context, id string, patch casebook.PartyPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	if err := s.ensureReady(); err != nil {
		return err
	}
	var a assignments
	a.setString("name", patch.Name)
	a.setString("role", patch.Role)
	a.setString("description", patch.Description)
	a.setString("alibi", patch.Alibi)
	return applyUpdate(ctx, s.db, "parties", id, a)
}

func (s *Store) DeleteParty(ctx context.Context, id string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	return deleteByID(ctx, s.db, "parties", id)
}
