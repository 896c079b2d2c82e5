// File path: internal/sqlite/images.go
package sqlite

import (
	"context"
	"fmt"

	"github.com/nicodishanthj/casemate/internal/casebook"
)

// PartyImage reads only the image column. An unknown party and a party
// without a photo both yield casebook.ErrNotFound.
func (s *Store) PartyImage(ctx context.Context, partyID string) ([]byte, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var data []byte
	if err := s.db.GetContext(ctx, &data, `SELECT image FROM parties WHERE id = ?`, partyID); err != nil {
		return nil, notFound(err)
	}
	if data == nil {
		return nil, casebook.ErrNotFound
	}
	return data, nil
}

// SetPartyImage overwrites the photo of an existing party. It never creates
// a row: an unknown party yields casebook.ErrNotFound.
func (s *Store) SetPartyImage(ctx context.Context, partyID string, data []byte) error {
	if len(data) == 0 {
		return &casebook.MissingFieldError{Field: "file"}
	}
	if err := s.ensureReady(); err != nil {
		return err
	}
	var a assignments
	a.set("image", data)
	if err := applyUpdate(ctx, s.db, "parties", partyID, a); err != nil {
		return fmt.Errorf("store party image: %w", err)
	}
	return nil
}

// ClearPartyImage sets the photo back to NULL and keeps the party row.
func (s *Store) ClearPartyImage(ctx context.Context, partyID string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE parties SET image = NULL WHERE id = ?`, partyID); err != nil {
		return fmt.Errorf("clear party image: %w", err)
	}
	return nil
}
