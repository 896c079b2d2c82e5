// File path: internal/sqlite/update.go
package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nicodishanthj/casemate/internal/casebook"
)

// assignments collects the columns present in a partial update. Column names
// come from code, never from request input.
type assignments struct {
	columns []string
	args    []any
}

func (a *assignments) set(column string, value any) {
	a.columns = append(a.columns, column+" = ?")
	a.args = append(a.args, value)
}

func (a *assignments) setString(column string, value *string) {
	if value != nil {
		a.set(column, *value)
	}
}

func (a *assignments) empty() bool {
	return len(a.columns) == 0
}

// applyUpdate issues one UPDATE touching only the collected columns. It
// returns casebook.ErrNotFound when no row has the given id.
func applyUpdate(ctx context.Context, db sqlx.ExecerContext, table, id string, a assignments) error {
	if a.empty() {
		return nil
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(a.columns, ", "))
	args := append(append([]any(nil), a.args...), id)
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if affected == 0 {
		return casebook.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, db sqlx.ExecerContext, table, id string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

// scopedQuery appends an optional case filter and the ordering clause.
func scopedQuery(base, caseID, order string) (string, []any) {
	if caseID == "" {
		return base + " ORDER BY " + order, nil
	}
	return base + " WHERE case_id = ? ORDER BY " + order, []any{caseID}
}
