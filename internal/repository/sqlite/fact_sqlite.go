package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"catfacts/internal/model"
	"catfacts/internal/repository"
)

// FactSQLite is a SQLite implementation of repository.FactRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// Each call borrows a pooled connection and returns it before the method exits.
type FactSQLite struct {
	db *sql.DB
}

// NewFactSQLite creates a new FactSQLite repository.
func NewFactSQLite(db *sql.DB) *FactSQLite {
	return &FactSQLite{db: db}
}

var _ repository.FactRepository = (*FactSQLite)(nil)

// likeEscaper makes LIKE metacharacters in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds the LIKE pattern matching any text that contains term.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Insert appends a fact row.
func (r *FactSQLite) Insert(ctx context.Context, text string) error {
	const q = `INSERT INTO facts (fact) VALUES (?)`
	_, err := r.db.ExecContext(ctx, q, text)
	return err
}

// Query returns facts ordered by id descending, optionally filtered by substring.
func (r *FactSQLite) Query(ctx context.Context, filter string) ([]model.Fact, error) {
	// created_at is cast so the driver hands back SQLite's literal text instead of parsing it.
	q := `SELECT id, fact, CAST(created_at AS TEXT) FROM facts`
	var args []any
	if filter != "" {
		q += ` WHERE fact LIKE ? ESCAPE '\'`
		args = append(args, ContainsPattern(filter))
	}
	q += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Fact, 0)
	for rows.Next() {
		var (
			f         model.Fact
			createdAt sql.NullString
		)
		if err := rows.Scan(&f.ID, &f.Text, &createdAt); err != nil {
			return nil, err
		}
		f.CreatedAt = createdAt.String
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
