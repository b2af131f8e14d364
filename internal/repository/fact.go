package repository

import (
	"context"

	"catfacts/internal/model"
)

// FactRepository defines data access for facts using SQL queries only.
// No business logic here — strictly persistence operations.
type FactRepository interface {
	// Insert appends one fact row. ID and CreatedAt are assigned by the database.
	Insert(ctx context.Context, text string) error

	// Query returns facts newest first. An empty filter returns every row;
	// otherwise only rows whose text contains filter as a substring are returned.
	Query(ctx context.Context, filter string) ([]model.Fact, error)
}
