package model

// Fact is a single piece of text fetched from the upstream API and stored locally.
// ID is assigned by the database and strictly increases in insertion order.
// CreatedAt is the database-assigned timestamp, kept in the literal form SQLite stores it.
type Fact struct {
	ID        int64  `json:"id"`
	Text      string `json:"fact"`
	CreatedAt string `json:"created_at"`
}
