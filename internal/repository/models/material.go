package models

import "time"

// MaterialChunk is one ordered piece of uploaded study material for a
// subject/unit. Retrieval returns chunks in position order.
type MaterialChunk struct {
	ID        string    `db:"id"` // ULID
	SubjectID int64     `db:"subject_id"`
	UnitID    int64     `db:"unit_id"`
	Position  int       `db:"position"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}
