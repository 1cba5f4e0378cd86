package models

import "time"

// ApprovedStatement is a piece of text promoted into the reusable example
// corpus. Rows are append-only; the only link back to the originating
// submission is the free-text Source note.
type ApprovedStatement struct {
	ID            int64     `db:"id" json:"id"`
	PublishedText string    `db:"published_text" json:"published_text"`
	Topic         string    `db:"topic" json:"topic,omitempty"`
	Tone          string    `db:"tone" json:"tone,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	Source        string    `db:"source" json:"source,omitempty"`
	Tags          string    `db:"tags" json:"tags,omitempty"`
}

// StatementFilter captures criteria for browsing the approved corpus.
type StatementFilter struct {
	Search   string
	Page     int
	PageSize int
}
