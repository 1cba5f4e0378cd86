package models

import "time"

// SubmissionStatus is the lifecycle state of a rewrite attempt. The three
// literal values are a de facto interchange format and must not change.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusAccepted SubmissionStatus = "accepted"
	StatusRejected SubmissionStatus = "rejected"
)

// Valid reports whether the status is one of the known literals.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// Submission represents one user-initiated rewrite attempt. Status starts at
// pending and only ever moves to accepted or rejected; a record never
// returns to pending.
type Submission struct {
	ID             int64            `db:"id" json:"id"`
	OriginalText   string           `db:"original_text" json:"original_text"`
	Context        string           `db:"context" json:"context,omitempty"`
	TargetAudience string           `db:"target_audience" json:"target_audience,omitempty"`
	Tone           string           `db:"tone" json:"tone,omitempty"`
	GeneratedText  string           `db:"generated_text" json:"generated_text,omitempty"`
	Status         SubmissionStatus `db:"status" json:"status"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	Notes          string           `db:"notes" json:"notes,omitempty"`
}

// SubmissionFilter captures criteria for browsing submission history.
type SubmissionFilter struct {
	Status   *SubmissionStatus
	Search   string
	Page     int
	PageSize int
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
