package dto

// SubmitRequest starts a fresh editing session for one raw statement.
type SubmitRequest struct {
	RawText        string `json:"raw_text" validate:"required"`
	Context        string `json:"context"`
	TargetAudience string `json:"target_audience"`
	Tone           string `json:"tone"`
	Notes          string `json:"notes"`
}

// SessionState is the read-only view of the editing session exposed to the
// presentation layer.
type SessionState struct {
	State               string `json:"state"`
	CurrentSubmissionID *int64 `json:"current_submission_id,omitempty"`
	GeneratedText       string `json:"generated_text,omitempty"`
	StatusMessage       string `json:"status_message"`
}

// AcceptResult reports the promotion created by accepting a draft.
type AcceptResult struct {
	SubmissionID int64 `json:"submission_id"`
	StatementID  int64 `json:"statement_id"`
}
