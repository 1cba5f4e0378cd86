package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Seebrasse345/mp-statement-writer/internal/models"
)

// SubmissionRepository provides persistence for rewrite attempts.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository creates the repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a new submission and assigns its identifier.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission.Status == "" {
		submission.Status = models.StatusPending
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO submissions (original_text, context, target_audience, tone, generated_text, status, created_at, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		submission.OriginalText,
		submission.Context,
		submission.TargetAudience,
		submission.Tone,
		submission.GeneratedText,
		submission.Status,
		submission.CreatedAt,
		submission.Notes,
	).Scan(&submission.ID); err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// GetByID returns a submission by identifier.
func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	const query = `SELECT id, original_text, context, target_audience, tone, generated_text, status, created_at, notes
FROM submissions WHERE id = $1`
	var submission models.Submission
	if err := r.db.GetContext(ctx, &submission, query, id); err != nil {
		return nil, err
	}
	return &submission, nil
}

// UpdateStatus moves a submission to accepted or rejected. Records never
// return to pending, so pending is not an allowed target.
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error {
	if status != models.StatusAccepted && status != models.StatusRejected {
		return fmt.Errorf("update submission status: invalid target status %q", status)
	}
	result, err := r.db.ExecContext(ctx, "UPDATE submissions SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RandomByStatus returns up to limit submissions with the given status in
// random order, optionally excluding one identifier.
func (r *SubmissionRepository) RandomByStatus(ctx context.Context, status models.SubmissionStatus, limit int, excludeID int64) ([]models.Submission, error) {
	query := `SELECT id, original_text, context, target_audience, tone, generated_text, status, created_at, notes
FROM submissions WHERE status = $1`
	args := []interface{}{status}
	if excludeID > 0 {
		query += fmt.Sprintf(" AND id <> $%d", len(args)+1)
		args = append(args, excludeID)
	}
	query += fmt.Sprintf(" ORDER BY RANDOM() LIMIT $%d", len(args)+1)
	args = append(args, limit)

	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, args...); err != nil {
		return nil, fmt.Errorf("random submissions: %w", err)
	}
	return submissions, nil
}

// CountByStatus returns the number of submissions with the given status.
func (r *SubmissionRepository) CountByStatus(ctx context.Context, status models.SubmissionStatus) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM submissions WHERE status = $1", status); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return count, nil
}

// List returns submissions matching the filter, newest first, with the
// total row count for pagination. Search is a case-insensitive contains
// across the original text, generated text and notes.
func (r *SubmissionRepository) List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, int, error) {
	where := []string{"TRUE"}
	args := []interface{}{}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, fmt.Sprintf("(original_text ILIKE $%d OR generated_text ILIKE $%d OR notes ILIKE $%d)",
			len(args)+1, len(args)+1, len(args)+1))
		args = append(args, pattern)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, original_text, context, target_audience, tone, generated_text, status, created_at, notes
FROM submissions WHERE %s
ORDER BY created_at DESC, id DESC
LIMIT %d OFFSET %d`, whereClause, size, offset)
	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM submissions WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}
	return submissions, total, nil
}
