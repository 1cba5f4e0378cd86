package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Seebrasse345/mp-statement-writer/internal/models"
)

// StatementRepository provides persistence for the approved example corpus.
type StatementRepository struct {
	db *sqlx.DB
}

// NewStatementRepository creates the repository.
func NewStatementRepository(db *sqlx.DB) *StatementRepository {
	return &StatementRepository{db: db}
}

// Create inserts a new approved statement and assigns its identifier.
func (r *StatementRepository) Create(ctx context.Context, statement *models.ApprovedStatement) error {
	if statement.CreatedAt.IsZero() {
		statement.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO approved_statements (published_text, topic, tone, created_at, source, tags)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		statement.PublishedText,
		statement.Topic,
		statement.Tone,
		statement.CreatedAt,
		statement.Source,
		statement.Tags,
	).Scan(&statement.ID); err != nil {
		return fmt.Errorf("create approved statement: %w", err)
	}
	return nil
}

// GetByID returns an approved statement by identifier.
func (r *StatementRepository) GetByID(ctx context.Context, id int64) (*models.ApprovedStatement, error) {
	const query = `SELECT id, published_text, topic, tone, created_at, source, tags
FROM approved_statements WHERE id = $1`
	var statement models.ApprovedStatement
	if err := r.db.GetContext(ctx, &statement, query, id); err != nil {
		return nil, err
	}
	return &statement, nil
}

// Random returns up to limit approved statements in random order.
func (r *StatementRepository) Random(ctx context.Context, limit int) ([]models.ApprovedStatement, error) {
	const query = `SELECT id, published_text, topic, tone, created_at, source, tags
FROM approved_statements ORDER BY RANDOM() LIMIT $1`
	var statements []models.ApprovedStatement
	if err := r.db.SelectContext(ctx, &statements, query, limit); err != nil {
		return nil, fmt.Errorf("random approved statements: %w", err)
	}
	return statements, nil
}

// Count returns the number of approved statements in the corpus.
func (r *StatementRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM approved_statements"); err != nil {
		return 0, fmt.Errorf("count approved statements: %w", err)
	}
	return count, nil
}

// List returns approved statements matching the filter, newest first.
// Search is a case-insensitive contains across text, topic and tags.
func (r *StatementRepository) List(ctx context.Context, filter models.StatementFilter) ([]models.ApprovedStatement, int, error) {
	where := []string{"TRUE"}
	args := []interface{}{}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, fmt.Sprintf("(published_text ILIKE $%d OR topic ILIKE $%d OR tags ILIKE $%d)",
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

	query := fmt.Sprintf(`SELECT id, published_text, topic, tone, created_at, source, tags
FROM approved_statements WHERE %s
ORDER BY created_at DESC, id DESC
LIMIT %d OFFSET %d`, whereClause, size, offset)
	var statements []models.ApprovedStatement
	if err := r.db.SelectContext(ctx, &statements, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list approved statements: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM approved_statements WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count approved statements: %w", err)
	}
	return statements, total, nil
}

// PromoteFromSubmission accepts a submission and copies its generated text
// into the approved corpus in a single transaction, so the status update
// and the insert either both commit or neither does.
func (r *StatementRepository) PromoteFromSubmission(ctx context.Context, submission *models.Submission, topic string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("promote submission: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		"UPDATE submissions SET status = $1 WHERE id = $2",
		models.StatusAccepted, submission.ID,
	); err != nil {
		return 0, fmt.Errorf("promote submission: %w", err)
	}

	var statementID int64
	if err := tx.QueryRowxContext(ctx,
		`INSERT INTO approved_statements (published_text, topic, tone, created_at, source)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`,
		submission.GeneratedText,
		topic,
		submission.Tone,
		time.Now().UTC(),
		fmt.Sprintf("Generated from submission #%d", submission.ID),
	).Scan(&statementID); err != nil {
		return 0, fmt.Errorf("promote submission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("promote submission: %w", err)
	}
	return statementID, nil
}
