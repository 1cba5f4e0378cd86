package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/Seebrasse345/mp-statement-writer/internal/models"
	appErrors "github.com/Seebrasse345/mp-statement-writer/pkg/errors"
)

type historySubmissionRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, int, error)
}

type historyStatementRepository interface {
	GetByID(ctx context.Context, id int64) (*models.ApprovedStatement, error)
	List(ctx context.Context, filter models.StatementFilter) ([]models.ApprovedStatement, int, error)
}

// HistoryService exposes read-only browsing of the corpus for the
// presentation layer; the generation path does not use it.
type HistoryService struct {
	submissions historySubmissionRepository
	statements  historyStatementRepository
	logger      *zap.Logger
}

// NewHistoryService constructs the service.
func NewHistoryService(submissions historySubmissionRepository, statements historyStatementRepository, logger *zap.Logger) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{submissions: submissions, statements: statements, logger: logger}
}

// ListSubmissions returns submissions matching the filter with pagination.
func (s *HistoryService) ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	rows, total, err := s.submissions.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list submissions")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return rows, pagination, nil
}

// GetSubmission returns one submission by id.
func (s *HistoryService) GetSubmission(ctx context.Context, id int64) (*models.Submission, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to get submission")
	}
	return submission, nil
}

// ListStatements returns approved statements matching the filter.
func (s *HistoryService) ListStatements(ctx context.Context, filter models.StatementFilter) ([]models.ApprovedStatement, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	rows, total, err := s.statements.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list approved statements")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return rows, pagination, nil
}

// GetStatement returns one approved statement by id.
func (s *HistoryService) GetStatement(ctx context.Context, id int64) (*models.ApprovedStatement, error) {
	statement, err := s.statements.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "approved statement not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to get approved statement")
	}
	return statement, nil
}
