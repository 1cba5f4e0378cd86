package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/Seebrasse345/mp-statement-writer/internal/dto"
	"github.com/Seebrasse345/mp-statement-writer/internal/models"
	appErrors "github.com/Seebrasse345/mp-statement-writer/pkg/errors"
)

type importStatementRepository interface {
	Create(ctx context.Context, statement *models.ApprovedStatement) error
}

// ImportService bulk-loads past statements from CSV into the approved
// corpus. Column headers are matched loosely: a text/statement/content
// column is required, topic/tone/source/tag columns are optional.
type ImportService struct {
	statements importStatementRepository
	logger     *zap.Logger
}

// NewImportService constructs the service.
func NewImportService(statements importStatementRepository, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{statements: statements, logger: logger}
}

// ImportCSV reads the CSV stream and inserts one approved statement per
// data row. Rows with empty text are skipped and counted.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "could not read CSV header row")
	}

	columns := mapColumns(headers)
	if _, ok := columns["text"]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing required column: text")
	}

	result := &dto.ImportResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("malformed CSV near row %d", result.Imported+result.Skipped+2))
		}

		text := strings.TrimSpace(cell(row, columns, "text"))
		if text == "" {
			result.Skipped++
			continue
		}

		source := strings.TrimSpace(cell(row, columns, "source"))
		if source == "" {
			source = "Imported"
		}

		statement := &models.ApprovedStatement{
			PublishedText: text,
			Topic:         strings.TrimSpace(cell(row, columns, "topic")),
			Tone:          strings.TrimSpace(cell(row, columns, "tone")),
			Source:        source,
			Tags:          strings.TrimSpace(cell(row, columns, "tags")),
		}
		if err := s.statements.Create(ctx, statement); err != nil {
			return result, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to import statement")
		}
		result.Imported++
	}

	s.logger.Info("csv import finished",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func mapColumns(headers []string) map[string]int {
	columns := map[string]int{}
	for i, header := range headers {
		h := strings.ToLower(strings.TrimSpace(header))
		switch {
		case strings.Contains(h, "text"), strings.Contains(h, "statement"), strings.Contains(h, "content"):
			setColumn(columns, "text", i)
		case strings.Contains(h, "topic"), strings.Contains(h, "subject"), strings.Contains(h, "category"):
			setColumn(columns, "topic", i)
		case strings.Contains(h, "tone"):
			setColumn(columns, "tone", i)
		case strings.Contains(h, "source"):
			setColumn(columns, "source", i)
		case strings.Contains(h, "tag"):
			setColumn(columns, "tags", i)
		}
	}
	return columns
}

func setColumn(columns map[string]int, key string, index int) {
	if _, exists := columns[key]; !exists {
		columns[key] = index
	}
}

func cell(row []string, columns map[string]int, key string) string {
	index, ok := columns[key]
	if !ok || index >= len(row) {
		return ""
	}
	return row[index]
}
