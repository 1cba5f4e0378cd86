package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Seebrasse345/mp-statement-writer/internal/models"
)

const (
	emulateLimit    = 3
	avoidLimit      = 2
	regenAvoidExtra = 1
)

type samplerStatementRepository interface {
	Random(ctx context.Context, limit int) ([]models.ApprovedStatement, error)
}

type samplerSubmissionRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	RandomByStatus(ctx context.Context, status models.SubmissionStatus, limit int, excludeID int64) ([]models.Submission, error)
}

// SamplerService selects bounded emulate/avoid example sets for prompt
// construction. Storage failures degrade to an empty set for the affected
// side; generation proceeds with whatever examples could be gathered.
type SamplerService struct {
	statements  samplerStatementRepository
	submissions samplerSubmissionRepository
	logger      *zap.Logger
}

// NewSamplerService constructs the service.
func NewSamplerService(statements samplerStatementRepository, submissions samplerSubmissionRepository, logger *zap.Logger) *SamplerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SamplerService{statements: statements, submissions: submissions, logger: logger}
}

// ForInitialGeneration returns up to 3 emulate examples and up to 2 avoid
// examples. Emulate entries prefer the approved corpus and top up from
// accepted submissions when the corpus is short; avoid entries come from
// rejected submissions with no fallback.
func (s *SamplerService) ForInitialGeneration(ctx context.Context) (emulate, avoid []models.Example) {
	approved, err := s.statements.Random(ctx, emulateLimit)
	if err != nil {
		s.logger.Warn("sampling approved statements failed", zap.Error(err))
	}
	for _, statement := range approved {
		emulate = append(emulate, models.Example{Text: statement.PublishedText, Topic: statement.Topic, Tone: statement.Tone})
	}

	if len(emulate) < emulateLimit {
		accepted, err := s.submissions.RandomByStatus(ctx, models.StatusAccepted, emulateLimit-len(emulate), 0)
		if err != nil {
			s.logger.Warn("sampling accepted submissions failed", zap.Error(err))
		}
		for _, submission := range accepted {
			emulate = append(emulate, models.Example{Text: submission.GeneratedText, Topic: submission.TargetAudience, Tone: submission.Tone})
		}
	}

	rejected, err := s.submissions.RandomByStatus(ctx, models.StatusRejected, avoidLimit, 0)
	if err != nil {
		s.logger.Warn("sampling rejected submissions failed", zap.Error(err))
	}
	for _, submission := range rejected {
		avoid = append(avoid, models.Example{Text: submission.GeneratedText, Topic: submission.TargetAudience, Tone: submission.Tone})
	}

	return emulate, avoid
}

// ForRegeneration returns emulate examples from the approved corpus only,
// with no accepted-submission fallback, and an avoid list whose first entry
// is the rejected draft of currentSubmissionID, labeled as the model's own
// previous attempt.
func (s *SamplerService) ForRegeneration(ctx context.Context, currentSubmissionID int64, audience, tone string) (emulate, avoid []models.Example) {
	approved, err := s.statements.Random(ctx, emulateLimit)
	if err != nil {
		s.logger.Warn("sampling approved statements failed", zap.Error(err))
	}
	for _, statement := range approved {
		emulate = append(emulate, models.Example{Text: statement.PublishedText, Topic: statement.Topic, Tone: statement.Tone})
	}

	current, err := s.submissions.GetByID(ctx, currentSubmissionID)
	if err != nil {
		s.logger.Warn("loading previous attempt failed", zap.Int64("submission_id", currentSubmissionID), zap.Error(err))
	} else if current.GeneratedText != "" {
		avoid = append(avoid, models.Example{
			Text:            current.GeneratedText,
			Topic:           fmt.Sprintf("Previous attempt for %s", audience),
			Tone:            tone,
			PreviousAttempt: true,
		})
	}

	others, err := s.submissions.RandomByStatus(ctx, models.StatusRejected, regenAvoidExtra, currentSubmissionID)
	if err != nil {
		s.logger.Warn("sampling rejected submissions failed", zap.Error(err))
	}
	for _, submission := range others {
		avoid = append(avoid, models.Example{Text: submission.GeneratedText, Topic: submission.TargetAudience, Tone: submission.Tone})
	}

	return emulate, avoid
}
