package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Seebrasse345/mp-statement-writer/internal/dto"
	"github.com/Seebrasse345/mp-statement-writer/internal/llm"
	"github.com/Seebrasse345/mp-statement-writer/internal/models"
	"github.com/Seebrasse345/mp-statement-writer/internal/prompt"
	"github.com/Seebrasse345/mp-statement-writer/pkg/config"
	appErrors "github.com/Seebrasse345/mp-statement-writer/pkg/errors"
)

// Session states exposed through the current-state query.
const (
	StateIdle       = "idle"
	StateGenerating = "generating"
	StateReviewing  = "reviewing"
	StateClosed     = "closed"
)

const (
	generationKindInitial      = "initial"
	generationKindRegeneration = "regeneration"
)

type exampleSampler interface {
	ForInitialGeneration(ctx context.Context) (emulate, avoid []models.Example)
	ForRegeneration(ctx context.Context, currentSubmissionID int64, audience, tone string) (emulate, avoid []models.Example)
}

type workflowSubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error
}

type promotionRepository interface {
	PromoteFromSubmission(ctx context.Context, submission *models.Submission, topic string) (int64, error)
}

type generationObserver interface {
	ObserveGeneration(kind, outcome string, duration time.Duration)
}

// WorkflowService is the generation orchestrator: it drives one editing
// session through submit, regenerate and accept, holding the only mutable
// state in the system outside the store.
type WorkflowService struct {
	sampler     exampleSampler
	submissions workflowSubmissionRepository
	promotions  promotionRepository
	completion  llm.CompletionService
	gen         config.GenerationConfig
	validator   *validator.Validate
	logger      *zap.Logger
	metrics     generationObserver

	mu            sync.Mutex
	inFlight      bool
	token         string
	state         string
	currentID     int64
	generatedText string
	statusMessage string
}

// NewWorkflowService constructs the orchestrator in the Idle state.
func NewWorkflowService(
	sampler exampleSampler,
	submissions workflowSubmissionRepository,
	promotions promotionRepository,
	completion llm.CompletionService,
	gen config.GenerationConfig,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics generationObserver,
) *WorkflowService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkflowService{
		sampler:       sampler,
		submissions:   submissions,
		promotions:    promotions,
		completion:    completion,
		gen:           gen,
		validator:     validate,
		logger:        logger,
		metrics:       metrics,
		state:         StateIdle,
		statusMessage: "Ready.",
	}
}

// Current returns a snapshot of the session for the presentation layer.
func (s *WorkflowService) Current() dto.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Submit starts a fresh session: samples examples, composes the initial
// prompt, calls the completion service and persists the result as a pending
// submission. No submission row is written when generation fails.
func (s *WorkflowService) Submit(ctx context.Context, req dto.SubmitRequest) (*dto.SessionState, error) {
	req.RawText = strings.TrimSpace(req.RawText)
	req.Context = strings.TrimSpace(req.Context)
	req.TargetAudience = strings.TrimSpace(req.TargetAudience)
	req.Notes = strings.TrimSpace(req.Notes)

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "please enter the raw government statement")
	}

	token, err := s.beginGeneration("Generating rewritten statement...")
	if err != nil {
		return nil, err
	}

	start := time.Now()
	emulate, avoid := s.sampler.ForInitialGeneration(ctx)
	promptText := prompt.ComposeInitial(prompt.Input{
		RawText:  req.RawText,
		Context:  req.Context,
		Audience: req.TargetAudience,
		Tone:     req.Tone,
		Emulate:  emulate,
		Avoid:    avoid,
	})

	text, err := s.completion.Complete(ctx, prompt.SystemPersona, promptText, llm.Options{
		Temperature: s.gen.Temperature,
		MaxTokens:   s.gen.MaxTokens,
	})
	if err != nil {
		s.observe(generationKindInitial, "generation_failed", time.Since(start))
		s.failGeneration(token, StateIdle, "Error during generation. Please try again.")
		s.logger.Error("initial generation failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrGenerationFailed.Code, appErrors.ErrGenerationFailed.Status, "statement generation failed")
	}

	submission := &models.Submission{
		OriginalText:   req.RawText,
		Context:        req.Context,
		TargetAudience: req.TargetAudience,
		Tone:           req.Tone,
		GeneratedText:  text,
		Status:         models.StatusPending,
		Notes:          req.Notes,
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		s.observe(generationKindInitial, "storage_failed", time.Since(start))
		s.failGeneration(token, StateIdle, "Error saving the generated statement.")
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to save submission")
	}

	s.observe(generationKindInitial, "success", time.Since(start))
	return s.commitGeneration(token, submission.ID, text), nil
}

// Regenerate rejects the current draft and generates a replacement tuned
// for divergence. The rejection commits before generation starts and is not
// undone if the second call fails.
func (s *WorkflowService) Regenerate(ctx context.Context) (*dto.SessionState, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, appErrors.ErrOperationInProgress
	}
	if s.state != StateReviewing || s.currentID == 0 {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "no statement has been generated yet")
	}
	currentID := s.currentID
	s.mu.Unlock()

	current, err := s.submissions.GetByID(ctx, currentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "current submission not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load current submission")
	}

	if err := s.submissions.UpdateStatus(ctx, currentID, models.StatusRejected); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to reject the current draft")
	}

	token, err := s.beginGeneration("Regenerating statement with new approach...")
	if err != nil {
		return nil, err
	}

	start := time.Now()
	emulate, avoid := s.sampler.ForRegeneration(ctx, currentID, current.TargetAudience, current.Tone)
	promptText := prompt.ComposeRegeneration(prompt.Input{
		RawText:  current.OriginalText,
		Context:  current.Context,
		Audience: current.TargetAudience,
		Tone:     current.Tone,
		Emulate:  emulate,
		Avoid:    avoid,
	})

	text, err := s.completion.Complete(ctx, prompt.RefreshSystemPersona, promptText, llm.Options{
		Temperature:      s.gen.RefreshTemperature,
		MaxTokens:        s.gen.MaxTokens,
		PresencePenalty:  s.gen.PresencePenalty,
		FrequencyPenalty: s.gen.FrequencyPenalty,
	})
	if err != nil {
		// The rejection already committed; the operator keeps the old
		// draft on screen and decides whether to retry.
		s.observe(generationKindRegeneration, "generation_failed", time.Since(start))
		s.failGeneration(token, StateReviewing, "Error during regeneration. Please try again.")
		s.logger.Error("regeneration failed", zap.Int64("submission_id", currentID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrGenerationFailed.Code, appErrors.ErrGenerationFailed.Status, "statement regeneration failed")
	}

	replacement := &models.Submission{
		OriginalText:   current.OriginalText,
		Context:        current.Context,
		TargetAudience: current.TargetAudience,
		Tone:           current.Tone,
		GeneratedText:  text,
		Status:         models.StatusPending,
		Notes:          current.Notes,
	}
	if err := s.submissions.Create(ctx, replacement); err != nil {
		s.observe(generationKindRegeneration, "storage_failed", time.Since(start))
		s.failGeneration(token, StateReviewing, "Error saving the regenerated statement.")
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to save submission")
	}

	s.observe(generationKindRegeneration, "success", time.Since(start))
	return s.commitGeneration(token, replacement.ID, text), nil
}

// Accept promotes the current draft into the approved corpus and closes the
// session. The status update and the corpus insert commit as one unit of
// work, and the current id clears immediately so a second accept fails
// instead of double-promoting.
func (s *WorkflowService) Accept(ctx context.Context) (*dto.AcceptResult, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, appErrors.ErrOperationInProgress
	}
	if s.state != StateReviewing || s.currentID == 0 {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "no statement has been generated yet")
	}
	currentID := s.currentID
	s.mu.Unlock()

	submission, err := s.submissions.GetByID(ctx, currentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "current submission not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load current submission")
	}

	topic := submission.Context
	if topic == "" {
		topic = submission.TargetAudience
	}

	statementID, err := s.promotions.PromoteFromSubmission(ctx, submission, topic)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to accept statement")
	}

	s.mu.Lock()
	s.currentID = 0
	s.state = StateClosed
	s.statusMessage = "Statement accepted and saved to your library."
	s.mu.Unlock()

	s.logger.Info("statement accepted",
		zap.Int64("submission_id", submission.ID),
		zap.Int64("statement_id", statementID),
	)
	return &dto.AcceptResult{SubmissionID: submission.ID, StatementID: statementID}, nil
}

func (s *WorkflowService) beginGeneration(message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return "", appErrors.ErrOperationInProgress
	}
	s.inFlight = true
	s.token = uuid.NewString()
	s.state = StateGenerating
	s.statusMessage = message
	return s.token, nil
}

// failGeneration resets the session after a failed generation. The token
// check discards stale completions whose session was reset underneath them.
func (s *WorkflowService) failGeneration(token, state, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		return
	}
	s.inFlight = false
	s.state = state
	s.statusMessage = message
}

func (s *WorkflowService) commitGeneration(token string, submissionID int64, text string) *dto.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		snapshot := s.snapshotLocked()
		return &snapshot
	}
	s.inFlight = false
	s.state = StateReviewing
	s.currentID = submissionID
	s.generatedText = text
	s.statusMessage = "Statement generated. Please review and accept or regenerate."
	snapshot := s.snapshotLocked()
	return &snapshot
}

func (s *WorkflowService) snapshotLocked() dto.SessionState {
	snapshot := dto.SessionState{
		State:         s.state,
		GeneratedText: s.generatedText,
		StatusMessage: s.statusMessage,
	}
	if s.currentID != 0 {
		id := s.currentID
		snapshot.CurrentSubmissionID = &id
	}
	return snapshot
}

func (s *WorkflowService) observe(kind, outcome string, duration time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveGeneration(kind, outcome, duration)
}
