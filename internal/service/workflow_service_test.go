package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seebrasse345/mp-statement-writer/internal/dto"
	"github.com/Seebrasse345/mp-statement-writer/internal/llm"
	"github.com/Seebrasse345/mp-statement-writer/internal/models"
	"github.com/Seebrasse345/mp-statement-writer/pkg/config"
	appErrors "github.com/Seebrasse345/mp-statement-writer/pkg/errors"
)

type samplerStub struct {
	emulate []models.Example
	avoid   []models.Example
}

func (s *samplerStub) ForInitialGeneration(ctx context.Context) ([]models.Example, []models.Example) {
	return s.emulate, s.avoid
}

func (s *samplerStub) ForRegeneration(ctx context.Context, currentSubmissionID int64, audience, tone string) ([]models.Example, []models.Example) {
	return s.emulate, s.avoid
}

type workflowRepoStub struct {
	mu       sync.Mutex
	nextID   int64
	rows     map[int64]*models.Submission
	created  []*models.Submission
	statuses map[int64]models.SubmissionStatus

	createErr error
	getErr    error
	updateErr error
}

func newWorkflowRepoStub() *workflowRepoStub {
	return &workflowRepoStub{
		nextID:   1,
		rows:     map[int64]*models.Submission{},
		statuses: map[int64]models.SubmissionStatus{},
	}
}

func (r *workflowRepoStub) Create(ctx context.Context, submission *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	submission.ID = r.nextID
	r.nextID++
	copied := *submission
	r.rows[submission.ID] = &copied
	r.created = append(r.created, &copied)
	return nil
}

func (r *workflowRepoStub) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	row, ok := r.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (r *workflowRepoStub) UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	row, ok := r.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	row.Status = status
	r.statuses[id] = status
	return nil
}

type promotionStub struct {
	mu          sync.Mutex
	calls       int
	submission  *models.Submission
	topic       string
	statementID int64
	err         error
}

func (p *promotionStub) PromoteFromSubmission(ctx context.Context, submission *models.Submission, topic string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return 0, p.err
	}
	p.calls++
	p.submission = submission
	p.topic = topic
	if p.statementID == 0 {
		p.statementID = 42
	}
	return p.statementID, nil
}

type completionStub struct {
	mu      sync.Mutex
	text    string
	err     error
	systems []string
	prompts []string
	options []llm.Options
	block   chan struct{}
}

func (c *completionStub) Complete(ctx context.Context, systemPrompt, userPrompt string, opts llm.Options) (string, error) {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.systems = append(c.systems, systemPrompt)
	c.prompts = append(c.prompts, userPrompt)
	c.options = append(c.options, opts)
	if c.err != nil {
		return "", c.err
	}
	return c.text, nil
}

func testGenerationConfig() config.GenerationConfig {
	return config.GenerationConfig{
		Temperature:        0.7,
		RefreshTemperature: 0.9,
		PresencePenalty:    0.6,
		FrequencyPenalty:   0.6,
		MaxTokens:          1500,
	}
}

func newTestWorkflow(repo *workflowRepoStub, promo *promotionStub, completion *completionStub) *WorkflowService {
	return NewWorkflowService(&samplerStub{}, repo, promo, completion, testGenerationConfig(), nil, nil, nil)
}

func submitReq() dto.SubmitRequest {
	return dto.SubmitRequest{
		RawText:        "Funding increased by £2m",
		Context:        "local bypass project",
		TargetAudience: "residents",
		Tone:           "Optimistic/Positive",
	}
}

func TestWorkflowSubmitCreatesPendingSubmission(t *testing.T) {
	repo := newWorkflowRepoStub()
	completion := &completionStub{text: "Thank you for your patience."}
	svc := newTestWorkflow(repo, &promotionStub{}, completion)

	state, err := svc.Submit(context.Background(), submitReq())
	require.NoError(t, err)

	assert.Equal(t, StateReviewing, state.State)
	assert.Equal(t, "Thank you for your patience.", state.GeneratedText)
	require.NotNil(t, state.CurrentSubmissionID)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, "Funding increased by £2m", created.OriginalText)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "Thank you for your patience.", created.GeneratedText)

	require.Len(t, completion.prompts, 1)
	userPrompt := completion.prompts[0]
	assert.Contains(t, userPrompt, "Funding increased by £2m")
	assert.Contains(t, userPrompt, "local bypass project")
	assert.Contains(t, userPrompt, "residents")
	assert.Contains(t, userPrompt, "opportunities, solutions and positive outcomes")
	assert.NotContains(t, userPrompt, "EXAMPLES TO EMULATE")
	assert.NotContains(t, userPrompt, "EXAMPLES TO AVOID")

	require.Len(t, completion.options, 1)
	assert.InDelta(t, 0.7, completion.options[0].Temperature, 1e-9)
	assert.Zero(t, completion.options[0].PresencePenalty)
	assert.Equal(t, int64(1500), completion.options[0].MaxTokens)
}

func TestWorkflowSubmitRequiresRawText(t *testing.T) {
	svc := newTestWorkflow(newWorkflowRepoStub(), &promotionStub{}, &completionStub{text: "x"})

	_, err := svc.Submit(context.Background(), dto.SubmitRequest{RawText: "   "})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, StateIdle, svc.Current().State)
}

func TestWorkflowSubmitGenerationFailureWritesNothing(t *testing.T) {
	repo := newWorkflowRepoStub()
	completion := &completionStub{err: errors.New("upstream timeout")}
	svc := newTestWorkflow(repo, &promotionStub{}, completion)

	_, err := svc.Submit(context.Background(), submitReq())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrGenerationFailed.Code, appErrors.FromError(err).Code)

	assert.Empty(t, repo.created)
	state := svc.Current()
	assert.Equal(t, StateIdle, state.State)
	assert.Nil(t, state.CurrentSubmissionID)
}

func TestWorkflowSubmitRejectsConcurrentGeneration(t *testing.T) {
	repo := newWorkflowRepoStub()
	completion := &completionStub{text: "done", block: make(chan struct{})}
	svc := newTestWorkflow(repo, &promotionStub{}, completion)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), submitReq())
		firstDone <- err
	}()

	// Wait until the first submit has claimed the session.
	for svc.Current().State != StateGenerating {
		time.Sleep(time.Millisecond)
	}

	_, err := svc.Submit(context.Background(), submitReq())
	assert.ErrorIs(t, err, appErrors.ErrOperationInProgress)

	close(completion.block)
	require.NoError(t, <-firstDone)
	assert.Len(t, repo.created, 1)
}

func TestWorkflowRegenerateRejectsThenReplaces(t *testing.T) {
	repo := newWorkflowRepoStub()
	completion := &completionStub{text: "first draft"}
	svc := newTestWorkflow(repo, &promotionStub{}, completion)

	state, err := svc.Submit(context.Background(), submitReq())
	require.NoError(t, err)
	firstID := *state.CurrentSubmissionID

	completion.text = "second draft"
	state, err = svc.Regenerate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, repo.statuses[firstID])
	require.NotNil(t, state.CurrentSubmissionID)
	assert.NotEqual(t, firstID, *state.CurrentSubmissionID)
	assert.Equal(t, "second draft", state.GeneratedText)

	require.Len(t, repo.created, 2)
	first, second := repo.created[0], repo.created[1]
	assert.Equal(t, first.OriginalText, second.OriginalText)
	assert.Equal(t, first.Context, second.Context)
	assert.Equal(t, first.TargetAudience, second.TargetAudience)
	assert.Equal(t, first.Tone, second.Tone)
	assert.Equal(t, models.StatusPending, second.Status)

	require.Len(t, completion.options, 2)
	regen := completion.options[1]
	assert.InDelta(t, 0.9, regen.Temperature, 1e-9)
	assert.InDelta(t, 0.6, regen.PresencePenalty, 1e-9)
	assert.InDelta(t, 0.6, regen.FrequencyPenalty, 1e-9)
	assert.NotEqual(t, completion.systems[0], completion.systems[1])
}

func TestWorkflowRegenerateWithoutDraft(t *testing.T) {
	svc := newTestWorkflow(newWorkflowRepoStub(), &promotionStub{}, &completionStub{text: "x"})

	_, err := svc.Regenerate(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestWorkflowRegenerateFailureKeepsRejection(t *testing.T) {
	repo := newWorkflowRepoStub()
	completion := &completionStub{text: "first draft"}
	svc := newTestWorkflow(repo, &promotionStub{}, completion)

	state, err := svc.Submit(context.Background(), submitReq())
	require.NoError(t, err)
	firstID := *state.CurrentSubmissionID

	completion.err = errors.New("upstream timeout")
	_, err = svc.Regenerate(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrGenerationFailed.Code, appErrors.FromError(err).Code)

	// The rejection committed before generation and is not rolled back.
	assert.Equal(t, models.StatusRejected, repo.statuses[firstID])
	assert.Equal(t, StateReviewing, svc.Current().State)
	assert.Len(t, repo.created, 1)
}

func TestWorkflowAcceptPromotesOnce(t *testing.T) {
	repo := newWorkflowRepoStub()
	promo := &promotionStub{statementID: 99}
	svc := newTestWorkflow(repo, promo, &completionStub{text: "final"})

	state, err := svc.Submit(context.Background(), submitReq())
	require.NoError(t, err)
	submissionID := *state.CurrentSubmissionID

	result, err := svc.Accept(context.Background())
	require.NoError(t, err)
	assert.Equal(t, submissionID, result.SubmissionID)
	assert.Equal(t, int64(99), result.StatementID)
	assert.Equal(t, 1, promo.calls)
	assert.Equal(t, "local bypass project", promo.topic)
	assert.Equal(t, StateClosed, svc.Current().State)

	_, err = svc.Accept(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 1, promo.calls)
}

func TestWorkflowAcceptTopicFallsBackToAudience(t *testing.T) {
	repo := newWorkflowRepoStub()
	promo := &promotionStub{}
	svc := newTestWorkflow(repo, promo, &completionStub{text: "final"})

	req := submitReq()
	req.Context = ""
	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "residents", promo.topic)
}
