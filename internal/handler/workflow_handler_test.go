package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seebrasse345/mp-statement-writer/internal/dto"
	appErrors "github.com/Seebrasse345/mp-statement-writer/pkg/errors"
)

type workflowServiceStub struct {
	state     *dto.SessionState
	accept    *dto.AcceptResult
	err       error
	submitted *dto.SubmitRequest
}

func (s *workflowServiceStub) Submit(ctx context.Context, req dto.SubmitRequest) (*dto.SessionState, error) {
	s.submitted = &req
	return s.state, s.err
}

func (s *workflowServiceStub) Regenerate(ctx context.Context) (*dto.SessionState, error) {
	return s.state, s.err
}

func (s *workflowServiceStub) Accept(ctx context.Context) (*dto.AcceptResult, error) {
	return s.accept, s.err
}

func (s *workflowServiceStub) Current() dto.SessionState {
	if s.state != nil {
		return *s.state
	}
	return dto.SessionState{State: "idle"}
}

func newWorkflowTestContext(t *testing.T, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestWorkflowHandlerSubmit(t *testing.T) {
	id := int64(7)
	svc := &workflowServiceStub{state: &dto.SessionState{
		State:               "reviewing",
		CurrentSubmissionID: &id,
		GeneratedText:       "Thank you for your patience.",
	}}
	h := NewWorkflowHandler(svc)

	c, w := newWorkflowTestContext(t, http.MethodPost, "/workflow/submit", dto.SubmitRequest{
		RawText: "Funding increased by £2m",
		Tone:    "Optimistic/Positive",
	})
	h.Submit(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.submitted)
	assert.Equal(t, "Funding increased by £2m", svc.submitted.RawText)

	var envelope struct {
		Data dto.SessionState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "reviewing", envelope.Data.State)
	assert.Equal(t, "Thank you for your patience.", envelope.Data.GeneratedText)
}

func TestWorkflowHandlerSubmitInvalidJSON(t *testing.T) {
	h := NewWorkflowHandler(&workflowServiceStub{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/workflow/submit", bytes.NewBufferString("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Submit(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrValidation.Code)
}

func TestWorkflowHandlerRegenerateConflict(t *testing.T) {
	h := NewWorkflowHandler(&workflowServiceStub{err: appErrors.ErrOperationInProgress})

	c, w := newWorkflowTestContext(t, http.MethodPost, "/workflow/regenerate", nil)
	h.Regenerate(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "OPERATION_IN_PROGRESS")
}

func TestWorkflowHandlerAccept(t *testing.T) {
	h := NewWorkflowHandler(&workflowServiceStub{accept: &dto.AcceptResult{SubmissionID: 7, StatementID: 42}})

	c, w := newWorkflowTestContext(t, http.MethodPost, "/workflow/accept", nil)
	h.Accept(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.AcceptResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, int64(7), envelope.Data.SubmissionID)
	assert.Equal(t, int64(42), envelope.Data.StatementID)
}

func TestWorkflowHandlerSession(t *testing.T) {
	h := NewWorkflowHandler(&workflowServiceStub{})

	c, w := newWorkflowTestContext(t, http.MethodGet, "/workflow/session", nil)
	h.Session(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"idle"`)
}

func TestWorkflowHandlerTones(t *testing.T) {
	h := NewWorkflowHandler(&workflowServiceStub{})

	c, w := newWorkflowTestContext(t, http.MethodGet, "/tones", nil)
	h.Tones(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Neutral/Balanced")
	assert.Contains(t, w.Body.String(), "Optimistic/Positive")
}
