package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Seebrasse345/mp-statement-writer/internal/dto"
	"github.com/Seebrasse345/mp-statement-writer/internal/prompt"
	appErrors "github.com/Seebrasse345/mp-statement-writer/pkg/errors"
	"github.com/Seebrasse345/mp-statement-writer/pkg/response"
)

type workflowService interface {
	Submit(ctx context.Context, req dto.SubmitRequest) (*dto.SessionState, error)
	Regenerate(ctx context.Context) (*dto.SessionState, error)
	Accept(ctx context.Context) (*dto.AcceptResult, error)
	Current() dto.SessionState
}

// WorkflowHandler exposes the generation workflow endpoints.
type WorkflowHandler struct {
	service workflowService
}

// NewWorkflowHandler builds a new handler.
func NewWorkflowHandler(service workflowService) *WorkflowHandler {
	return &WorkflowHandler{service: service}
}

// Submit godoc
// @Summary Submit a raw government statement for rewriting
// @Tags Workflow
// @Accept json
// @Produce json
// @Param payload body dto.SubmitRequest true "Statement payload"
// @Success 200 {object} response.Envelope
// @Router /workflow/submit [post]
func (h *WorkflowHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submit payload"))
		return
	}
	state, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// Regenerate godoc
// @Summary Reject the current draft and generate a different one
// @Tags Workflow
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /workflow/regenerate [post]
func (h *WorkflowHandler) Regenerate(c *gin.Context) {
	state, err := h.service.Regenerate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// Accept godoc
// @Summary Accept the current draft into the approved corpus
// @Tags Workflow
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /workflow/accept [post]
func (h *WorkflowHandler) Accept(c *gin.Context) {
	result, err := h.service.Accept(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Session godoc
// @Summary Read the current editing session state
// @Tags Workflow
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /workflow/session [get]
func (h *WorkflowHandler) Session(c *gin.Context) {
	state := h.service.Current()
	response.JSON(c, http.StatusOK, state, nil)
}

// Tones godoc
// @Summary List the tone catalog labels
// @Tags Workflow
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tones [get]
func (h *WorkflowHandler) Tones(c *gin.Context) {
	response.JSON(c, http.StatusOK, prompt.Tones(), nil)
}
