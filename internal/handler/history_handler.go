package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Seebrasse345/mp-statement-writer/internal/models"
	appErrors "github.com/Seebrasse345/mp-statement-writer/pkg/errors"
	"github.com/Seebrasse345/mp-statement-writer/pkg/response"
)

type historyService interface {
	ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, *models.Pagination, error)
	GetSubmission(ctx context.Context, id int64) (*models.Submission, error)
	ListStatements(ctx context.Context, filter models.StatementFilter) ([]models.ApprovedStatement, *models.Pagination, error)
	GetStatement(ctx context.Context, id int64) (*models.ApprovedStatement, error)
}

// HistoryHandler exposes read-only corpus browsing endpoints.
type HistoryHandler struct {
	service historyService
}

// NewHistoryHandler builds a new handler.
func NewHistoryHandler(service historyService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// ListSubmissions godoc
// @Summary List or search submissions
// @Tags History
// @Produce json
// @Param status query string false "Filter by status (pending, accepted, rejected)"
// @Param search query string false "Case-insensitive substring search"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /submissions [get]
func (h *HistoryHandler) ListSubmissions(c *gin.Context) {
	filter := models.SubmissionFilter{
		Search:   c.Query("search"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 20),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.SubmissionStatus(raw)
		if !status.Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "status must be pending, accepted or rejected"))
			return
		}
		filter.Status = &status
	}
	rows, pagination, err := h.service.ListSubmissions(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, pagination)
}

// GetSubmission godoc
// @Summary Get a submission by id
// @Tags History
// @Produce json
// @Param id path int true "Submission id"
// @Success 200 {object} response.Envelope
// @Router /submissions/{id} [get]
func (h *HistoryHandler) GetSubmission(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid submission id"))
		return
	}
	submission, err := h.service.GetSubmission(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, submission, nil)
}

// ListStatements godoc
// @Summary List or search approved statements
// @Tags History
// @Produce json
// @Param search query string false "Case-insensitive substring search"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /statements [get]
func (h *HistoryHandler) ListStatements(c *gin.Context) {
	filter := models.StatementFilter{
		Search:   c.Query("search"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 20),
	}
	rows, pagination, err := h.service.ListStatements(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, pagination)
}

// GetStatement godoc
// @Summary Get an approved statement by id
// @Tags History
// @Produce json
// @Param id path int true "Statement id"
// @Success 200 {object} response.Envelope
// @Router /statements/{id} [get]
func (h *HistoryHandler) GetStatement(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid statement id"))
		return
	}
	statement, err := h.service.GetStatement(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, statement, nil)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
