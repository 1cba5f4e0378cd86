package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Seebrasse345/mp-statement-writer/internal/dto"
	appErrors "github.com/Seebrasse345/mp-statement-writer/pkg/errors"
	"github.com/Seebrasse345/mp-statement-writer/pkg/response"
)

type importService interface {
	ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
}

// ImportHandler exposes bulk CSV import of past statements.
type ImportHandler struct {
	service importService
}

// NewImportHandler builds a new handler.
func NewImportHandler(service importService) *ImportHandler {
	return &ImportHandler{service: service}
}

// ImportStatements godoc
// @Summary Import past statements from a CSV file
// @Tags History
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file with text/topic/tone/tags columns"
// @Success 200 {object} response.Envelope
// @Router /statements/import [post]
func (h *ImportHandler) ImportStatements(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "a CSV file upload named 'file' is required"))
		return
	}
	defer file.Close()

	result, err := h.service.ImportCSV(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
