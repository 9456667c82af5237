package handler

import (
	"net/http"

	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/collegeconnect/suggester-backend/internal/response"
	"github.com/collegeconnect/suggester-backend/internal/service"
	"github.com/collegeconnect/suggester-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// maxImportRows bounds a single import request.
const maxImportRows = 50000

// ImportHandler exposes the admin cutoff ingestion endpoints.
type ImportHandler struct {
	importService     service.ImportService
	suggestionService service.SuggestionService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService service.ImportService, suggestionService service.SuggestionService) *ImportHandler {
	return &ImportHandler{
		importService:     importService,
		suggestionService: suggestionService,
	}
}

// importRequest is the payload for POST /admin/import/cutoffs.
type importRequest struct {
	Rows []model.CutoffImportRow `json:"rows" binding:"required,min=1"`
}

// ImportCutoffs godoc
// POST /api/v1/admin/import/cutoffs
// Ingests a structured batch of cutoff rows. Bad rows are reported and
// skipped; the batch proceeds. A successful import swaps in a fresh
// engine snapshot before returning.
func (h *ImportHandler) ImportCutoffs(c *gin.Context) {
	var req importRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if len(req.Rows) > maxImportRows {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"rows": "too many rows in one batch",
		})
		return
	}

	report, err := h.importService.ImportBatch(c.Request.Context(), req.Rows)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrImportFailed)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"report":           report,
		"snapshot_version": h.suggestionService.SnapshotVersion(),
	})
}

// RefreshSnapshot godoc
// POST /api/v1/admin/snapshot/refresh
// Rebuilds the engine snapshot from Postgres on demand.
func (h *ImportHandler) RefreshSnapshot(c *gin.Context) {
	if err := h.suggestionService.Rebuild(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"snapshot_version": h.suggestionService.SnapshotVersion(),
	})
}
