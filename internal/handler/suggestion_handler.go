package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/collegeconnect/suggester-backend/internal/engine"
	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/collegeconnect/suggester-backend/internal/response"
	"github.com/collegeconnect/suggester-backend/internal/service"
	"github.com/collegeconnect/suggester-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// SuggestionHandler exposes the suggestion engine over HTTP.
type SuggestionHandler struct {
	suggestionService service.SuggestionService
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(suggestionService service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

// profileQuery carries the student profile on GET endpoints.
type profileQuery struct {
	Metric     string   `form:"metric" binding:"required,oneof=rank percentile"`
	Rank       *int     `form:"rank" binding:"omitempty,min=1"`
	Percentile *float64 `form:"percentile" binding:"omitempty,gte=0,lte=100"`
	Category   string   `form:"category" binding:"required"`
}

func (q *profileQuery) toQuery() *model.StudentQuery {
	return &model.StudentQuery{
		Metric:     model.ScoreMetric(q.Metric),
		Rank:       q.Rank,
		Percentile: q.Percentile,
		Category:   model.Category(q.Category),
	}
}

// Suggest godoc
// POST /api/v1/suggestions
// Matches a student profile against the cutoff snapshot and returns a
// ranked suggestion list.
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	var req model.SuggestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.suggestionService.Suggest(c.Request.Context(), req.ToQuery())
	if err != nil {
		failSuggestion(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CollegeCutoffs godoc
// GET /api/v1/colleges/:college_id/cutoffs?metric=rank&rank=4500&category=OBC
// Returns the cutoff rows of one college the profile qualifies for,
// across all rounds.
func (h *SuggestionHandler) CollegeCutoffs(c *gin.Context) {
	collegeID, err := strconv.Atoi(c.Param("college_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var pq profileQuery
	if fields := validator.BindQuery(c, &pq); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	records, err := h.suggestionService.CollegeCutoffs(c.Request.Context(), collegeID, pq.toQuery())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		failSuggestion(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"college_id": collegeID,
		"cutoffs":    records,
	})
}

// Statistics godoc
// GET /api/v1/statistics?metric=percentile&percentile=92.5&category=OPEN
// Summarizes the full candidate set for a profile without truncation.
func (h *SuggestionHandler) Statistics(c *gin.Context) {
	var pq profileQuery
	if fields := validator.BindQuery(c, &pq); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	stats, err := h.suggestionService.Statistics(c.Request.Context(), pq.toQuery())
	if err != nil {
		failSuggestion(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// failSuggestion maps engine errors onto API error codes.
func failSuggestion(c *gin.Context, err error) {
	var invalidQuery *engine.InvalidQueryError
	var unavailable *engine.DataUnavailableError
	switch {
	case errors.As(err, &invalidQuery):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidQuery)
	case errors.As(err, &unavailable):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrDataUnavailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
