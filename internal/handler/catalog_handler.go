package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/collegeconnect/suggester-backend/internal/response"
	"github.com/collegeconnect/suggester-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// CatalogHandler serves the reference dictionaries used to build queries.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListRegions godoc
// GET /api/v1/regions
func (h *CatalogHandler) ListRegions(c *gin.Context) {
	regions, err := h.catalogService.Regions(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"regions": regions})
}

// ListCourses godoc
// GET /api/v1/courses
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	courses, err := h.catalogService.Courses(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// ListColleges godoc
// GET /api/v1/colleges
func (h *CatalogHandler) ListColleges(c *gin.Context) {
	colleges, err := h.catalogService.Colleges(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"colleges": colleges})
}

// GetCollege godoc
// GET /api/v1/colleges/:college_id
func (h *CatalogHandler) GetCollege(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("college_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	college, err := h.catalogService.College(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"college": college})
}
