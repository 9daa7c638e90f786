package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sikt-nva/fs-courses-api/internal/middleware"
	"github.com/sikt-nva/fs-courses-api/internal/models"
	appErrors "github.com/sikt-nva/fs-courses-api/pkg/errors"
	"github.com/sikt-nva/fs-courses-api/pkg/response"
)

type courseService interface {
	ListForCaller(ctx context.Context, identity models.CallerIdentity) ([]models.Course, bool, error)
}

// CourseHandler serves the currently taught courses of the caller's institution.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service courseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// Current godoc
// @Summary Courses currently taught at the caller's institution
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /courses/current [get]
func (h *CourseHandler) Current(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	identity, ok := callerFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	courses, cacheHit, err := h.service.ListForCaller(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ResponseMeta(c)
	meta["count"] = len(courses)
	response.JSON(c, http.StatusOK, models.NewCourseList(courses), meta)
}
