package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/heimweh17/GatorGrades/internal/model"
	"github.com/heimweh17/GatorGrades/internal/response"
	"github.com/heimweh17/GatorGrades/internal/service"
)

type CourseHandler struct {
	courseService *service.CourseService
	reportService *service.ReportService
}

func NewCourseHandler(courseService *service.CourseService, reportService *service.ReportService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		reportService: reportService,
	}
}

// List godoc
// GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	if courses == nil {
		courses = []model.Course{}
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// Summary godoc
// GET /api/courses/:id/summary
func (h *CourseHandler) Summary(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidID)
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), id)
	if errors.Is(err, service.ErrCourseNotFound) {
		response.Error(c, http.StatusNotFound, response.MsgNotFound)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Distribution godoc
// GET /api/courses/:id/distribution?assignmentId=
func (h *CourseHandler) Distribution(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidID)
		return
	}

	assignmentID := 0
	if raw := c.Query("assignmentId"); raw != "" {
		if assignmentID, err = strconv.Atoi(raw); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid assignment id")
			return
		}
	}

	buckets, err := h.reportService.Distribution(c.Request.Context(), id, assignmentID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	c.JSON(http.StatusOK, gin.H{"buckets": buckets})
}

// Trends godoc
// GET /api/courses/:id/trends
func (h *CourseHandler) Trends(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidID)
		return
	}

	trends, err := h.reportService.Trends(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trends": trends})
}
