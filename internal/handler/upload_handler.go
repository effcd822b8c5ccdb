package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heimweh17/GatorGrades/internal/ingest"
	"github.com/heimweh17/GatorGrades/internal/repository"
	"github.com/heimweh17/GatorGrades/internal/response"
	"github.com/heimweh17/GatorGrades/internal/service"
)

type UploadHandler struct {
	ingestService  *service.IngestService
	maxUploadBytes int64
}

func NewUploadHandler(ingestService *service.IngestService, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		ingestService:  ingestService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload godoc
// POST /api/upload (multipart, field "file")
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgFileMissing)
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		response.Error(c, http.StatusBadRequest, "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}
	defer file.Close()

	result, err := h.ingestService.Ingest(c.Request.Context(), file)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, ingest.ErrBadFile):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrConflict):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrInvalidValue):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
	}
}
