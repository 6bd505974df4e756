package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/visa-photo/internal/models"
	"github.com/phambaophuc/visa-photo/internal/services/compositor"
	"github.com/phambaophuc/visa-photo/internal/services/processor"
	"go.uber.org/zap"
)

// === RESPONSE HANDLING ===

func respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// processingStatus maps processor and compositor errors to a status code and
// a message that is safe to show to the client.
func processingStatus(err error) (int, string) {
	switch {
	case errors.Is(err, processor.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, processor.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, processor.ErrDecode),
		errors.Is(err, processor.ErrEmptyCrop),
		errors.Is(err, compositor.ErrInvalidTransform):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Failed to process photo"
	}
}

func (h *PhotoHandler) respondProcessingError(c *gin.Context, err error) {
	status, message := processingStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Processing failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
	}
	respondError(c, status, message)
}

// === FILE OPERATIONS ===

func openFiles(files []*multipart.FileHeader) ([]multipart.File, error) {
	openedFiles := make([]multipart.File, 0, len(files))

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			closeFiles(openedFiles)
			return nil, err
		}
		openedFiles = append(openedFiles, f)
	}

	return openedFiles, nil
}

func closeFiles(files []multipart.File) {
	for _, file := range files {
		if file != nil {
			file.Close()
		}
	}
}

// === UTILITY METHODS ===

func calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}
