// Package v1 provides HTTP handlers for the interview API.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/probeai/interviewd/internal/domain"
	"github.com/probeai/interviewd/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service

	// maxAudioSize caps transcription uploads in bytes; <= 0 disables the cap.
	maxAudioSize int64
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service, maxAudioSize int64) *Handler {
	return &Handler{
		service:      service,
		maxAudioSize: maxAudioSize,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Interview API
	e.POST("/api/interview/start", h.StartInterview)
	e.POST("/api/interview/answer", h.SubmitAnswer)
	e.GET("/api/interview/report/:interview_id", h.GetReport)
	e.GET("/api/interview/status/:interview_id", h.GetStatus)
	e.GET("/api/interview/question/:interview_id", h.GetCurrentQuestion)

	// Speech API
	e.POST("/api/speech/transcribe", h.Transcribe)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// errorResponse translates a service error into an HTTP response.
func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyCompleted),
		errors.Is(err, domain.ErrInvalidQuestionNumber),
		errors.Is(err, domain.ErrNotCompleted),
		errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrProvider):
		status = http.StatusBadGateway
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
