package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/probeai/interviewd/internal/domain"
)

// StartInterview creates a new interview session.
// POST /api/interview/start
func (h *Handler) StartInterview(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.StartInterviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	resp, err := h.service.StartInterview(ctx, req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// SubmitAnswer records an answer to the current question and returns the
// evaluation plus the next question.
// POST /api/interview/answer
func (h *Handler) SubmitAnswer(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.SubmitAnswerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	resp, err := h.service.SubmitAnswer(ctx, req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// GetReport returns the final report for a completed interview.
// GET /api/interview/report/:interview_id
func (h *Handler) GetReport(c echo.Context) error {
	ctx := c.Request().Context()
	interviewID := c.Param("interview_id")

	report, err := h.service.GetReport(ctx, interviewID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, report)
}

// GetStatus returns the full state of an interview session.
// GET /api/interview/status/:interview_id
func (h *Handler) GetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	interviewID := c.Param("interview_id")

	iv, err := h.service.GetInterviewState(ctx, interviewID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, iv)
}

// GetCurrentQuestion returns the question awaiting an answer.
// GET /api/interview/question/:interview_id
func (h *Handler) GetCurrentQuestion(c echo.Context) error {
	ctx := c.Request().Context()
	interviewID := c.Param("interview_id")

	q, err := h.service.GetCurrentQuestion(ctx, interviewID)
	if err != nil {
		return errorResponse(c, err)
	}
	if q == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"interview_id": interviewID,
			"question":     nil,
			"is_complete":  true,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"interview_id": interviewID,
		"question":     q,
		"is_complete":  false,
	})
}
