package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Transcribe converts an uploaded audio file to text.
// POST /api/speech/transcribe (multipart, field "file")
func (h *Handler) Transcribe(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	if max := h.maxAudioSize; max > 0 && fileHeader.Size > max {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "audio file too large"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read uploaded file"})
	}
	defer f.Close()

	tr, err := h.service.Transcribe(ctx, fileHeader.Filename, f)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, tr)
}
