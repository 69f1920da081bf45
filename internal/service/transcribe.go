package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/probeai/interviewd/internal/adapter/provider"
	"github.com/probeai/interviewd/internal/domain"
)

// supportedAudioExtensions are the upload formats the transcription provider
// accepts.
var supportedAudioExtensions = map[string]bool{
	".mp3":  true,
	".mp4":  true,
	".m4a":  true,
	".wav":  true,
	".webm": true,
	".ogg":  true,
	".flac": true,
}

// Transcribe forwards an audio upload to the provider's speech-to-text
// capability. The file extension is validated here; size limits are enforced
// at the transport layer.
func (s *Service) Transcribe(ctx context.Context, filename string, audio io.Reader) (*provider.Transcription, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedAudioExtensions[ext] {
		return nil, fmt.Errorf("%w: unsupported audio format %q", domain.ErrValidation, ext)
	}
	return s.provider.Transcribe(ctx, filename, audio)
}
