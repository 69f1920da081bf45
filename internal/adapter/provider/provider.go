// Package provider abstracts the external reasoning service that generates
// questions, evaluates answers, synthesizes reports and transcribes audio.
package provider

import (
	"context"
	"io"

	"github.com/probeai/interviewd/internal/domain"
)

// QuestionContext carries everything the provider needs to generate one
// question. PriorTurns is optional; when present the provider uses it to
// diversify topics and avoid repetition.
type QuestionContext struct {
	ExperienceLevel domain.ExperienceLevel
	Subject         string
	Difficulty      domain.Difficulty
	QuestionNumber  int
	TotalQuestions  int
	PriorTurns      []domain.Turn
}

// ReportData is the provider's raw report output. OverallScore is nil when
// the provider omits it; the orchestrator then computes a local mean.
type ReportData struct {
	OverallScore       *float64 `json:"overall_score,omitempty"`
	DetailedFeedback   string   `json:"detailed_feedback"`
	StrongAreas        []string `json:"strong_areas"`
	WeakAreas          []string `json:"weak_areas"`
	Recommendations    []string `json:"recommendations"`
	HireRecommendation string   `json:"hire_recommendation"`
}

// Transcription is the result of a speech-to-text request.
type Transcription struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// Provider defines the reasoning-service capability surface. Responses are
// schema-validated at this boundary: missing or malformed optional fields are
// defaulted, never trusted downstream. Failures are wrapped in
// domain.ErrProvider and are not retried above this layer.
type Provider interface {
	GenerateQuestion(ctx context.Context, qc QuestionContext) (*domain.Question, error)
	EvaluateAnswer(ctx context.Context, question domain.Question, answer string, cfg domain.InterviewConfig) (*domain.Evaluation, error)
	GenerateReport(ctx context.Context, cfg domain.InterviewConfig, turns []domain.Turn) (*ReportData, error)
	Transcribe(ctx context.Context, filename string, audio io.Reader) (*Transcription, error)
}

// Ensure both implementations satisfy the interface.
var (
	_ Provider = (*Client)(nil)
	_ Provider = (*MockProvider)(nil)
)
