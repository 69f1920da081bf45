package provider

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/probeai/interviewd/internal/domain"
)

// MockProvider is a deterministic Provider for tests and offline development.
// By default every answer scores 7; tests can queue explicit scores or inject
// an error to exercise failure paths.
type MockProvider struct {
	mu sync.Mutex

	// Scores is consumed front-to-back by EvaluateAnswer; when drained the
	// default score is used.
	Scores []int

	// Report, when set, is returned verbatim by GenerateReport.
	Report *ReportData

	// Err, when set, is returned by every call.
	Err error
}

// NewMockProvider creates a mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// GenerateQuestion returns a canned question for the requested slot.
func (m *MockProvider) GenerateQuestion(ctx context.Context, qc QuestionContext) (*domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.Question{
		QuestionNumber: qc.QuestionNumber,
		Question: fmt.Sprintf("[MOCK] Explain a core %s concept (question %d of %d).",
			qc.Subject, qc.QuestionNumber, qc.TotalQuestions),
		Difficulty: qc.Difficulty,
		Topic:      qc.Subject + " fundamentals",
	}, nil
}

// EvaluateAnswer returns a canned evaluation, consuming a queued score when
// one is available.
func (m *MockProvider) EvaluateAnswer(ctx context.Context, question domain.Question, answer string, cfg domain.InterviewConfig) (*domain.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	score := 7
	if len(m.Scores) > 0 {
		score = m.Scores[0]
		m.Scores = m.Scores[1:]
	}
	return &domain.Evaluation{
		Score:                  score,
		Correctness:            "[MOCK] Mostly accurate.",
		Depth:                  "[MOCK] Reasonable depth.",
		Clarity:                "[MOCK] Clear structure.",
		PracticalUnderstanding: "[MOCK] Some practical grounding.",
		Strengths:              []string{"clear explanation"},
		AreasForImprovement:    []string{"add concrete examples"},
		Feedback:               fmt.Sprintf("[MOCK] Evaluated answer of %d characters.", len(answer)),
	}, nil
}

// GenerateReport returns the configured report, or a canned one without an
// overall score so the orchestrator computes the local mean.
func (m *MockProvider) GenerateReport(ctx context.Context, cfg domain.InterviewConfig, turns []domain.Turn) (*ReportData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Report != nil {
		return m.Report, nil
	}
	return &ReportData{
		DetailedFeedback:   fmt.Sprintf("[MOCK] Assessment over %d answered questions on %s.", len(turns), cfg.Subject),
		StrongAreas:        []string{"fundamentals"},
		WeakAreas:          []string{"edge cases"},
		Recommendations:    []string{"practice system design questions"},
		HireRecommendation: "Hire - meets expectations for the experience level",
	}, nil
}

// Transcribe returns a canned transcription.
func (m *MockProvider) Transcribe(ctx context.Context, filename string, audio io.Reader) (*Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	n, err := io.Copy(io.Discard, audio)
	if err != nil {
		return nil, err
	}
	return &Transcription{
		Text:     fmt.Sprintf("[MOCK] Transcribed %d bytes from %s.", n, filename),
		Language: "en",
	}, nil
}
