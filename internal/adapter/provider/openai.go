package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/probeai/interviewd/internal/domain"
)

const (
	defaultMaxTokens       = 2000
	reportMaxTokens        = 3000
	transcriptionModel     = "whisper-1"
	transientRetryAttempts = 2
)

// Client talks to an OpenAI-compatible chat completion API. Rate-limit and
// upstream 5xx responses are retried a couple of times with exponential
// backoff inside this adapter; once a call fails for good it surfaces as
// domain.ErrProvider and nothing above this layer retries it.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a provider client.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatJSON sends a completion request pinned to JSON output and decodes the
// assistant's message into out.
func (c *Client) chatJSON(ctx context.Context, system, user string, temperature float64, maxTokens int, out interface{}) error {
	reqBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", domain.ErrProvider, err)
	}

	var respBody []byte
	operation := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/v1/chat/completions", bytes.NewReader(reqBody))
		if err != nil {
			return backoff.Permanent(err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("provider API error [%d]: %s", resp.StatusCode, string(body))
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("provider API error [%d]: %s", resp.StatusCode, string(body)))
		}
		respBody = body
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), transientRetryAttempts), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return fmt.Errorf("%w: unmarshal response: %v", domain.ErrProvider, err)
	}
	if len(parsed.Choices) == 0 {
		return fmt.Errorf("%w: empty choices", domain.ErrProvider)
	}
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("%w: malformed structured output: %v", domain.ErrProvider, err)
	}
	return nil
}

// GenerateQuestion asks the provider for the next question. Missing fields
// are defaulted from the request context rather than rejected.
func (c *Client) GenerateQuestion(ctx context.Context, qc QuestionContext) (*domain.Question, error) {
	var raw struct {
		Question   string `json:"question"`
		Topic      string `json:"topic"`
		Difficulty string `json:"difficulty"`
	}
	user := fmt.Sprintf("Generate question %d of %d for this %s interview.",
		qc.QuestionNumber, qc.TotalQuestions, qc.Subject)
	if err := c.chatJSON(ctx, questionSystemPrompt(qc), user, 0.8, defaultMaxTokens, &raw); err != nil {
		return nil, err
	}

	if raw.Question == "" {
		return nil, fmt.Errorf("%w: response missing question text", domain.ErrProvider)
	}
	difficulty := domain.Difficulty(raw.Difficulty)
	if !difficulty.Valid() {
		difficulty = qc.Difficulty
	}
	topic := raw.Topic
	if topic == "" {
		topic = qc.Subject
	}
	return &domain.Question{
		QuestionNumber: qc.QuestionNumber,
		Question:       raw.Question,
		Difficulty:     difficulty,
		Topic:          topic,
	}, nil
}

// EvaluateAnswer asks the provider to judge an answer. A missing score
// defaults to the neutral midpoint, an out-of-range one is clamped.
func (c *Client) EvaluateAnswer(ctx context.Context, question domain.Question, answer string, cfg domain.InterviewConfig) (*domain.Evaluation, error) {
	var raw struct {
		Score                  *int     `json:"score"`
		Correctness            string   `json:"correctness"`
		Depth                  string   `json:"depth"`
		Clarity                string   `json:"clarity"`
		PracticalUnderstanding string   `json:"practical_understanding"`
		Strengths              []string `json:"strengths"`
		AreasForImprovement    []string `json:"areas_for_improvement"`
		Feedback               string   `json:"feedback"`
	}
	if err := c.chatJSON(ctx, evaluationSystemPrompt(cfg), evaluationUserPrompt(question, answer), 0.3, defaultMaxTokens, &raw); err != nil {
		return nil, err
	}

	score := 5
	if raw.Score != nil {
		score = *raw.Score
	}
	if score < 1 {
		score = 1
	} else if score > 10 {
		score = 10
	}
	return &domain.Evaluation{
		Score:                  score,
		Correctness:            raw.Correctness,
		Depth:                  raw.Depth,
		Clarity:                raw.Clarity,
		PracticalUnderstanding: raw.PracticalUnderstanding,
		Strengths:              raw.Strengths,
		AreasForImprovement:    raw.AreasForImprovement,
		Feedback:               raw.Feedback,
	}, nil
}

// GenerateReport asks the provider for the final narrative report.
func (c *Client) GenerateReport(ctx context.Context, cfg domain.InterviewConfig, turns []domain.Turn) (*ReportData, error) {
	var raw ReportData
	if err := c.chatJSON(ctx, reportSystemPrompt(cfg), reportUserPrompt(turns), 0.4, reportMaxTokens, &raw); err != nil {
		return nil, err
	}
	if raw.HireRecommendation == "" {
		raw.HireRecommendation = "Unable to determine"
	}
	return &raw, nil
}

// Transcribe uploads audio to the provider's transcription endpoint.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader) (*Transcription, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("%w: read audio: %v", domain.ErrProvider, err)
	}
	if err := mw.WriteField("model", transcriptionModel); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/audio/transcriptions", &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrProvider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: transcription API error [%d]: %s", domain.ErrProvider, resp.StatusCode, string(body))
	}

	var out Transcription
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: unmarshal transcription: %v", domain.ErrProvider, err)
	}
	return &out, nil
}
