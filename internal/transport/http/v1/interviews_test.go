package v1

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/probeai/interviewd/internal/adapter/provider"
	"github.com/probeai/interviewd/internal/config"
	"github.com/probeai/interviewd/internal/domain"
	"github.com/probeai/interviewd/internal/service"
	"github.com/probeai/interviewd/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, *provider.MockProvider) {
	t.Helper()
	st := store.NewMemoryStore(time.Minute)
	mock := provider.NewMockProvider()
	cfg := &config.Config{MaxAnswerLen: 10000}
	svc := service.New(st, mock, cfg)
	return NewHandler(svc, 1<<20), mock
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func startTestInterview(t *testing.T, e *echo.Echo, h *Handler, numQuestions int) string {
	t.Helper()
	body := `{"experience_level":"junior","subject":"Networking","difficulty":"easy","num_questions":` +
		strconv.Itoa(numQuestions) + `}`
	c, rec := postJSON(e, "/api/interview/start", body)
	if err := h.StartInterview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp domain.StartInterviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.InterviewID
}

func TestStartInterviewEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	c, rec := postJSON(e, "/api/interview/start",
		`{"experience_level":"junior","subject":"Networking","difficulty":"easy","num_questions":2}`)
	if err := h.StartInterview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.StartInterviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	assert.NotEmpty(t, resp.InterviewID)
	assert.Equal(t, 2, resp.TotalQuestions)
	assert.Equal(t, 1, resp.FirstQuestion.QuestionNumber)
}

func TestStartInterviewEndpointValidation(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	c, rec := postJSON(e, "/api/interview/start",
		`{"experience_level":"wizard","subject":"Networking","difficulty":"easy"}`)
	if err := h.StartInterview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSubmitAnswerEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)
	id := startTestInterview(t, e, h, 2)

	c, rec := postJSON(e, "/api/interview/answer",
		`{"interview_id":"`+id+`","answer":"TCP is connection oriented.","question_number":1}`)
	if err := h.SubmitAnswer(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.SubmitAnswerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	assert.False(t, resp.IsComplete)
	assert.NotNil(t, resp.NextQuestion)
	assert.Equal(t, 2, resp.CurrentQuestionNum)
}

func TestSubmitAnswerEndpointWrongQuestion(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)
	id := startTestInterview(t, e, h, 2)

	c, rec := postJSON(e, "/api/interview/answer",
		`{"interview_id":"`+id+`","answer":"x","question_number":5}`)
	if err := h.SubmitAnswer(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSubmitAnswerEndpointNotFound(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	c, rec := postJSON(e, "/api/interview/answer",
		`{"interview_id":"iv_missing","answer":"x","question_number":1}`)
	if err := h.SubmitAnswer(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSubmitAnswerEndpointProviderFailure(t *testing.T) {
	e := echo.New()
	h, mock := newTestHandler(t)
	id := startTestInterview(t, e, h, 2)

	mock.Err = domain.ErrProvider
	c, rec := postJSON(e, "/api/interview/answer",
		`{"interview_id":"`+id+`","answer":"x","question_number":1}`)
	if err := h.SubmitAnswer(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestGetReportEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)
	id := startTestInterview(t, e, h, 1)

	// Report before completion is rejected.
	req := httptest.NewRequest(http.MethodGet, "/api/interview/report/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("interview_id")
	c.SetParamValues(id)
	if err := h.GetReport(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	c, rec2 := postJSON(e, "/api/interview/answer",
		`{"interview_id":"`+id+`","answer":"done","question_number":1}`)
	if err := h.SubmitAnswer(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec2.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/interview/report/"+id, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("interview_id")
	c.SetParamValues(id)
	if err := h.GetReport(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report domain.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	assert.Equal(t, id, report.InterviewID)
	assert.Equal(t, 1, report.QuestionsAnswered)
	assert.Len(t, report.Breakdown, 1)
}

func TestGetStatusEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)
	id := startTestInterview(t, e, h, 2)

	req := httptest.NewRequest(http.MethodGet, "/api/interview/status/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("interview_id")
	c.SetParamValues(id)
	if err := h.GetStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var iv domain.Interview
	if err := json.Unmarshal(rec.Body.Bytes(), &iv); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if iv.ID != id || iv.Status != domain.StatusInProgress || len(iv.Ledger) != 1 {
		t.Fatalf("unexpected state: %+v", iv)
	}
}

func TestGetStatusEndpointNotFound(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/interview/status/iv_missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("interview_id")
	c.SetParamValues("iv_missing")
	if err := h.GetStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetCurrentQuestionEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)
	id := startTestInterview(t, e, h, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/interview/question/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("interview_id")
	c.SetParamValues(id)
	if err := h.GetCurrentQuestion(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Question   *domain.Question `json:"question"`
		IsComplete bool             `json:"is_complete"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Question == nil || resp.IsComplete {
		t.Fatalf("unexpected response: %+v", resp)
	}

	c, rec2 := postJSON(e, "/api/interview/answer",
		`{"interview_id":"`+id+`","answer":"done","question_number":1}`)
	if err := h.SubmitAnswer(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec2.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/interview/question/"+id, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("interview_id")
	c.SetParamValues(id)
	if err := h.GetCurrentQuestion(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Question != nil || !resp.IsComplete {
		t.Fatalf("expected completion marker, got %+v", resp)
	}
}

func TestTranscribeEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "clip.mp3")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write([]byte("fake audio bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/speech/transcribe", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Transcribe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var tr provider.Transcription
	if err := json.Unmarshal(rec.Body.Bytes(), &tr); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	assert.NotEmpty(t, tr.Text)
}

func TestTranscribeEndpointBadExtension(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write([]byte("hello"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/speech/transcribe", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Transcribe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
