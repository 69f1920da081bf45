package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/probeai/interviewd/internal/adapter/provider"
	"github.com/probeai/interviewd/internal/domain"
)

const (
	// scoreWindow is the number of recent evaluations fed to the adaptive
	// difficulty calculation.
	scoreWindow = 3

	// answerPreviewLen bounds the answer excerpt in the report breakdown.
	answerPreviewLen = 200
)

// StartInterview creates a new interview session, generates the first
// question and persists the initial state.
func (s *Service) StartInterview(ctx context.Context, req domain.StartInterviewRequest) (*domain.StartInterviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cfg := domain.InterviewConfig{
		ExperienceLevel: req.ExperienceLevel,
		Subject:         req.Subject,
		Difficulty:      req.Difficulty,
		NumQuestions:    req.NumQuestions,
	}

	firstQuestion, err := s.provider.GenerateQuestion(ctx, provider.QuestionContext{
		ExperienceLevel: cfg.ExperienceLevel,
		Subject:         cfg.Subject,
		Difficulty:      cfg.Difficulty,
		QuestionNumber:  1,
		TotalQuestions:  cfg.NumQuestions,
	})
	if err != nil {
		return nil, err
	}

	iv := &domain.Interview{
		ID:     "iv_" + uuid.New().String(),
		Config: cfg,
		Status: domain.StatusInProgress,
	}
	if err := iv.AppendQuestion(*firstQuestion); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, iv); err != nil {
		return nil, fmt.Errorf("failed to store interview: %w", err)
	}

	log.Printf("interview %s started: subject=%q level=%s questions=%d",
		iv.ID, cfg.Subject, cfg.ExperienceLevel, cfg.NumQuestions)

	return &domain.StartInterviewResponse{
		InterviewID:    iv.ID,
		FirstQuestion:  *firstQuestion,
		TotalQuestions: cfg.NumQuestions,
		Config:         cfg,
	}, nil
}

// SubmitAnswer evaluates an answer to the current question, records it in the
// ledger and, unless the interview just completed, adapts the difficulty and
// appends the next question. The whole read-modify-write runs under the
// per-interview lock.
func (s *Service) SubmitAnswer(ctx context.Context, req domain.SubmitAnswerRequest) (*domain.SubmitAnswerResponse, error) {
	maxLen := 0
	if s.config != nil {
		maxLen = s.config.MaxAnswerLen
	}
	if err := req.Validate(maxLen); err != nil {
		return nil, err
	}

	mu := s.lockInterview(req.InterviewID)
	mu.Lock()
	defer mu.Unlock()

	iv, err := s.store.Get(ctx, req.InterviewID)
	if err != nil {
		return nil, err
	}
	if iv.Status == domain.StatusCompleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyCompleted, iv.ID)
	}
	if req.QuestionNumber != iv.CurrentQuestionNum {
		return nil, fmt.Errorf("%w: expected %d, got %d",
			domain.ErrInvalidQuestionNumber, iv.CurrentQuestionNum, req.QuestionNumber)
	}

	current := iv.Ledger[len(iv.Ledger)-1]
	eval, err := s.provider.EvaluateAnswer(ctx, current.Question, req.Answer, iv.Config)
	if err != nil {
		return nil, err
	}

	if err := iv.RecordAnswer(req.QuestionNumber, req.Answer, *eval); err != nil {
		return nil, err
	}

	isComplete := iv.CurrentQuestionNum >= iv.Config.NumQuestions
	var nextQuestion *domain.Question

	if isComplete {
		iv.Status = domain.StatusCompleted
		log.Printf("interview %s completed after %d questions", iv.ID, iv.CurrentQuestionNum)
	} else {
		nextDifficulty := domain.NextDifficulty(iv.Config.Difficulty, iv.RecentScores(scoreWindow))

		nextQuestion, err = s.provider.GenerateQuestion(ctx, provider.QuestionContext{
			ExperienceLevel: iv.Config.ExperienceLevel,
			Subject:         iv.Config.Subject,
			Difficulty:      nextDifficulty,
			QuestionNumber:  iv.CurrentQuestionNum + 1,
			TotalQuestions:  iv.Config.NumQuestions,
			PriorTurns:      iv.Ledger,
		})
		if err != nil {
			return nil, err
		}
		if err := iv.AppendQuestion(*nextQuestion); err != nil {
			return nil, err
		}
	}

	if err := s.store.Update(ctx, iv); err != nil {
		return nil, fmt.Errorf("failed to persist interview: %w", err)
	}

	// Both counters derive from the one post-mutation state so they can
	// never disagree with the ledger.
	return &domain.SubmitAnswerResponse{
		Evaluation:         *eval,
		NextQuestion:       nextQuestion,
		IsComplete:         isComplete,
		QuestionsRemaining: iv.Config.NumQuestions - iv.CurrentQuestionNum,
		CurrentQuestionNum: iv.CurrentQuestionNum,
	}, nil
}

// GetReport synthesizes the final assessment for a completed interview.
func (s *Service) GetReport(ctx context.Context, interviewID string) (*domain.Report, error) {
	iv, err := s.store.Get(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if iv.Status != domain.StatusCompleted {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrNotCompleted, iv.Status)
	}

	answered := iv.AnsweredTurns()
	reportData, err := s.provider.GenerateReport(ctx, iv.Config, answered)
	if err != nil {
		return nil, err
	}

	var overall float64
	if reportData.OverallScore != nil {
		overall = *reportData.OverallScore
	} else if len(answered) > 0 {
		sum := 0
		for _, t := range answered {
			sum += t.Evaluation.Score
		}
		overall = float64(sum) / float64(len(answered))
	}

	// The breakdown is assembled locally; it never costs a provider call.
	breakdown := make([]domain.QuestionBreakdown, 0, len(answered))
	for _, t := range answered {
		breakdown = append(breakdown, domain.QuestionBreakdown{
			QuestionNumber: t.Question.QuestionNumber,
			Question:       t.Question.Question,
			Topic:          t.Question.Topic,
			Difficulty:     t.Question.Difficulty,
			AnswerSummary:  previewAnswer(*t.Answer),
			Score:          t.Evaluation.Score,
			Feedback:       t.Evaluation.Feedback,
		})
	}

	return &domain.Report{
		InterviewID:        iv.ID,
		OverallScore:       overall,
		TotalQuestions:     iv.Config.NumQuestions,
		QuestionsAnswered:  len(answered),
		ExperienceLevel:    iv.Config.ExperienceLevel,
		Subject:            iv.Config.Subject,
		DetailedFeedback:   reportData.DetailedFeedback,
		StrongAreas:        reportData.StrongAreas,
		WeakAreas:          reportData.WeakAreas,
		Breakdown:          breakdown,
		Recommendations:    reportData.Recommendations,
		HireRecommendation: reportData.HireRecommendation,
	}, nil
}

// GetInterviewState returns the full current state of an interview.
func (s *Service) GetInterviewState(ctx context.Context, interviewID string) (*domain.Interview, error) {
	return s.store.Get(ctx, interviewID)
}

// GetCurrentQuestion returns the pending question, or nil once the interview
// has completed.
func (s *Service) GetCurrentQuestion(ctx context.Context, interviewID string) (*domain.Question, error) {
	iv, err := s.store.Get(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if iv.Status == domain.StatusCompleted {
		return nil, nil
	}
	if len(iv.Ledger) == 0 {
		return nil, nil
	}
	q := iv.Ledger[len(iv.Ledger)-1].Question
	return &q, nil
}

func previewAnswer(answer string) string {
	if len(answer) <= answerPreviewLen {
		return answer
	}
	return answer[:answerPreviewLen] + "..."
}
