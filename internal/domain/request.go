package domain

import "fmt"

// Request/response shapes for the interview lifecycle API.

// StartInterviewRequest configures a new interview session.
type StartInterviewRequest struct {
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Subject         string          `json:"subject"`
	Difficulty      Difficulty      `json:"difficulty"`
	NumQuestions    int             `json:"num_questions"`
}

// Validate checks field bounds, applying the default question count.
func (r *StartInterviewRequest) Validate() error {
	if !r.ExperienceLevel.Valid() {
		return fmt.Errorf("%w: experience_level must be one of junior, mid, senior", ErrValidation)
	}
	if len(r.Subject) < 2 || len(r.Subject) > 100 {
		return fmt.Errorf("%w: subject must be 2-100 characters", ErrValidation)
	}
	if !r.Difficulty.Valid() {
		return fmt.Errorf("%w: difficulty must be one of easy, medium, hard", ErrValidation)
	}
	if r.NumQuestions == 0 {
		r.NumQuestions = 5
	}
	if r.NumQuestions < 1 || r.NumQuestions > 20 {
		return fmt.Errorf("%w: num_questions must be 1-20", ErrValidation)
	}
	return nil
}

// StartInterviewResponse returns the new session and its first question.
type StartInterviewResponse struct {
	InterviewID    string          `json:"interview_id"`
	FirstQuestion  Question        `json:"first_question"`
	TotalQuestions int             `json:"total_questions"`
	Config         InterviewConfig `json:"config"`
}

// SubmitAnswerRequest submits an answer to the current question. The claimed
// question number protects against stale or duplicate client requests.
type SubmitAnswerRequest struct {
	InterviewID    string `json:"interview_id"`
	Answer         string `json:"answer"`
	QuestionNumber int    `json:"question_number"`
}

// Validate checks field bounds. maxAnswerLen <= 0 disables the length cap.
func (r *SubmitAnswerRequest) Validate(maxAnswerLen int) error {
	if r.InterviewID == "" {
		return fmt.Errorf("%w: interview_id is required", ErrValidation)
	}
	if r.Answer == "" {
		return fmt.Errorf("%w: answer is required", ErrValidation)
	}
	if maxAnswerLen > 0 && len(r.Answer) > maxAnswerLen {
		return fmt.Errorf("%w: answer exceeds %d characters", ErrValidation, maxAnswerLen)
	}
	if r.QuestionNumber < 1 {
		return fmt.Errorf("%w: question_number must be >= 1", ErrValidation)
	}
	return nil
}

// SubmitAnswerResponse returns the evaluation and, when the interview
// continues, the next question.
type SubmitAnswerResponse struct {
	Evaluation         Evaluation `json:"evaluation"`
	NextQuestion       *Question  `json:"next_question,omitempty"`
	IsComplete         bool       `json:"is_complete"`
	QuestionsRemaining int        `json:"questions_remaining"`
	CurrentQuestionNum int        `json:"current_question_num"`
}
