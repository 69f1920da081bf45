// Package domain defines the core domain models for the interview service.
package domain

// ExperienceLevel represents the candidate's experience level.
type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// Valid reports whether the experience level is a known value.
func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceJunior, ExperienceMid, ExperienceSenior:
		return true
	}
	return false
}

// Description returns the prompt descriptor used when talking to the provider.
func (e ExperienceLevel) Description() string {
	switch e {
	case ExperienceJunior:
		return "Junior - Focus on fundamentals, basic concepts, definitions"
	case ExperienceMid:
		return "Mid-level - Include design decisions, trade-offs, best practices"
	case ExperienceSenior:
		return "Senior - Focus on architecture, system design, leadership scenarios"
	}
	return string(e)
}

// InterviewStatus represents the status of an interview session.
type InterviewStatus string

const (
	StatusInProgress InterviewStatus = "in_progress"
	StatusCompleted  InterviewStatus = "completed"
)

// Question is a single interview question.
type Question struct {
	QuestionNumber int        `json:"question_number"`
	Question       string     `json:"question"`
	Difficulty     Difficulty `json:"difficulty"`
	Topic          string     `json:"topic"`
}

// Evaluation is the structured judgment for a single answer.
type Evaluation struct {
	Score                  int      `json:"score"` // 1-10
	Correctness            string   `json:"correctness"`
	Depth                  string   `json:"depth"`
	Clarity                string   `json:"clarity"`
	PracticalUnderstanding string   `json:"practical_understanding"`
	Strengths              []string `json:"strengths"`
	AreasForImprovement    []string `json:"areas_for_improvement"`
	Feedback               string   `json:"feedback"`
}

// Turn is one question/answer/evaluation unit in the ledger.
// Answer and Evaluation are nil until the candidate responds; they are set
// together, exactly once.
type Turn struct {
	Question   Question    `json:"question"`
	Answer     *string     `json:"answer,omitempty"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

// Answered reports whether the turn has both an answer and an evaluation.
func (t *Turn) Answered() bool {
	return t.Answer != nil && t.Evaluation != nil
}

// InterviewConfig is the immutable configuration of an interview.
type InterviewConfig struct {
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Subject         string          `json:"subject"`
	Difficulty      Difficulty      `json:"difficulty"`
	NumQuestions    int             `json:"num_questions"`
}

// Interview is one interview session: config, status and the turn ledger.
// The ledger is insertion-ordered; while the interview is in progress its
// last element is always the pending, unanswered question and its length
// equals CurrentQuestionNum.
type Interview struct {
	ID                 string          `json:"interview_id"`
	Config             InterviewConfig `json:"config"`
	CurrentQuestionNum int             `json:"current_question_num"`
	Ledger             []Turn          `json:"conversation_history"`
	Status             InterviewStatus `json:"status"`
}

// Clone returns a deep copy of the interview. Stores hand out clones so a
// reader can never observe a session mid-mutation.
func (iv *Interview) Clone() *Interview {
	cp := *iv
	cp.Ledger = make([]Turn, len(iv.Ledger))
	for i, t := range iv.Ledger {
		ct := t
		if t.Answer != nil {
			a := *t.Answer
			ct.Answer = &a
		}
		if t.Evaluation != nil {
			ev := *t.Evaluation
			ev.Strengths = append([]string(nil), t.Evaluation.Strengths...)
			ev.AreasForImprovement = append([]string(nil), t.Evaluation.AreasForImprovement...)
			ct.Evaluation = &ev
		}
		cp.Ledger[i] = ct
	}
	return &cp
}

// Report is the synthesized final assessment for a completed interview.
type Report struct {
	InterviewID        string              `json:"interview_id"`
	OverallScore       float64             `json:"overall_score"`
	TotalQuestions     int                 `json:"total_questions"`
	QuestionsAnswered  int                 `json:"questions_answered"`
	ExperienceLevel    ExperienceLevel     `json:"experience_level"`
	Subject            string              `json:"subject"`
	DetailedFeedback   string              `json:"detailed_feedback"`
	StrongAreas        []string            `json:"strong_areas"`
	WeakAreas          []string            `json:"weak_areas"`
	Breakdown          []QuestionBreakdown `json:"question_wise_breakdown"`
	Recommendations    []string            `json:"recommendations"`
	HireRecommendation string              `json:"hire_recommendation"`
}

// QuestionBreakdown is the per-question entry of the final report.
type QuestionBreakdown struct {
	QuestionNumber int        `json:"question_number"`
	Question       string     `json:"question"`
	Topic          string     `json:"topic"`
	Difficulty     Difficulty `json:"difficulty"`
	AnswerSummary  string     `json:"answer_summary"`
	Score          int        `json:"score"`
	Feedback       string     `json:"feedback"`
}
