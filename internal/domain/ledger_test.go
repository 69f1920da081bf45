package domain

import (
	"errors"
	"testing"
)

func newTestInterview() *Interview {
	return &Interview{
		ID: "iv_test",
		Config: InterviewConfig{
			ExperienceLevel: ExperienceJunior,
			Subject:         "Networking",
			Difficulty:      DifficultyEasy,
			NumQuestions:    3,
		},
		Status: StatusInProgress,
	}
}

func question(n int) Question {
	return Question{QuestionNumber: n, Question: "q", Difficulty: DifficultyEasy, Topic: "t"}
}

func TestAppendQuestionAdvancesCounter(t *testing.T) {
	iv := newTestInterview()
	if err := iv.AppendQuestion(question(1)); err != nil {
		t.Fatalf("AppendQuestion: %v", err)
	}
	if iv.CurrentQuestionNum != 1 || len(iv.Ledger) != 1 {
		t.Fatalf("unexpected state: num=%d len=%d", iv.CurrentQuestionNum, len(iv.Ledger))
	}
}

func TestAppendQuestionRejectsUnansweredTail(t *testing.T) {
	iv := newTestInterview()
	if err := iv.AppendQuestion(question(1)); err != nil {
		t.Fatalf("AppendQuestion: %v", err)
	}
	err := iv.AppendQuestion(question(2))
	if !errors.Is(err, ErrSequence) {
		t.Fatalf("expected ErrSequence, got %v", err)
	}
	if len(iv.Ledger) != 1 {
		t.Fatalf("rejected append mutated ledger: len=%d", len(iv.Ledger))
	}
}

func TestRecordAnswerHappyPath(t *testing.T) {
	iv := newTestInterview()
	if err := iv.AppendQuestion(question(1)); err != nil {
		t.Fatalf("AppendQuestion: %v", err)
	}
	if err := iv.RecordAnswer(1, "because", Evaluation{Score: 7}); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if !iv.Ledger[0].Answered() {
		t.Fatalf("tail not answered")
	}
	if err := iv.AppendQuestion(question(2)); err != nil {
		t.Fatalf("AppendQuestion after answer: %v", err)
	}
	if iv.CurrentQuestionNum != 2 {
		t.Fatalf("expected question num 2, got %d", iv.CurrentQuestionNum)
	}
}

func TestRecordAnswerStaleIndex(t *testing.T) {
	iv := newTestInterview()
	if err := iv.AppendQuestion(question(1)); err != nil {
		t.Fatalf("AppendQuestion: %v", err)
	}
	if err := iv.RecordAnswer(2, "x", Evaluation{Score: 5}); !errors.Is(err, ErrStaleIndex) {
		t.Fatalf("expected ErrStaleIndex, got %v", err)
	}
	if iv.Ledger[0].Answered() {
		t.Fatalf("rejected submission mutated the turn")
	}
}

func TestRecordAnswerTwice(t *testing.T) {
	iv := newTestInterview()
	if err := iv.AppendQuestion(question(1)); err != nil {
		t.Fatalf("AppendQuestion: %v", err)
	}
	if err := iv.RecordAnswer(1, "first", Evaluation{Score: 8}); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	err := iv.RecordAnswer(1, "second", Evaluation{Score: 2})
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
	if *iv.Ledger[0].Answer != "first" || iv.Ledger[0].Evaluation.Score != 8 {
		t.Fatalf("duplicate submission overwrote the turn")
	}
}

func TestRecordAnswerEmptyLedger(t *testing.T) {
	iv := newTestInterview()
	if err := iv.RecordAnswer(1, "x", Evaluation{Score: 5}); !errors.Is(err, ErrStaleIndex) {
		t.Fatalf("expected ErrStaleIndex, got %v", err)
	}
}

func TestRecentScoresWindow(t *testing.T) {
	iv := newTestInterview()
	iv.Config.NumQuestions = 5
	for i := 1; i <= 4; i++ {
		if err := iv.AppendQuestion(question(i)); err != nil {
			t.Fatalf("AppendQuestion %d: %v", i, err)
		}
		if err := iv.RecordAnswer(i, "a", Evaluation{Score: i + 2}); err != nil {
			t.Fatalf("RecordAnswer %d: %v", i, err)
		}
	}

	got := iv.RecentScores(3)
	want := []int{4, 5, 6} // oldest first within the window
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRecentScoresSkipsUnansweredTail(t *testing.T) {
	iv := newTestInterview()
	if err := iv.AppendQuestion(question(1)); err != nil {
		t.Fatalf("AppendQuestion: %v", err)
	}
	if got := iv.RecentScores(3); len(got) != 0 {
		t.Fatalf("expected no scores, got %v", got)
	}
}

func TestAnsweredTurnsExcludesTail(t *testing.T) {
	iv := newTestInterview()
	if err := iv.AppendQuestion(question(1)); err != nil {
		t.Fatalf("AppendQuestion: %v", err)
	}
	if err := iv.RecordAnswer(1, "a", Evaluation{Score: 6}); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if err := iv.AppendQuestion(question(2)); err != nil {
		t.Fatalf("AppendQuestion: %v", err)
	}

	turns := iv.AnsweredTurns()
	if len(turns) != 1 || turns[0].Question.QuestionNumber != 1 {
		t.Fatalf("unexpected answered turns: %+v", turns)
	}
}

func TestCloneIsDeep(t *testing.T) {
	iv := newTestInterview()
	if err := iv.AppendQuestion(question(1)); err != nil {
		t.Fatalf("AppendQuestion: %v", err)
	}
	if err := iv.RecordAnswer(1, "a", Evaluation{Score: 6, Strengths: []string{"s"}}); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	cp := iv.Clone()
	*cp.Ledger[0].Answer = "mutated"
	cp.Ledger[0].Evaluation.Strengths[0] = "mutated"

	if *iv.Ledger[0].Answer != "a" || iv.Ledger[0].Evaluation.Strengths[0] != "s" {
		t.Fatalf("clone shares memory with original")
	}
}
