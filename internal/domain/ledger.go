package domain

import "fmt"

// Ledger operations. The ledger lives inside Interview but its sequencing
// rules are enforced here: at most one unanswered tail, answers recorded
// exactly once, questions appended only onto a fully answered tail.

// AppendQuestion appends a new unanswered turn and advances the question
// counter. It fails with ErrSequence if the current tail has not been
// answered yet.
func (iv *Interview) AppendQuestion(q Question) error {
	if n := len(iv.Ledger); n > 0 && !iv.Ledger[n-1].Answered() {
		return fmt.Errorf("%w: question %d", ErrSequence, iv.Ledger[n-1].Question.QuestionNumber)
	}
	iv.Ledger = append(iv.Ledger, Turn{Question: q})
	iv.CurrentQuestionNum = len(iv.Ledger)
	return nil
}

// RecordAnswer sets the answer and evaluation on the current tail. The caller
// supplies the question number it believes it is answering; both the ledger
// state and that number are checked, so a duplicate or out-of-order submission
// under retries is rejected instead of silently applied.
func (iv *Interview) RecordAnswer(questionNumber int, answer string, eval Evaluation) error {
	if len(iv.Ledger) == 0 {
		return fmt.Errorf("%w: empty ledger", ErrStaleIndex)
	}
	tail := &iv.Ledger[len(iv.Ledger)-1]
	if questionNumber != tail.Question.QuestionNumber {
		return fmt.Errorf("%w: expected %d, got %d", ErrStaleIndex, tail.Question.QuestionNumber, questionNumber)
	}
	if tail.Answered() {
		return fmt.Errorf("%w: question %d", ErrAlreadyAnswered, questionNumber)
	}
	tail.Answer = &answer
	tail.Evaluation = &eval
	return nil
}

// RecentScores returns the last window evaluation scores among answered
// turns, oldest first. Fewer than window scores are returned if the session
// has not produced that many yet.
func (iv *Interview) RecentScores(window int) []int {
	var scores []int
	for _, t := range iv.Ledger {
		if t.Answered() {
			scores = append(scores, t.Evaluation.Score)
		}
	}
	if len(scores) > window {
		scores = scores[len(scores)-window:]
	}
	return scores
}

// AnsweredTurns returns the turns that have both answer and evaluation, in
// original order.
func (iv *Interview) AnsweredTurns() []Turn {
	var turns []Turn
	for _, t := range iv.Ledger {
		if t.Answered() {
			turns = append(turns, t)
		}
	}
	return turns
}
