package domain

import "errors"

// Sentinel errors for the interview lifecycle. Callers classify failures with
// errors.Is; the HTTP boundary maps each one to a status code. Only errors
// outside this taxonomy are treated as internal failures.
var (
	// ErrValidation is returned when a request fails field validation.
	ErrValidation = errors.New("invalid request")

	// ErrNotFound is returned when an interview is absent or has expired.
	ErrNotFound = errors.New("interview not found or expired")

	// ErrAlreadyExists is returned when creating an interview whose ID is
	// already taken by a different session.
	ErrAlreadyExists = errors.New("interview already exists")

	// ErrAlreadyCompleted is returned when submitting an answer to a
	// completed interview.
	ErrAlreadyCompleted = errors.New("interview already completed")

	// ErrInvalidQuestionNumber is returned when the claimed question number
	// does not match the current question.
	ErrInvalidQuestionNumber = errors.New("invalid question number")

	// ErrNotCompleted is returned when requesting a report for an interview
	// that is still in progress.
	ErrNotCompleted = errors.New("interview not completed")

	// ErrProvider wraps failures of the external reasoning provider. The
	// orchestrator never retries these; the caller owns any retry policy.
	ErrProvider = errors.New("provider request failed")

	// Ledger invariant violations. These indicate a protocol bug or a lost
	// race, never an expected client condition.
	ErrSequence        = errors.New("ledger tail is still unanswered")
	ErrAlreadyAnswered = errors.New("current question already answered")
	ErrStaleIndex      = errors.New("stale or invalid question index")
)
