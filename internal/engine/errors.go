package engine

import (
	"errors"
	"fmt"
)

// Domain errors. EmptyBucket and an invalid banding table indicate a
// broken configuration and are raised before any session is accepted;
// the rest are expected operational outcomes.
var (
	ErrEmptyBucket          = errors.New("sampler: no questions for requested weight")
	ErrBandingTableInvalid  = errors.New("banding table invalid")
	ErrNoSession            = errors.New("no active session")
	ErrSessionNotReady      = errors.New("session is still preparing")
	ErrSessionNotInProgress = errors.New("session is not in progress")
	ErrSessionFinished      = errors.New("session is already finished")
	ErrSessionNotFinished   = errors.New("session is not finished")
	ErrResultsPending       = errors.New("previous results must be discarded explicitly")
	ErrSessionActive        = errors.New("a session is already active")
	ErrInvalidPosition      = errors.New("position out of range")
	ErrInvalidAlternative   = errors.New("alternative out of range")
	ErrNoFilter             = errors.New("no practice filter set")
	ErrEmptyFilter          = errors.New("practice filter matches no questions")
)

// UnansweredError rejects a finish request that did not acknowledge the
// remaining gaps. The count is surfaced so the UI can name it in the
// confirmation prompt.
type UnansweredError struct {
	Count int
}

func (e *UnansweredError) Error() string {
	return fmt.Sprintf("%d questions are still unanswered", e.Count)
}
