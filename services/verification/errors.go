package verification

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAlreadyVerified is returned when the user already holds an
	// approved record.
	ErrAlreadyVerified = errors.New("user is already verified")

	// ErrNoIDCard is returned when a face image arrives before any ID card.
	ErrNoIDCard = errors.New("id card must be uploaded first")

	// ErrNotFound is returned when the referenced record or user does not
	// exist.
	ErrNotFound = errors.New("verification record not found")

	// ErrAlreadyProcessed is returned when a transition races a record that
	// is no longer pending.
	ErrAlreadyProcessed = errors.New("verification has already been processed")

	// ErrEngineFailure wraps scoring-strategy failures; no state is mutated
	// when it is returned.
	ErrEngineFailure = errors.New("matching engine failure")

	// ErrSyncFailure wraps a failure to keep the user's denormalized
	// verification flag in step with the record.
	ErrSyncFailure = errors.New("verification flag sync failed")
)

// CooldownError blocks resubmission after a rejection until RetryAt.
type CooldownError struct {
	RetryAt time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("verification was recently rejected, retry after %s", e.RetryAt.UTC().Format(time.RFC3339))
}

// AsCooldown extracts a CooldownError if err carries one.
func AsCooldown(err error) (*CooldownError, bool) {
	var ce *CooldownError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
