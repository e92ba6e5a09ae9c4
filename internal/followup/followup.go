package followup

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("follow-up not found")

// ValidationError reports a missing required field.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return e.Field + " is required"
}

// FollowUp is a recovery-contact record attached to exactly one bounced
// cheque. It cannot outlive its cheque: deleting the cheque cascades.
type FollowUp struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	ChequeID         uuid.UUID
	ContactDate      time.Time
	NextFollowUpDate *time.Time
	Notes            *string
	ActionTaken      *string
	CreatedAt        time.Time
}
