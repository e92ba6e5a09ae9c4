package cheque

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a cheque.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDeposited Status = "deposited"
	StatusCleared   Status = "cleared"
	StatusBounced   Status = "bounced"
)

// BounceReason explains why a cheque failed to clear.
type BounceReason string

const (
	ReasonInsufficientFunds BounceReason = "insufficient_funds"
	ReasonSignatureMismatch BounceReason = "signature_mismatch"
	ReasonAccountClosed     BounceReason = "account_closed"
	ReasonStopPayment       BounceReason = "stop_payment"
	ReasonStaleDated        BounceReason = "stale_dated"
	ReasonOther             BounceReason = "other"
)

// RecoveryStatus tracks the collection effort for a bounced cheque's amount.
type RecoveryStatus string

const (
	RecoveryPending    RecoveryStatus = "pending"
	RecoveryInProgress RecoveryStatus = "in_progress"
	RecoveryRecovered  RecoveryStatus = "recovered"
	RecoveryWrittenOff RecoveryStatus = "written_off"
)

var (
	ErrNotFound          = errors.New("cheque not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotBounced        = errors.New("cheque is not bounced")
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// Cheque represents a post-dated payment instrument tracked by its owner.
//
// The four bounce-related fields are non-nil if and only if Status is
// StatusBounced.
type Cheque struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	PartyName    string
	ChequeNumber string
	BankName     string
	Amount       decimal.Decimal
	IssueDate    time.Time
	DueDate      *time.Time
	Status       Status

	BounceReason   *BounceReason
	BounceDate     *time.Time
	BounceRemarks  *string
	RecoveryStatus *RecoveryStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bounced reports whether the cheque is in the bounced state.
func (c *Cheque) Bounced() bool {
	return c.Status == StatusBounced
}

// clearBounceFields nulls the bounce detail and recovery status. Called
// whenever a cheque leaves (or never enters) the bounced state so the
// iff-bounced invariant holds.
func (c *Cheque) clearBounceFields() {
	c.BounceReason = nil
	c.BounceDate = nil
	c.BounceRemarks = nil
	c.RecoveryStatus = nil
}
