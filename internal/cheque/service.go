package cheque

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=cheque
type Repository interface {
	CreateCheque(ctx context.Context, c *Cheque) error
	GetCheque(ctx context.Context, id uuid.UUID) (*Cheque, error)
	UpdateCheque(ctx context.Context, c *Cheque) error

	ListCheques(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Cheque, error)
	DeleteCheque(ctx context.Context, id uuid.UUID) error

	FindByNumbers(ctx context.Context, ownerID uuid.UUID, numbers []string) ([]*Cheque, error)
	CreateCheques(ctx context.Context, cheques []*Cheque) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerID      uuid.UUID
	PartyName    string
	ChequeNumber string
	BankName     string
	Amount       decimal.Decimal
	IssueDate    time.Time
	DueDate      *time.Time
	Status       Status
}

// ListFilter narrows a cheque listing. Search matches party name, cheque
// number and bank name case-insensitively.
type ListFilter struct {
	Status *Status
	Search string
}

// UpdateParams is a partial-field merge: only non-nil fields overwrite.
type UpdateParams struct {
	PartyName      *string
	ChequeNumber   *string
	BankName       *string
	Amount         *decimal.Decimal
	IssueDate      *time.Time
	DueDate        *time.Time
	Status         *Status
	BounceReason   *BounceReason
	BounceDate     *time.Time
	BounceRemarks  *string
	RecoveryStatus *RecoveryStatus
}

func validateCreate(params CreateParams) error {
	switch {
	case params.OwnerID == uuid.Nil:
		return ValidationError{Field: "owner_id", Reason: "required"}
	case params.PartyName == "":
		return ValidationError{Field: "party_name", Reason: "required"}
	case params.ChequeNumber == "":
		return ValidationError{Field: "cheque_number", Reason: "required"}
	case params.BankName == "":
		return ValidationError{Field: "bank_name", Reason: "required"}
	case !params.Amount.IsPositive():
		return ValidationError{Field: "amount", Reason: "must be positive"}
	case params.IssueDate.IsZero():
		return ValidationError{Field: "issue_date", Reason: "required"}
	}

	return nil
}

// Create records a new cheque. The bounce detail and recovery status start
// out null no matter what the caller supplies; status defaults to pending.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Cheque, error) {
	if err := validateCreate(params); err != nil {
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = StatusPending
	}

	c := &Cheque{
		OwnerID:      params.OwnerID,
		PartyName:    params.PartyName,
		ChequeNumber: params.ChequeNumber,
		BankName:     params.BankName,
		Amount:       params.Amount,
		IssueDate:    params.IssueDate,
		DueDate:      params.DueDate,
		Status:       status,
	}
	c.clearBounceFields()

	if err := s.repo.CreateCheque(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Cheque, error) {
	return s.repo.GetCheque(ctx, id)
}

// List returns the owner's cheques, newest-created-first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Cheque, error) {
	return s.repo.ListCheques(ctx, ownerID, filter)
}

// Update applies a partial-field merge to the cheque. If the merged status is
// anything other than bounced, the bounce fields are nulled in the same write
// so they can never outlive the bounced state.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Cheque, error) {
	c, err := s.repo.GetCheque(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.PartyName != nil {
		c.PartyName = *params.PartyName
	}

	if params.ChequeNumber != nil {
		c.ChequeNumber = *params.ChequeNumber
	}

	if params.BankName != nil {
		c.BankName = *params.BankName
	}

	if params.Amount != nil {
		c.Amount = *params.Amount
	}

	if params.IssueDate != nil {
		c.IssueDate = *params.IssueDate
	}

	if params.DueDate != nil {
		c.DueDate = params.DueDate
	}

	if params.Status != nil {
		c.Status = *params.Status
	}

	if params.BounceReason != nil {
		c.BounceReason = params.BounceReason
	}

	if params.BounceDate != nil {
		c.BounceDate = params.BounceDate
	}

	if params.BounceRemarks != nil {
		c.BounceRemarks = params.BounceRemarks
	}

	if params.RecoveryStatus != nil {
		c.RecoveryStatus = params.RecoveryStatus
	}

	if !c.Bounced() {
		c.clearBounceFields()
	}

	if err := s.repo.UpdateCheque(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Deposit moves a pending cheque to deposited.
func (s *Service) Deposit(ctx context.Context, id uuid.UUID) (*Cheque, error) {
	return s.transition(ctx, id, StatusPending, StatusDeposited)
}

// Clear moves a deposited cheque to cleared.
func (s *Service) Clear(ctx context.Context, id uuid.UUID) (*Cheque, error) {
	return s.transition(ctx, id, StatusDeposited, StatusCleared)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, from, to Status) (*Cheque, error) {
	c, err := s.repo.GetCheque(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.Status != from {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, to)
	}

	c.Status = to

	if err := s.repo.UpdateCheque(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// MarkBounced records a bounce event: status becomes bounced, the bounce date
// is set to the start of the current day and recovery tracking begins in the
// pending state. The source status is not checked here; the defined operator
// actions only offer this from pending or deposited.
func (s *Service) MarkBounced(ctx context.Context, id uuid.UUID, reason BounceReason, remarks string) (*Cheque, error) {
	if reason == "" {
		return nil, ValidationError{Field: "bounce_reason", Reason: "required"}
	}

	c, err := s.repo.GetCheque(ctx, id)
	if err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	recovery := RecoveryPending

	c.Status = StatusBounced
	c.BounceReason = &reason
	c.BounceDate = &today
	c.RecoveryStatus = &recovery
	c.BounceRemarks = nil

	if remarks != "" {
		c.BounceRemarks = &remarks
	}

	if err := s.repo.UpdateCheque(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// UpdateRecovery changes the recovery status of a bounced cheque.
func (s *Service) UpdateRecovery(ctx context.Context, id uuid.UUID, status RecoveryStatus) (*Cheque, error) {
	c, err := s.repo.GetCheque(ctx, id)
	if err != nil {
		return nil, err
	}

	if !c.Bounced() {
		return nil, ErrNotBounced
	}

	c.RecoveryStatus = &status

	if err := s.repo.UpdateCheque(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete removes the cheque and every follow-up referencing it as one
// atomic unit.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCheque(ctx, id)
}

type ImportResult struct {
	Imported  []*Cheque
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Cheque
}

type dupKey struct {
	Number string
	Bank   string
	Amount string
}

func keyOf(number, bank string, amount decimal.Decimal) dupKey {
	return dupKey{Number: number, Bank: bank, Amount: amount.String()}
}

// ImportBatch creates the given cheques unless any of them collide with
// cheques already on record (same number, bank and amount). When conflicts
// exist nothing is written and the split between new entries and conflicts is
// returned for the caller to resolve.
func (s *Service) ImportBatch(ctx context.Context, ownerID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	numbers := make([]string, 0, len(params))
	for _, p := range params {
		numbers = append(numbers, p.ChequeNumber)
	}

	existing, err := s.repo.FindByNumbers(ctx, ownerID, numbers)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Cheque, len(existing))
	for _, c := range existing {
		lookup[keyOf(c.ChequeNumber, c.BankName, c.Amount)] = c
	}

	var (
		newParams []CreateParams
		conflicts []Conflict
	)

	for _, p := range params {
		if dup, found := lookup[keyOf(p.ChequeNumber, p.BankName, p.Amount)]; found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: dup})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	cheques, err := s.createBatch(ctx, ownerID, newParams)
	if err != nil {
		return nil, err
	}

	return &ImportResult{Imported: cheques}, nil
}

// CreateBatch creates the given cheques without duplicate detection. Used to
// confirm an import after the operator has reviewed its conflicts.
func (s *Service) CreateBatch(ctx context.Context, ownerID uuid.UUID, params []CreateParams) ([]*Cheque, error) {
	if len(params) == 0 {
		return nil, nil
	}

	return s.createBatch(ctx, ownerID, params)
}

func (s *Service) createBatch(ctx context.Context, ownerID uuid.UUID, params []CreateParams) ([]*Cheque, error) {
	cheques := make([]*Cheque, 0, len(params))

	for _, p := range params {
		p.OwnerID = ownerID
		if err := validateCreate(p); err != nil {
			return nil, err
		}

		status := p.Status
		if status == "" {
			status = StatusPending
		}

		c := &Cheque{
			OwnerID:      ownerID,
			PartyName:    p.PartyName,
			ChequeNumber: p.ChequeNumber,
			BankName:     p.BankName,
			Amount:       p.Amount,
			IssueDate:    p.IssueDate,
			DueDate:      p.DueDate,
			Status:       status,
		}
		c.clearBounceFields()
		cheques = append(cheques, c)
	}

	if err := s.repo.CreateCheques(ctx, cheques); err != nil {
		return nil, fmt.Errorf("create cheques: %w", err)
	}

	return cheques, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
