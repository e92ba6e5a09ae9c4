package followup

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=followup
type Repository interface {
	CreateFollowUp(ctx context.Context, f *FollowUp) error
	ListFollowUps(ctx context.Context, chequeID uuid.UUID) ([]*FollowUp, error)
	DeleteFollowUp(ctx context.Context, id, ownerID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerID          uuid.UUID
	ChequeID         uuid.UUID
	ContactDate      time.Time
	NextFollowUpDate *time.Time
	Notes            *string
	ActionTaken      *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*FollowUp, error) {
	switch {
	case params.OwnerID == uuid.Nil:
		return nil, ValidationError{Field: "owner_id"}
	case params.ChequeID == uuid.Nil:
		return nil, ValidationError{Field: "cheque_id"}
	case params.ContactDate.IsZero():
		return nil, ValidationError{Field: "contact_date"}
	}

	f := &FollowUp{
		OwnerID:          params.OwnerID,
		ChequeID:         params.ChequeID,
		ContactDate:      params.ContactDate,
		NextFollowUpDate: params.NextFollowUpDate,
		Notes:            params.Notes,
		ActionTaken:      params.ActionTaken,
	}

	if err := s.repo.CreateFollowUp(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

// ListForCheque returns the cheque's follow-ups, most recent contact first.
func (s *Service) ListForCheque(ctx context.Context, chequeID uuid.UUID) ([]*FollowUp, error) {
	return s.repo.ListFollowUps(ctx, chequeID)
}

// Delete removes a follow-up. Follow-ups of other owners read as not
// found.
func (s *Service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.repo.DeleteFollowUp(ctx, id, ownerID)
}
