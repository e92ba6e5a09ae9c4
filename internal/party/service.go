package party

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	FindCanonical(ctx context.Context, ownerID uuid.UUID, rawName string) (string, error)
	CreateMapping(ctx context.Context, ownerID uuid.UUID, rawPattern, canonicalName string) error
}

// Service normalizes party names on imported cheque registers: bank files
// spell the same payee a dozen ways, and the operator teaches us the
// canonical spelling once.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest tries to find a canonical party name for the raw text.
// Returns empty string if no mapping matches.
func (s *Service) Suggest(ctx context.Context, ownerID uuid.UUID, rawName string) (string, error) {
	return s.repo.FindCanonical(ctx, ownerID, rawName)
}

// Learn remembers a new mapping between a raw pattern and a canonical name.
func (s *Service) Learn(ctx context.Context, ownerID uuid.UUID, rawPattern, canonicalName string) error {
	return s.repo.CreateMapping(ctx, ownerID, rawPattern, canonicalName)
}
