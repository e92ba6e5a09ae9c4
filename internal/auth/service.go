package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Repository persists owner accounts. GetOwnerByEmail returns
// ErrInvalidCredentials when no account matches so callers cannot probe for
// registered addresses.
type Repository interface {
	CreateOwner(ctx context.Context, o *Owner) error
	GetOwnerByEmail(ctx context.Context, email string) (*Owner, error)
	GetOwner(ctx context.Context, id uuid.UUID) (*Owner, error)
}

type Service struct {
	repo   Repository
	tokens *TokenIssuer
}

func NewService(repo Repository, tokens *TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

type RegisterParams struct {
	Email       string
	Password    string
	FullName    *string
	CompanyName *string
}

// Register creates an owner account and returns it with a fresh session
// token.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Owner, string, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, "", ErrInvalidCredentials
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	o := &Owner{
		Email:        email,
		PasswordHash: hash,
		FullName:     params.FullName,
		CompanyName:  params.CompanyName,
	}

	if err := s.repo.CreateOwner(ctx, o); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(o.ID)
	if err != nil {
		return nil, "", err
	}

	return o, token, nil
}

// Login verifies the credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*Owner, string, error) {
	o, err := s.repo.GetOwnerByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if !CheckPassword(o.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(o.ID)
	if err != nil {
		return nil, "", err
	}

	return o, token, nil
}

// VerifyToken resolves a session token to the owner id it carries.
func (s *Service) VerifyToken(token string) (uuid.UUID, error) {
	return s.tokens.Verify(token)
}

func (s *Service) GetOwner(ctx context.Context, id uuid.UUID) (*Owner, error) {
	return s.repo.GetOwner(ctx, id)
}
