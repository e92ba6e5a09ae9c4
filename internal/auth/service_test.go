package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepo keeps owners in a map, enough to exercise the service paths.
type mockRepo struct {
	byEmail map[string]*Owner
}

func newMockRepo() *mockRepo {
	return &mockRepo{byEmail: make(map[string]*Owner)}
}

func (m *mockRepo) CreateOwner(_ context.Context, o *Owner) error {
	if _, exists := m.byEmail[o.Email]; exists {
		return ErrEmailTaken
	}

	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	m.byEmail[o.Email] = o

	return nil
}

func (m *mockRepo) GetOwnerByEmail(_ context.Context, email string) (*Owner, error) {
	o, ok := m.byEmail[email]
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return o, nil
}

func (m *mockRepo) GetOwner(_ context.Context, id uuid.UUID) (*Owner, error) {
	for _, o := range m.byEmail {
		if o.ID == id {
			return o, nil
		}
	}

	return nil, ErrInvalidCredentials
}

func newTestService() *Service {
	return NewService(newMockRepo(), NewTokenIssuer("test-secret", time.Hour))
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	owner, token, err := svc.Register(ctx, RegisterParams{
		Email:    "Books@Example.Com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, "books@example.com", owner.Email, "email should be normalized")
	assert.NotEmpty(t, token)

	// Token resolves back to the owner.
	id, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, id)

	// Login with the original casing works.
	loggedIn, token2, err := svc.Login(ctx, "books@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, loggedIn.ID)
	assert.NotEmpty(t, token2)
}

func TestService_GetOwner(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	owner, _, err := svc.Register(ctx, RegisterParams{
		Email:    "books@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	got, err := svc.GetOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.Email, got.Email)

	_, err = svc.GetOwner(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Register_WeakPassword(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Register(context.Background(), RegisterParams{
		Email:    "books@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterParams{Email: "books@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterParams{Email: "books@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterParams{Email: "books@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "books@example.com", "wrong horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenIssuer_RejectsForeignToken(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
