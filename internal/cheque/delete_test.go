package cheque_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chequetrack/internal/cheque"
	"chequetrack/internal/followup"
)

// cascadeStore backs the cheque and follow-up repositories with shared maps
// and mirrors the transactional delete in the SQL store: removing a cheque
// removes every follow-up referencing it.
type cascadeStore struct {
	cheques   map[uuid.UUID]*cheque.Cheque
	followUps map[uuid.UUID]*followup.FollowUp
}

func newCascadeStore() *cascadeStore {
	return &cascadeStore{
		cheques:   make(map[uuid.UUID]*cheque.Cheque),
		followUps: make(map[uuid.UUID]*followup.FollowUp),
	}
}

func (s *cascadeStore) CreateCheque(_ context.Context, c *cheque.Cheque) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.cheques[c.ID] = c

	return nil
}

func (s *cascadeStore) GetCheque(_ context.Context, id uuid.UUID) (*cheque.Cheque, error) {
	c, ok := s.cheques[id]
	if !ok {
		return nil, cheque.ErrNotFound
	}

	return c, nil
}

func (s *cascadeStore) UpdateCheque(_ context.Context, c *cheque.Cheque) error {
	if _, ok := s.cheques[c.ID]; !ok {
		return cheque.ErrNotFound
	}

	s.cheques[c.ID] = c

	return nil
}

func (s *cascadeStore) ListCheques(_ context.Context, ownerID uuid.UUID, _ cheque.ListFilter) ([]*cheque.Cheque, error) {
	var out []*cheque.Cheque

	for _, c := range s.cheques {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}

	return out, nil
}

func (s *cascadeStore) DeleteCheque(_ context.Context, id uuid.UUID) error {
	if _, ok := s.cheques[id]; !ok {
		return cheque.ErrNotFound
	}

	for fid, f := range s.followUps {
		if f.ChequeID == id {
			delete(s.followUps, fid)
		}
	}

	delete(s.cheques, id)

	return nil
}

func (s *cascadeStore) FindByNumbers(_ context.Context, ownerID uuid.UUID, numbers []string) ([]*cheque.Cheque, error) {
	want := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		want[n] = true
	}

	var out []*cheque.Cheque

	for _, c := range s.cheques {
		if c.OwnerID == ownerID && want[c.ChequeNumber] {
			out = append(out, c)
		}
	}

	return out, nil
}

func (s *cascadeStore) CreateCheques(ctx context.Context, cheques []*cheque.Cheque) error {
	for _, c := range cheques {
		if err := s.CreateCheque(ctx, c); err != nil {
			return err
		}
	}

	return nil
}

func (s *cascadeStore) CreateFollowUp(_ context.Context, f *followup.FollowUp) error {
	f.ID = uuid.New()
	f.CreatedAt = time.Now()
	s.followUps[f.ID] = f

	return nil
}

func (s *cascadeStore) ListFollowUps(_ context.Context, chequeID uuid.UUID) ([]*followup.FollowUp, error) {
	var out []*followup.FollowUp

	for _, f := range s.followUps {
		if f.ChequeID == chequeID {
			out = append(out, f)
		}
	}

	return out, nil
}

func (s *cascadeStore) DeleteFollowUp(_ context.Context, id, ownerID uuid.UUID) error {
	f, ok := s.followUps[id]
	if !ok || f.OwnerID != ownerID {
		return followup.ErrNotFound
	}

	delete(s.followUps, id)

	return nil
}

func TestService_Delete_CascadesFollowUps(t *testing.T) {
	store := newCascadeStore()
	cheques := cheque.NewService(store)
	followUps := followup.NewService(store)
	ctx := context.Background()
	owner := uuid.New()

	c, err := cheques.Create(ctx, validParams(owner))
	require.NoError(t, err)

	_, err = cheques.MarkBounced(ctx, c.ID, cheque.ReasonInsufficientFunds, "")
	require.NoError(t, err)

	for day := 1; day <= 3; day++ {
		_, err := followUps.Create(ctx, followup.CreateParams{
			OwnerID:     owner,
			ChequeID:    c.ID,
			ContactDate: time.Date(2024, 2, day, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	before, err := followUps.ListForCheque(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, before, 3)

	require.NoError(t, cheques.Delete(ctx, c.ID))

	_, err = cheques.Get(ctx, c.ID)
	assert.ErrorIs(t, err, cheque.ErrNotFound)

	after, err := followUps.ListForCheque(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, after, "follow-ups must not outlive their cheque")
}

func TestService_Delete_NotFound(t *testing.T) {
	cheques := cheque.NewService(newCascadeStore())

	err := cheques.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, cheque.ErrNotFound)
}
