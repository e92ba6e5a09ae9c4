package cheque_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chequetrack/internal/cheque"
)

func validParams(owner uuid.UUID) cheque.CreateParams {
	return cheque.CreateParams{
		OwnerID:      owner,
		PartyName:    "Acme Traders",
		ChequeNumber: "000451",
		BankName:     "First National",
		Amount:       decimal.NewFromInt(5000),
		IssueDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_Create(t *testing.T) {
	owner := uuid.New()

	type testCase struct {
		name      string
		params    cheque.CreateParams
		setupMock func(m *cheque.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: validParams(owner),
			setupMock: func(m *cheque.MockRepository) {
				m.EXPECT().
					CreateCheque(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *cheque.Cheque) error {
						c.ID = uuid.New()
						c.CreatedAt = time.Now()
						c.UpdatedAt = c.CreatedAt
						return nil
					})
			},
		},
		{
			name: "MissingOwner",
			params: func() cheque.CreateParams {
				p := validParams(owner)
				p.OwnerID = uuid.Nil
				return p
			}(),
			wantErr: true,
		},
		{
			name: "MissingPartyName",
			params: func() cheque.CreateParams {
				p := validParams(owner)
				p.PartyName = ""
				return p
			}(),
			wantErr: true,
		},
		{
			name: "NonPositiveAmount",
			params: func() cheque.CreateParams {
				p := validParams(owner)
				p.Amount = decimal.Zero
				return p
			}(),
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: validParams(owner),
			setupMock: func(m *cheque.MockRepository) {
				m.EXPECT().
					CreateCheque(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := cheque.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := cheque.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, cheque.StatusPending, got.Status)
		})
	}
}

// Creation must null the bounce fields no matter what sneaks into the params.
func TestService_Create_ClearsBounceFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := cheque.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateCheque(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *cheque.Cheque) error {
			c.ID = uuid.New()
			return nil
		})

	svc := cheque.NewService(repo)

	got, err := svc.Create(context.Background(), validParams(uuid.New()))
	require.NoError(t, err)

	assert.Nil(t, got.BounceReason)
	assert.Nil(t, got.BounceDate)
	assert.Nil(t, got.BounceRemarks)
	assert.Nil(t, got.RecoveryStatus)
}

func TestService_MarkBounced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	existing := &cheque.Cheque{
		ID:     id,
		Status: cheque.StatusDeposited,
		Amount: decimal.NewFromInt(5000),
	}

	repo := cheque.NewMockRepository(ctrl)
	repo.EXPECT().GetCheque(gomock.Any(), id).Return(existing, nil)
	repo.EXPECT().UpdateCheque(gomock.Any(), gomock.Any()).Return(nil)

	svc := cheque.NewService(repo)

	got, err := svc.MarkBounced(context.Background(), id, cheque.ReasonInsufficientFunds, "second presentation failed")
	require.NoError(t, err)

	assert.Equal(t, cheque.StatusBounced, got.Status)
	require.NotNil(t, got.BounceReason)
	assert.Equal(t, cheque.ReasonInsufficientFunds, *got.BounceReason)
	require.NotNil(t, got.RecoveryStatus)
	assert.Equal(t, cheque.RecoveryPending, *got.RecoveryStatus)
	require.NotNil(t, got.BounceRemarks)
	assert.Equal(t, "second presentation failed", *got.BounceRemarks)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	require.NotNil(t, got.BounceDate)
	assert.True(t, got.BounceDate.Equal(today), "bounce date should be start of current day")
}

func TestService_MarkBounced_RequiresReason(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := cheque.NewService(cheque.NewMockRepository(ctrl))

	_, err := svc.MarkBounced(context.Background(), uuid.New(), "", "")

	var vErr cheque.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "bounce_reason", vErr.Field)
}

func TestService_Transitions(t *testing.T) {
	type testCase struct {
		name    string
		from    cheque.Status
		op      func(svc *cheque.Service, id uuid.UUID) (*cheque.Cheque, error)
		want    cheque.Status
		wantErr error
	}

	deposit := func(svc *cheque.Service, id uuid.UUID) (*cheque.Cheque, error) {
		return svc.Deposit(context.Background(), id)
	}
	clear := func(svc *cheque.Service, id uuid.UUID) (*cheque.Cheque, error) {
		return svc.Clear(context.Background(), id)
	}

	tests := []testCase{
		{name: "DepositPending", from: cheque.StatusPending, op: deposit, want: cheque.StatusDeposited},
		{name: "ClearDeposited", from: cheque.StatusDeposited, op: clear, want: cheque.StatusCleared},
		{name: "DepositCleared", from: cheque.StatusCleared, op: deposit, wantErr: cheque.ErrInvalidTransition},
		{name: "ClearPending", from: cheque.StatusPending, op: clear, wantErr: cheque.ErrInvalidTransition},
		{name: "DepositBounced", from: cheque.StatusBounced, op: deposit, wantErr: cheque.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			id := uuid.New()
			repo := cheque.NewMockRepository(ctrl)
			repo.EXPECT().GetCheque(gomock.Any(), id).Return(&cheque.Cheque{ID: id, Status: tt.from}, nil)

			if tt.wantErr == nil {
				repo.EXPECT().UpdateCheque(gomock.Any(), gomock.Any()).Return(nil)
			}

			got, err := tt.op(cheque.NewService(repo), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

// Any update that leaves the cheque outside the bounced state must null the
// bounce fields in the same write.
func TestService_Update_ClearsBounceFieldsOnStatusChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	reason := cheque.ReasonAccountClosed
	bounceDate := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	recovery := cheque.RecoveryInProgress

	existing := &cheque.Cheque{
		ID:             id,
		Status:         cheque.StatusBounced,
		BounceReason:   &reason,
		BounceDate:     &bounceDate,
		RecoveryStatus: &recovery,
	}

	repo := cheque.NewMockRepository(ctrl)
	repo.EXPECT().GetCheque(gomock.Any(), id).Return(existing, nil)
	repo.EXPECT().UpdateCheque(gomock.Any(), gomock.Any()).Return(nil)

	svc := cheque.NewService(repo)

	newStatus := cheque.StatusPending
	got, err := svc.Update(context.Background(), id, cheque.UpdateParams{Status: &newStatus})
	require.NoError(t, err)

	assert.Equal(t, cheque.StatusPending, got.Status)
	assert.Nil(t, got.BounceReason)
	assert.Nil(t, got.BounceDate)
	assert.Nil(t, got.BounceRemarks)
	assert.Nil(t, got.RecoveryStatus)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := cheque.NewMockRepository(ctrl)
	repo.EXPECT().GetCheque(gomock.Any(), id).Return(nil, cheque.ErrNotFound)

	svc := cheque.NewService(repo)

	_, err := svc.Update(context.Background(), id, cheque.UpdateParams{})
	assert.ErrorIs(t, err, cheque.ErrNotFound)
}

func TestService_UpdateRecovery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	reason := cheque.ReasonOther
	recovery := cheque.RecoveryPending
	existing := &cheque.Cheque{
		ID:             id,
		Status:         cheque.StatusBounced,
		BounceReason:   &reason,
		RecoveryStatus: &recovery,
	}

	repo := cheque.NewMockRepository(ctrl)
	repo.EXPECT().GetCheque(gomock.Any(), id).Return(existing, nil)
	repo.EXPECT().UpdateCheque(gomock.Any(), gomock.Any()).Return(nil)

	svc := cheque.NewService(repo)

	got, err := svc.UpdateRecovery(context.Background(), id, cheque.RecoveryRecovered)
	require.NoError(t, err)
	require.NotNil(t, got.RecoveryStatus)
	assert.Equal(t, cheque.RecoveryRecovered, *got.RecoveryStatus)
}

func TestService_UpdateRecovery_NotBounced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := cheque.NewMockRepository(ctrl)
	repo.EXPECT().GetCheque(gomock.Any(), id).Return(&cheque.Cheque{ID: id, Status: cheque.StatusPending}, nil)

	svc := cheque.NewService(repo)

	_, err := svc.UpdateRecovery(context.Background(), id, cheque.RecoveryRecovered)
	assert.ErrorIs(t, err, cheque.ErrNotBounced)
}

func TestService_ImportBatch(t *testing.T) {
	owner := uuid.New()

	incoming := []cheque.CreateParams{
		{
			PartyName:    "Acme Traders",
			ChequeNumber: "000451",
			BankName:     "First National",
			Amount:       decimal.NewFromInt(5000),
			IssueDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			PartyName:    "Blue Ridge Supplies",
			ChequeNumber: "000452",
			BankName:     "First National",
			Amount:       decimal.RequireFromString("1250.50"),
			IssueDate:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	t.Run("NoConflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := cheque.NewMockRepository(ctrl)
		repo.EXPECT().FindByNumbers(gomock.Any(), owner, []string{"000451", "000452"}).Return(nil, nil)
		repo.EXPECT().
			CreateCheques(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cs []*cheque.Cheque) error {
				for _, c := range cs {
					c.ID = uuid.New()
				}
				return nil
			})

		svc := cheque.NewService(repo)

		result, err := svc.ImportBatch(context.Background(), owner, incoming)
		require.NoError(t, err)
		assert.Len(t, result.Imported, 2)
		assert.Empty(t, result.Conflicts)

		for _, c := range result.Imported {
			assert.Equal(t, owner, c.OwnerID)
			assert.Equal(t, cheque.StatusPending, c.Status)
		}
	})

	t.Run("ConflictsBlockCreation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		existing := &cheque.Cheque{
			ID:           uuid.New(),
			OwnerID:      owner,
			ChequeNumber: "000451",
			BankName:     "First National",
			Amount:       decimal.NewFromInt(5000),
		}

		repo := cheque.NewMockRepository(ctrl)
		repo.EXPECT().FindByNumbers(gomock.Any(), owner, gomock.Any()).Return([]*cheque.Cheque{existing}, nil)
		// No CreateCheques call: conflicts must block the whole batch.

		svc := cheque.NewService(repo)

		result, err := svc.ImportBatch(context.Background(), owner, incoming)
		require.NoError(t, err)
		assert.Empty(t, result.Imported)
		assert.Len(t, result.Conflicts, 1)
		assert.Len(t, result.New, 1)
		assert.Equal(t, "000452", result.New[0].ChequeNumber)
	})

	t.Run("Empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := cheque.NewService(cheque.NewMockRepository(ctrl))

		result, err := svc.ImportBatch(context.Background(), owner, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Imported)
	})
}
