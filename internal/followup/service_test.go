package followup_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chequetrack/internal/followup"
)

func TestService_Create(t *testing.T) {
	owner := uuid.New()
	chequeID := uuid.New()
	contactDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    followup.CreateParams
		setupMock func(m *followup.MockRepository)
		wantErr   bool
		wantField string
	}

	tests := []testCase{
		{
			name: "Success",
			params: followup.CreateParams{
				OwnerID:     owner,
				ChequeID:    chequeID,
				ContactDate: contactDate,
			},
			setupMock: func(m *followup.MockRepository) {
				m.EXPECT().
					CreateFollowUp(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, f *followup.FollowUp) error {
						f.ID = uuid.New()
						f.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "MissingOwner",
			params: followup.CreateParams{
				ChequeID:    chequeID,
				ContactDate: contactDate,
			},
			wantErr:   true,
			wantField: "owner_id",
		},
		{
			name: "MissingCheque",
			params: followup.CreateParams{
				OwnerID:     owner,
				ContactDate: contactDate,
			},
			wantErr:   true,
			wantField: "cheque_id",
		},
		{
			name: "MissingContactDate",
			params: followup.CreateParams{
				OwnerID:  owner,
				ChequeID: chequeID,
			},
			wantErr:   true,
			wantField: "contact_date",
		},
		{
			name: "RepoError",
			params: followup.CreateParams{
				OwnerID:     owner,
				ChequeID:    chequeID,
				ContactDate: contactDate,
			},
			setupMock: func(m *followup.MockRepository) {
				m.EXPECT().
					CreateFollowUp(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := followup.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := followup.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				if tt.wantField != "" {
					var vErr followup.ValidationError
					require.ErrorAs(t, err, &vErr)
					assert.Equal(t, tt.wantField, vErr.Field)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, chequeID, got.ChequeID)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	ownerID := uuid.New()
	repo := followup.NewMockRepository(ctrl)
	repo.EXPECT().DeleteFollowUp(gomock.Any(), id, ownerID).Return(followup.ErrNotFound)

	svc := followup.NewService(repo)

	err := svc.Delete(context.Background(), id, ownerID)
	assert.ErrorIs(t, err, followup.ErrNotFound)
}

func TestService_ListForCheque(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chequeID := uuid.New()
	repo := followup.NewMockRepository(ctrl)
	repo.EXPECT().ListFollowUps(gomock.Any(), chequeID).Return([]*followup.FollowUp{
		{ID: uuid.New(), ChequeID: chequeID},
		{ID: uuid.New(), ChequeID: chequeID},
	}, nil)

	svc := followup.NewService(repo)

	got, err := svc.ListForCheque(context.Background(), chequeID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
