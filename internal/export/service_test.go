package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"chequetrack/internal/cheque"
)

// Mock Repository
type mockRepo struct {
	listChequesFunc func(ctx context.Context, ownerID uuid.UUID, filter cheque.ListFilter) ([]*cheque.Cheque, error)
}

func (m *mockRepo) CreateCheque(ctx context.Context, c *cheque.Cheque) error { return nil }

func (m *mockRepo) GetCheque(ctx context.Context, id uuid.UUID) (*cheque.Cheque, error) {
	return nil, nil
}

func (m *mockRepo) UpdateCheque(ctx context.Context, c *cheque.Cheque) error { return nil }

func (m *mockRepo) ListCheques(ctx context.Context, ownerID uuid.UUID, filter cheque.ListFilter) ([]*cheque.Cheque, error) {
	if m.listChequesFunc != nil {
		return m.listChequesFunc(ctx, ownerID, filter)
	}

	return nil, nil
}

func (m *mockRepo) DeleteCheque(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockRepo) FindByNumbers(ctx context.Context, ownerID uuid.UUID, numbers []string) ([]*cheque.Cheque, error) {
	return nil, nil
}

func (m *mockRepo) CreateCheques(ctx context.Context, cheques []*cheque.Cheque) error { return nil }

func TestExportService_Export(t *testing.T) {
	ownerID := uuid.New()
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	reason := cheque.ReasonInsufficientFunds

	c1 := &cheque.Cheque{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		PartyName:    "Acme Traders",
		ChequeNumber: "000451",
		BankName:     "First National",
		Amount:       decimal.RequireFromString("5000.00"),
		IssueDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      &due,
		Status:       cheque.StatusPending,
	}

	c2 := &cheque.Cheque{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		PartyName:    "Blue Ridge Supplies",
		ChequeNumber: "000452",
		BankName:     "Commerce Bank",
		Amount:       decimal.RequireFromString("1250.50"),
		IssueDate:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Status:       cheque.StatusBounced,
		BounceReason: &reason,
	}

	repo := &mockRepo{
		listChequesFunc: func(ctx context.Context, gotOwner uuid.UUID, filter cheque.ListFilter) ([]*cheque.Cheque, error) {
			assert.Equal(t, ownerID, gotOwner)
			return []*cheque.Cheque{c1, c2}, nil
		},
	}

	svc := NewService(cheque.NewService(repo))

	var buf bytes.Buffer
	err := svc.Export(context.Background(), ownerID, cheque.ListFilter{}, &buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Cheque No", header)

	checks := map[string]string{
		"A2": "000451",
		"B2": "Acme Traders",
		"C2": "First National",
		"D2": "5000.00",
		"E2": "2024-01-01",
		"F2": "2024-03-15",
		"G2": "pending",
		"H2": "",
		"A3": "000452",
		"D3": "1250.50",
		"F3": "",
		"G3": "bounced",
		"H3": "insufficient_funds",
	}

	for cell, want := range checks {
		got, err := f.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "cell %s", cell)
	}
}

func TestExportService_Empty(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(cheque.NewService(repo))

	var buf bytes.Buffer
	err := svc.Export(context.Background(), uuid.New(), cheque.ListFilter{}, &buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
	assert.Equal(t, "Cheque No", rows[0][0])
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "cheques_20240315_143005.xlsx", Filename(now))
}
