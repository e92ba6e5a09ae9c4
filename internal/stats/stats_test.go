package stats_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chequetrack/internal/cheque"
	"chequetrack/internal/stats"
)

// A fixed reference point keeps the day-window arithmetic deterministic.
var now = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func day(offset int) *time.Time {
	d := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	return &d
}

func pending(amount int64, due *time.Time) *cheque.Cheque {
	return &cheque.Cheque{
		Status:  cheque.StatusPending,
		Amount:  decimal.NewFromInt(amount),
		DueDate: due,
	}
}

func bounced(amount int64, recovery cheque.RecoveryStatus) *cheque.Cheque {
	reason := cheque.ReasonInsufficientFunds

	return &cheque.Cheque{
		Status:         cheque.StatusBounced,
		Amount:         decimal.NewFromInt(amount),
		BounceReason:   &reason,
		BounceDate:     day(0),
		RecoveryStatus: &recovery,
	}
}

func TestCompute_Empty(t *testing.T) {
	d := stats.Compute(nil, now)

	assert.Zero(t, d.TotalCheques)
	assert.True(t, d.TotalAmount.IsZero())
	assert.True(t, d.RecoveredAmount.IsZero())
}

func TestCompute_CountsAndSums(t *testing.T) {
	cheques := []*cheque.Cheque{
		pending(5000, nil),
		pending(1500, nil),
		{Status: cheque.StatusDeposited, Amount: decimal.NewFromInt(800)},
		{Status: cheque.StatusCleared, Amount: decimal.NewFromInt(2000)},
		bounced(3000, cheque.RecoveryPending),
	}

	d := stats.Compute(cheques, now)

	assert.Equal(t, 5, d.TotalCheques)
	assert.Equal(t, 2, d.PendingCheques)
	assert.Equal(t, 1, d.ClearedCheques)
	assert.Equal(t, 1, d.BouncedCheques)
	assert.True(t, d.TotalAmount.Equal(decimal.NewFromInt(12300)), "total %s", d.TotalAmount)
	assert.True(t, d.PendingAmount.Equal(decimal.NewFromInt(6500)), "pending %s", d.PendingAmount)
	assert.True(t, d.BouncedAmount.Equal(decimal.NewFromInt(3000)), "bounced %s", d.BouncedAmount)
	assert.True(t, d.RecoveredAmount.IsZero())
}

// Every cheque is in exactly one status, so the status sums partition the
// total.
func TestCompute_AmountsPartitionTotal(t *testing.T) {
	cheques := []*cheque.Cheque{
		pending(5000, nil),
		{Status: cheque.StatusDeposited, Amount: decimal.RequireFromString("199.99")},
		{Status: cheque.StatusCleared, Amount: decimal.RequireFromString("0.01")},
		{Status: cheque.StatusCleared, Amount: decimal.NewFromInt(750)},
		bounced(1250, cheque.RecoveryRecovered),
	}

	d := stats.Compute(cheques, now)

	var (
		deposited  = decimal.RequireFromString("199.99")
		clearedSum = decimal.RequireFromString("750.01")
	)

	sum := d.PendingAmount.Add(deposited).Add(clearedSum).Add(d.BouncedAmount)
	assert.True(t, d.TotalAmount.Equal(sum), "want %s, got %s", d.TotalAmount, sum)
}

func TestCompute_RecoveredAmount(t *testing.T) {
	cheques := []*cheque.Cheque{
		bounced(5000, cheque.RecoveryRecovered),
		bounced(2000, cheque.RecoveryInProgress),
		bounced(900, cheque.RecoveryWrittenOff),
	}

	d := stats.Compute(cheques, now)

	assert.True(t, d.RecoveredAmount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, d.BouncedAmount.Equal(decimal.NewFromInt(7900)))
}

func TestCompute_DueWindows(t *testing.T) {
	type testCase struct {
		name         string
		due          *time.Time
		wantUpcoming int
		wantOverdue  int
	}

	tests := []testCase{
		{name: "NoDueDate", due: nil},
		{name: "DueYesterday", due: day(-1), wantOverdue: 1},
		{name: "DueLastMonth", due: day(-30), wantOverdue: 1},
		{name: "DueExactlyToday", due: day(0)},
		{name: "DueTomorrow", due: day(1), wantUpcoming: 1},
		{name: "DueInSixDays", due: day(6), wantUpcoming: 1},
		{name: "DueInExactlySevenDays", due: day(7)},
		{name: "DueInEightDays", due: day(8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := stats.Compute([]*cheque.Cheque{pending(100, tt.due)}, now)

			assert.Equal(t, tt.wantUpcoming, d.UpcomingDueCount, "upcoming")
			assert.Equal(t, tt.wantOverdue, d.OverdueCount, "overdue")
		})
	}
}

// Only pending cheques feed the due-date windows.
func TestCompute_DueWindowsIgnoreNonPending(t *testing.T) {
	cheques := []*cheque.Cheque{
		{Status: cheque.StatusDeposited, Amount: decimal.NewFromInt(100), DueDate: day(-3)},
		{Status: cheque.StatusCleared, Amount: decimal.NewFromInt(100), DueDate: day(2)},
		bounced(100, cheque.RecoveryPending),
	}

	d := stats.Compute(cheques, now)

	assert.Zero(t, d.UpcomingDueCount)
	assert.Zero(t, d.OverdueCount)
}

func TestCompute_WindowsAreDisjoint(t *testing.T) {
	cheques := []*cheque.Cheque{
		pending(100, day(-2)),
		pending(100, day(0)),
		pending(100, day(3)),
		pending(100, nil),
	}

	d := stats.Compute(cheques, now)

	assert.Equal(t, 1, d.UpcomingDueCount)
	assert.Equal(t, 1, d.OverdueCount)
	// due-today and null-due cheques land in neither bucket
	assert.Equal(t, 4, d.PendingCheques)
}

// Walks a full cheque lifecycle: create, bounce, recover.
func TestCompute_LifecycleScenario(t *testing.T) {
	c := &cheque.Cheque{
		PartyName: "Acme",
		Status:    cheque.StatusPending,
		Amount:    decimal.NewFromInt(5000),
		IssueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	d := stats.Compute([]*cheque.Cheque{c}, now)
	assert.Equal(t, 1, d.TotalCheques)
	assert.True(t, d.PendingAmount.Equal(decimal.NewFromInt(5000)))

	reason := cheque.ReasonInsufficientFunds
	recovery := cheque.RecoveryPending
	c.Status = cheque.StatusBounced
	c.BounceReason = &reason
	c.BounceDate = day(0)
	c.RecoveryStatus = &recovery

	d = stats.Compute([]*cheque.Cheque{c}, now)
	assert.True(t, d.BouncedAmount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, d.PendingAmount.IsZero())
	assert.True(t, d.RecoveredAmount.IsZero())

	recovered := cheque.RecoveryRecovered
	c.RecoveryStatus = &recovered

	d = stats.Compute([]*cheque.Cheque{c}, now)
	assert.True(t, d.RecoveredAmount.Equal(decimal.NewFromInt(5000)))
}

// Decimal amounts must aggregate without floating-point drift.
func TestCompute_NoFloatDrift(t *testing.T) {
	cheques := make([]*cheque.Cheque, 0, 1000)
	for range 1000 {
		cheques = append(cheques, pending(0, nil))
	}

	tenth := decimal.RequireFromString("0.10")
	for _, c := range cheques {
		c.Amount = tenth
	}

	d := stats.Compute(cheques, now)

	require.True(t, d.TotalAmount.Equal(decimal.NewFromInt(100)), "got %s", d.TotalAmount)
}
