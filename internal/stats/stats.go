// Package stats derives dashboard figures from a cheque collection.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"chequetrack/internal/cheque"
)

// Dashboard holds the derived figures for one owner's ledger. Amounts are
// exact decimals; sums never pass through binary floating point.
type Dashboard struct {
	TotalCheques     int             `json:"total_cheques"`
	PendingCheques   int             `json:"pending_cheques"`
	ClearedCheques   int             `json:"cleared_cheques"`
	BouncedCheques   int             `json:"bounced_cheques"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	PendingAmount    decimal.Decimal `json:"pending_amount"`
	BouncedAmount    decimal.Decimal `json:"bounced_amount"`
	RecoveredAmount  decimal.Decimal `json:"recovered_amount"`
	UpcomingDueCount int             `json:"upcoming_due_count"`
	OverdueCount     int             `json:"overdue_count"`
}

const lookaheadDays = 7

// Compute aggregates the full collection in a single pass. "Today" is the
// start of the current calendar day in now's location.
//
// The due-date window is exclusive on both ends: a pending cheque due exactly
// today or exactly seven days out counts as neither upcoming nor overdue.
// Cheques without a due date are excluded from both counts.
func Compute(cheques []*cheque.Cheque, now time.Time) Dashboard {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekFromNow := today.AddDate(0, 0, lookaheadDays)

	d := Dashboard{
		TotalAmount:     decimal.Zero,
		PendingAmount:   decimal.Zero,
		BouncedAmount:   decimal.Zero,
		RecoveredAmount: decimal.Zero,
	}

	for _, c := range cheques {
		d.TotalCheques++
		d.TotalAmount = d.TotalAmount.Add(c.Amount)

		switch c.Status {
		case cheque.StatusPending:
			d.PendingCheques++
			d.PendingAmount = d.PendingAmount.Add(c.Amount)

			if c.DueDate != nil {
				due := *c.DueDate
				if due.After(today) && due.Before(weekFromNow) {
					d.UpcomingDueCount++
				} else if due.Before(today) {
					d.OverdueCount++
				}
			}
		case cheque.StatusCleared:
			d.ClearedCheques++
		case cheque.StatusBounced:
			d.BouncedCheques++
			d.BouncedAmount = d.BouncedAmount.Add(c.Amount)

			if c.RecoveryStatus != nil && *c.RecoveryStatus == cheque.RecoveryRecovered {
				d.RecoveredAmount = d.RecoveredAmount.Add(c.Amount)
			}
		}
	}

	return d
}
