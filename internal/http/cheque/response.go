package cheque

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"chequetrack/internal/cheque"
)

type chequeResponse struct {
	ID             uuid.UUID              `json:"id"`
	PartyName      string                 `json:"party_name"`
	ChequeNumber   string                 `json:"cheque_number"`
	BankName       string                 `json:"bank_name"`
	Amount         decimal.Decimal        `json:"amount"`
	IssueDate      time.Time              `json:"issue_date"`
	DueDate        *time.Time             `json:"due_date,omitempty"`
	Status         cheque.Status          `json:"status"`
	BounceReason   *cheque.BounceReason   `json:"bounce_reason,omitempty"`
	BounceDate     *time.Time             `json:"bounce_date,omitempty"`
	BounceRemarks  *string                `json:"bounce_remarks,omitempty"`
	RecoveryStatus *cheque.RecoveryStatus `json:"recovery_status,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

func toResponse(c *cheque.Cheque) chequeResponse {
	return chequeResponse{
		ID:             c.ID,
		PartyName:      c.PartyName,
		ChequeNumber:   c.ChequeNumber,
		BankName:       c.BankName,
		Amount:         c.Amount,
		IssueDate:      c.IssueDate,
		DueDate:        c.DueDate,
		Status:         c.Status,
		BounceReason:   c.BounceReason,
		BounceDate:     c.BounceDate,
		BounceRemarks:  c.BounceRemarks,
		RecoveryStatus: c.RecoveryStatus,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toResponseList(cheques []*cheque.Cheque) []chequeResponse {
	resp := make([]chequeResponse, len(cheques))
	for i, c := range cheques {
		resp[i] = toResponse(c)
	}

	return resp
}
