// Package export writes a cheque register to an XLSX workbook.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"chequetrack/internal/cheque"
)

const sheetName = "Cheques"

// Column maps a workbook header to the cheque field it renders.
type Column struct {
	Header string
	Value  func(c *cheque.Cheque) any
}

var chequeColumns = []Column{
	{Header: "Cheque No", Value: func(c *cheque.Cheque) any { return c.ChequeNumber }},
	{Header: "Party", Value: func(c *cheque.Cheque) any { return c.PartyName }},
	{Header: "Bank", Value: func(c *cheque.Cheque) any { return c.BankName }},
	{Header: "Amount", Value: func(c *cheque.Cheque) any { return c.Amount.StringFixed(2) }},
	{Header: "Issue Date", Value: func(c *cheque.Cheque) any { return formatDate(&c.IssueDate) }},
	{Header: "Due Date", Value: func(c *cheque.Cheque) any { return formatDate(c.DueDate) }},
	{Header: "Status", Value: func(c *cheque.Cheque) any { return string(c.Status) }},
	{Header: "Bounce Reason", Value: func(c *cheque.Cheque) any {
		if c.BounceReason == nil {
			return ""
		}
		return string(*c.BounceReason)
	}},
	{Header: "Bounce Date", Value: func(c *cheque.Cheque) any { return formatDate(c.BounceDate) }},
	{Header: "Recovery Status", Value: func(c *cheque.Cheque) any {
		if c.RecoveryStatus == nil {
			return ""
		}
		return string(*c.RecoveryStatus)
	}},
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// Service handles the export of cheque registers.
type Service struct {
	cheques *cheque.Service
}

func NewService(chequeService *cheque.Service) *Service {
	return &Service{cheques: chequeService}
}

// Export writes the owner's cheques matching the filter to w as an XLSX
// workbook with one row per cheque.
func (s *Service) Export(ctx context.Context, ownerID uuid.UUID, filter cheque.ListFilter, w io.Writer) error {
	cheques, err := s.cheques.List(ctx, ownerID, filter)
	if err != nil {
		return fmt.Errorf("listing cheques: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	for i, col := range chequeColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, col.Header)
	}

	for rowIdx, c := range cheques {
		for colIdx, col := range chequeColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheetName, cell, col.Value(c))
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

// Filename returns the download name for an export generated at the
// given time.
func Filename(now time.Time) string {
	return fmt.Sprintf("cheques_%s.xlsx", now.Format("20060102_150405"))
}
