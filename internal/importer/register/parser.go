// Package register parses the cheque-register CSV layout exported by most
// accounting packages: a handful of preamble rows, a header row naming the
// columns, then one row per cheque.
package register

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"chequetrack/internal/cheque"
	"chequetrack/internal/encoding"
)

const (
	colNumber = "Cheque No"
	colParty  = "Party"
	colBank   = "Bank"
	colAmount = "Amount"
	colIssue  = "Issue Date"
	colDue    = "Due Date"
)

// Issue/due dates appear in either ISO or day-first form depending on the
// exporting package's locale.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

type Importer struct{}

func New() *Importer {
	return &Importer{}
}

func (i *Importer) Parse(r io.Reader) ([]cheque.CreateParams, error) {
	decoded, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	var params []cheque.CreateParams

	headerFound := false

	idxNumber := -1
	idxParty := -1
	idxBank := -1
	idxAmount := -1
	idxIssue := -1
	idxDue := -1

	for _, row := range rows {
		// Search for the header landmark before parsing data rows.
		if !headerFound {
			matches := 0

			for i, col := range row {
				switch strings.TrimSpace(col) {
				case colNumber:
					idxNumber = i
					matches++
				case colParty:
					idxParty = i
					matches++
				case colBank:
					idxBank = i
					matches++
				case colAmount:
					idxAmount = i
					matches++
				case colIssue:
					idxIssue = i
					matches++
				case colDue:
					idxDue = i
					matches++
				}
			}

			// Number, party, bank, amount and issue date are mandatory
			// columns; due date is optional in some exports.
			if idxNumber >= 0 && idxParty >= 0 && idxBank >= 0 && idxAmount >= 0 && idxIssue >= 0 {
				headerFound = true
			} else if matches > 0 {
				// Partial match means a row that merely mentions one of the
				// words; keep scanning.
				idxNumber, idxParty, idxBank, idxAmount, idxIssue, idxDue = -1, -1, -1, -1, -1, -1
			}

			continue
		}

		maxIdx := idxIssue
		for _, idx := range []int{idxNumber, idxParty, idxBank, idxAmount, idxDue} {
			if idx > maxIdx {
				maxIdx = idx
			}
		}

		if len(row) <= maxIdx {
			continue
		}

		number := strings.TrimSpace(row[idxNumber])
		if number == "" {
			continue
		}

		issueDate, err := parseDate(strings.TrimSpace(row[idxIssue]))
		if err != nil {
			// Probably a footer or subtotal row.
			continue
		}

		amount, err := parseAmount(strings.TrimSpace(row[idxAmount]))
		if err != nil {
			continue
		}

		p := cheque.CreateParams{
			ChequeNumber: number,
			PartyName:    strings.TrimSpace(row[idxParty]),
			BankName:     strings.TrimSpace(row[idxBank]),
			Amount:       amount,
			IssueDate:    issueDate,
			Status:       cheque.StatusPending,
		}

		if idxDue >= 0 && idxDue < len(row) {
			if due, err := parseDate(strings.TrimSpace(row[idxDue])); err == nil {
				p.DueDate = &due
			}
		}

		params = append(params, p)
	}

	if !headerFound {
		return nil, fmt.Errorf("no register header row found")
	}

	return params, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
