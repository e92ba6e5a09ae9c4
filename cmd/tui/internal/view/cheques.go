package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"chequetrack/internal/cheque"
)

type chequesState int

const (
	chequesStateBrowse chequesState = iota
	chequesStateCreate
	chequesStateEdit
	chequesStateBounce
)

type ChequesModel struct {
	CommonModel
	chequeService *cheque.Service
	ownerID       uuid.UUID

	state   chequesState
	table   table.Model
	cheques []*cheque.Cheque
	form    *huh.Form

	statusFilterIdx int
	filter          cheque.ListFilter
	loading         bool
	err             error
	status          string

	// Form bindings
	formParty   string
	formNumber  string
	formBank    string
	formAmount  string
	formIssue   string
	formDue     string
	formReason  cheque.BounceReason
	formRemarks string
}

func NewChequesModel(chequeSvc *cheque.Service, ownerID uuid.UUID) ChequesModel {
	columns := []table.Column{
		{Title: "Cheque No", Width: 12},
		{Title: "Party", Width: 24},
		{Title: "Bank", Width: 18},
		{Title: "Amount", Width: 12},
		{Title: "Issue", Width: 12},
		{Title: "Due", Width: 12},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ChequesModel{
		chequeService: chequeSvc,
		ownerID:       ownerID,
		table:         t,
		filter:        cheque.ListFilter{},
	}
}

func (m ChequesModel) Title() string { return "Cheques" }

func (m ChequesModel) ShortHelp() string {
	if m.state != chequesStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | d: deposit | c: clear | b: bounce | x: delete | s: status filter | r: refresh"
}

func (m ChequesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ChequesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chequesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.cheques = msg.cheques
		m.refreshTable()
		return m, nil

	case chequeActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}
		m.state = chequesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == chequesStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m ChequesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreateMode()
		case "e":
			return m.enterEditMode()
		case "b":
			return m.enterBounceMode()
		case "d":
			return m.commandSelected("deposited", m.chequeService.Deposit)
		case "c":
			return m.commandSelected("cleared", m.chequeService.Clear)
		case "x":
			return m.deleteSelected()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 5
			m.applyFilter()
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ChequesModel) selected() *cheque.Cheque {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cheques) {
		return nil
	}

	return m.cheques[idx]
}

func (m ChequesModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formParty = ""
	m.formNumber = ""
	m.formBank = ""
	m.formAmount = ""
	m.formIssue = FormatDate(time.Now())
	m.formDue = ""

	m.form = m.buildChequeForm()
	m.state = chequesStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m ChequesModel) enterEditMode() (tea.Model, tea.Cmd) {
	c := m.selected()
	if c == nil {
		return m, nil
	}

	m.formParty = c.PartyName
	m.formNumber = c.ChequeNumber
	m.formBank = c.BankName
	m.formAmount = FormatAmount(c.Amount)
	m.formIssue = FormatDate(c.IssueDate)
	m.formDue = ""
	if c.DueDate != nil {
		m.formDue = FormatDate(*c.DueDate)
	}

	m.form = m.buildChequeForm()
	m.state = chequesStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ChequesModel) enterBounceMode() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.formReason = cheque.ReasonInsufficientFunds
	m.formRemarks = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[cheque.BounceReason]().
				Key("reason").
				Title("Bounce Reason").
				Options(
					huh.NewOption("Insufficient funds", cheque.ReasonInsufficientFunds),
					huh.NewOption("Signature mismatch", cheque.ReasonSignatureMismatch),
					huh.NewOption("Account closed", cheque.ReasonAccountClosed),
					huh.NewOption("Stop payment", cheque.ReasonStopPayment),
					huh.NewOption("Stale dated", cheque.ReasonStaleDated),
					huh.NewOption("Other", cheque.ReasonOther),
				).
				Value(&m.formReason),

			huh.NewInput().
				Key("remarks").
				Title("Remarks").
				Value(&m.formRemarks),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = chequesStateBounce
	m.table.Blur()

	return m, m.form.Init()
}

func (m ChequesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = chequesStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case chequesStateCreate:
		return m, m.createCmd()
	case chequesStateEdit:
		return m, m.editCmd()
	case chequesStateBounce:
		return m, m.bounceCmd()
	}

	return m, nil
}

func (m ChequesModel) buildChequeForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("party").
				Title("Party").
				Value(&m.formParty).
				Validate(notEmpty("party")),

			huh.NewInput().
				Key("number").
				Title("Cheque No").
				Value(&m.formNumber).
				Validate(notEmpty("cheque number")),

			huh.NewInput().
				Key("bank").
				Title("Bank").
				Value(&m.formBank).
				Validate(notEmpty("bank")),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("5000.00").
				Value(&m.formAmount).
				Validate(validAmount),

			huh.NewInput().
				Key("issue").
				Title("Issue Date (YYYY-MM-DD)").
				Value(&m.formIssue).
				Validate(validDate),

			huh.NewInput().
				Key("due").
				Title("Due Date (YYYY-MM-DD, optional)").
				Value(&m.formDue).
				Validate(validOptionalDate),
		),
	).WithWidth(45).WithShowHelp(false)
}

func notEmpty(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
		return nil
	}
}

func validAmount(s string) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid amount")
	}

	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}

	return nil
}

func validDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}

	return nil
}

func validOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	return validDate(s)
}

func (m ChequesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading cheques...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Pending", "Deposited", "Cleared", "Bounced"}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(statusLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != chequesStateBrowse && m.form != nil {
		titles := map[chequesState]string{
			chequesStateCreate: "New Cheque",
			chequesStateEdit:   "Edit Cheque",
			chequesStateBounce: "Mark Bounced",
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", titles[m.state], m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ChequesModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		m.filter.Status = new(cheque.StatusPending)
	case 2:
		m.filter.Status = new(cheque.StatusDeposited)
	case 3:
		m.filter.Status = new(cheque.StatusCleared)
	case 4:
		m.filter.Status = new(cheque.StatusBounced)
	default:
		m.filter.Status = nil
	}
}

func (m *ChequesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.cheques))
	for _, c := range m.cheques {
		rows = append(rows, table.Row{
			c.ChequeNumber,
			c.PartyName,
			c.BankName,
			FormatAmount(c.Amount),
			FormatDate(c.IssueDate),
			FormatDatePtr(c.DueDate),
			string(c.Status),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type chequesLoadedMsg struct {
	cheques []*cheque.Cheque
	err     error
}

func (m ChequesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cheques, err := m.chequeService.List(ctx, m.ownerID, m.filter)
		return chequesLoadedMsg{cheques: cheques, err: err}
	}
}

type chequeActionMsg struct {
	status string
	err    error
}

func (m ChequesModel) parseFormDates() (time.Time, *time.Time) {
	issue, _ := time.Parse("2006-01-02", strings.TrimSpace(m.formIssue))

	var due *time.Time
	if s := strings.TrimSpace(m.formDue); s != "" {
		if d, err := time.Parse("2006-01-02", s); err == nil {
			due = &d
		}
	}

	return issue, due
}

func (m ChequesModel) createCmd() tea.Cmd {
	amount, _ := decimal.NewFromString(strings.TrimSpace(m.formAmount))
	issue, due := m.parseFormDates()

	params := cheque.CreateParams{
		OwnerID:      m.ownerID,
		PartyName:    strings.TrimSpace(m.formParty),
		ChequeNumber: strings.TrimSpace(m.formNumber),
		BankName:     strings.TrimSpace(m.formBank),
		Amount:       amount,
		IssueDate:    issue,
		DueDate:      due,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.chequeService.Create(ctx, params); err != nil {
			return chequeActionMsg{err: err}
		}

		return chequeActionMsg{status: "Cheque created."}
	}
}

func (m ChequesModel) editCmd() tea.Cmd {
	c := m.selected()
	if c == nil {
		return nil
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(m.formAmount))
	issue, due := m.parseFormDates()

	params := cheque.UpdateParams{
		PartyName:    new(strings.TrimSpace(m.formParty)),
		ChequeNumber: new(strings.TrimSpace(m.formNumber)),
		BankName:     new(strings.TrimSpace(m.formBank)),
		Amount:       &amount,
		IssueDate:    &issue,
		DueDate:      due,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.chequeService.Update(ctx, c.ID, params); err != nil {
			return chequeActionMsg{err: err}
		}

		return chequeActionMsg{status: "Cheque updated."}
	}
}

func (m ChequesModel) bounceCmd() tea.Cmd {
	c := m.selected()
	if c == nil {
		return nil
	}

	reason := m.formReason
	remarks := strings.TrimSpace(m.formRemarks)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.chequeService.MarkBounced(ctx, c.ID, reason, remarks); err != nil {
			return chequeActionMsg{err: err}
		}

		return chequeActionMsg{status: "Cheque marked as bounced."}
	}
}

func (m ChequesModel) commandSelected(label string, fn func(context.Context, uuid.UUID) (*cheque.Cheque, error)) (tea.Model, tea.Cmd) {
	c := m.selected()
	if c == nil {
		return m, nil
	}

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := fn(ctx, c.ID); err != nil {
			return chequeActionMsg{err: err}
		}

		return chequeActionMsg{status: fmt.Sprintf("Cheque %s marked %s.", c.ChequeNumber, label)}
	}
}

func (m ChequesModel) deleteSelected() (tea.Model, tea.Cmd) {
	c := m.selected()
	if c == nil {
		return m, nil
	}

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.chequeService.Delete(ctx, c.ID); err != nil {
			return chequeActionMsg{err: err}
		}

		return chequeActionMsg{status: fmt.Sprintf("Cheque %s deleted.", c.ChequeNumber)}
	}
}
