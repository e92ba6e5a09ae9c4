package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"chequetrack/internal/cheque"
	"chequetrack/internal/followup"
)

type recoveryState int

const (
	recoveryStateBrowse recoveryState = iota
	recoveryStateStatus
	recoveryStateFollowUps
	recoveryStateAddFollowUp
)

type RecoveryModel struct {
	CommonModel
	chequeService   *cheque.Service
	followUpService *followup.Service
	ownerID         uuid.UUID

	state   recoveryState
	table   table.Model
	cheques []*cheque.Cheque
	form    *huh.Form

	followUps    []*followup.FollowUp
	followUpList list.Model

	loading bool
	err     error
	status  string

	// Form bindings
	formRecovery cheque.RecoveryStatus
	formContact  string
	formNext     string
	formNotes    string
	formAction   string
}

func NewRecoveryModel(chequeSvc *cheque.Service, followUpSvc *followup.Service, ownerID uuid.UUID) RecoveryModel {
	columns := []table.Column{
		{Title: "Cheque No", Width: 12},
		{Title: "Party", Width: 24},
		{Title: "Amount", Width: 12},
		{Title: "Bounced", Width: 12},
		{Title: "Reason", Width: 20},
		{Title: "Recovery", Width: 12},
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

	return RecoveryModel{
		chequeService:   chequeSvc,
		followUpService: followUpSvc,
		ownerID:         ownerID,
		table:           t,
	}
}

func (m RecoveryModel) Title() string { return "Recovery" }

func (m RecoveryModel) ShortHelp() string {
	switch m.state {
	case recoveryStateFollowUps:
		return "Esc: back | a: add follow-up | x: delete follow-up"
	case recoveryStateStatus, recoveryStateAddFollowUp:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: follow-ups | u: recovery status | r: refresh"
}

func (m RecoveryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RecoveryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recoveryLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.cheques = msg.cheques
		m.refreshTable()
		return m, nil

	case followUpsLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.followUps = msg.followUps
		m.state = recoveryStateFollowUps
		m.refreshFollowUpList()
		return m, nil

	case recoveryActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.form = nil

		switch m.state {
		case recoveryStateAddFollowUp, recoveryStateFollowUps:
			m.state = recoveryStateFollowUps
			return m, m.loadFollowUpsCmd()
		default:
			m.state = recoveryStateBrowse
			m.table.Focus()
			return m, m.loadCmd()
		}

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case recoveryStateBrowse:
		return m.updateBrowse(msg)
	case recoveryStateFollowUps:
		return m.updateFollowUps(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m RecoveryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			if m.selected() == nil {
				return m, nil
			}
			return m, m.loadFollowUpsCmd()
		case "u":
			return m.enterStatusMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m RecoveryModel) updateFollowUps(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = recoveryStateBrowse
			m.followUps = nil
			m.table.Focus()
			return m, nil
		case "a":
			return m.enterAddFollowUpMode()
		case "x":
			idx := m.followUpList.Index()
			if idx < 0 || idx >= len(m.followUps) {
				return m, nil
			}
			return m, m.deleteFollowUpCmd(m.followUps[idx].ID)
		}
	}

	var cmd tea.Cmd
	m.followUpList, cmd = m.followUpList.Update(msg)
	return m, cmd
}

func (m RecoveryModel) selected() *cheque.Cheque {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cheques) {
		return nil
	}

	return m.cheques[idx]
}

func (m RecoveryModel) enterStatusMode() (tea.Model, tea.Cmd) {
	c := m.selected()
	if c == nil {
		return m, nil
	}

	m.formRecovery = cheque.RecoveryPending
	if c.RecoveryStatus != nil {
		m.formRecovery = *c.RecoveryStatus
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[cheque.RecoveryStatus]().
				Key("recovery_status").
				Title("Recovery Status").
				Options(
					huh.NewOption("Pending", cheque.RecoveryPending),
					huh.NewOption("In progress", cheque.RecoveryInProgress),
					huh.NewOption("Recovered", cheque.RecoveryRecovered),
					huh.NewOption("Written off", cheque.RecoveryWrittenOff),
				).
				Value(&m.formRecovery),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = recoveryStateStatus
	m.table.Blur()

	return m, m.form.Init()
}

func (m RecoveryModel) enterAddFollowUpMode() (tea.Model, tea.Cmd) {
	m.formContact = FormatDate(time.Now())
	m.formNext = ""
	m.formNotes = ""
	m.formAction = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("contact_date").
				Title("Contact Date (YYYY-MM-DD)").
				Value(&m.formContact).
				Validate(validDate),

			huh.NewInput().
				Key("next_follow_up").
				Title("Next Follow-up (YYYY-MM-DD, optional)").
				Value(&m.formNext).
				Validate(validOptionalDate),

			huh.NewInput().
				Key("action_taken").
				Title("Action Taken").
				Placeholder("Called party").
				Value(&m.formAction),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = recoveryStateAddFollowUp

	return m, m.form.Init()
}

func (m RecoveryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			switch m.state {
			case recoveryStateAddFollowUp:
				m.state = recoveryStateFollowUps
			default:
				m.state = recoveryStateBrowse
				m.table.Focus()
			}
			m.form = nil
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
	case recoveryStateStatus:
		return m, m.updateStatusCmd()
	case recoveryStateAddFollowUp:
		return m, m.addFollowUpCmd()
	}

	return m, nil
}

func (m RecoveryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading bounced cheques...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var content string

	switch m.state {
	case recoveryStateFollowUps, recoveryStateAddFollowUp:
		c := m.selected()
		header := ""
		if c != nil {
			header = fmt.Sprintf("Follow-ups for cheque %s (%s, %s)",
				c.ChequeNumber, c.PartyName, FormatAmount(c.Amount))
		}

		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(header),
			m.followUpList.View(),
		)
	default:
		content = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())
	}

	if m.form != nil {
		titles := map[recoveryState]string{
			recoveryStateStatus:      "Update Recovery Status",
			recoveryStateAddFollowUp: "Add Follow-up",
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(fmt.Sprintf("%s\n\n%s", titles[m.state], m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *RecoveryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.cheques))
	for _, c := range m.cheques {
		reason := ""
		if c.BounceReason != nil {
			reason = string(*c.BounceReason)
		}

		recovery := ""
		if c.RecoveryStatus != nil {
			recovery = string(*c.RecoveryStatus)
		}

		rows = append(rows, table.Row{
			c.ChequeNumber,
			c.PartyName,
			FormatAmount(c.Amount),
			FormatDatePtr(c.BounceDate),
			reason,
			recovery,
		})
	}
	m.table.SetRows(rows)
}

func (m *RecoveryModel) refreshFollowUpList() {
	items := make([]list.Item, len(m.followUps))
	for i, f := range m.followUps {
		items[i] = followUpItem{followUp: f}
	}

	m.followUpList = list.New(items, followUpDelegate{}, 80, 18)
	m.followUpList.Title = "Follow-ups"
	m.followUpList.SetShowStatusBar(false)
	m.followUpList.SetFilteringEnabled(false)
	m.followUpList.SetShowHelp(false)
}

// Messages

type recoveryLoadedMsg struct {
	cheques []*cheque.Cheque
	err     error
}

func (m RecoveryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cheques, err := m.chequeService.List(ctx, m.ownerID, cheque.ListFilter{
			Status: new(cheque.StatusBounced),
		})
		return recoveryLoadedMsg{cheques: cheques, err: err}
	}
}

type followUpsLoadedMsg struct {
	followUps []*followup.FollowUp
	err       error
}

func (m RecoveryModel) loadFollowUpsCmd() tea.Cmd {
	c := m.selected()
	if c == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		followUps, err := m.followUpService.ListForCheque(ctx, c.ID)
		return followUpsLoadedMsg{followUps: followUps, err: err}
	}
}

type recoveryActionMsg struct {
	status string
	err    error
}

func (m RecoveryModel) updateStatusCmd() tea.Cmd {
	c := m.selected()
	if c == nil {
		return nil
	}

	status := m.formRecovery

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.chequeService.UpdateRecovery(ctx, c.ID, status); err != nil {
			return recoveryActionMsg{err: err}
		}

		return recoveryActionMsg{status: fmt.Sprintf("Recovery status set to %s.", status)}
	}
}

func (m RecoveryModel) addFollowUpCmd() tea.Cmd {
	c := m.selected()
	if c == nil {
		return nil
	}

	contact, _ := time.Parse("2006-01-02", strings.TrimSpace(m.formContact))

	var next *time.Time
	if s := strings.TrimSpace(m.formNext); s != "" {
		if d, err := time.Parse("2006-01-02", s); err == nil {
			next = &d
		}
	}

	var notes, action *string
	if s := strings.TrimSpace(m.formNotes); s != "" {
		notes = &s
	}
	if s := strings.TrimSpace(m.formAction); s != "" {
		action = &s
	}

	params := followup.CreateParams{
		OwnerID:          m.ownerID,
		ChequeID:         c.ID,
		ContactDate:      contact,
		NextFollowUpDate: next,
		Notes:            notes,
		ActionTaken:      action,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.followUpService.Create(ctx, params); err != nil {
			return recoveryActionMsg{err: err}
		}

		return recoveryActionMsg{status: "Follow-up recorded."}
	}
}

func (m RecoveryModel) deleteFollowUpCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.followUpService.Delete(ctx, id, m.ownerID); err != nil {
			return recoveryActionMsg{err: err}
		}

		return recoveryActionMsg{status: "Follow-up deleted."}
	}
}

// Follow-up list item

type followUpItem struct {
	followUp *followup.FollowUp
}

func (i followUpItem) Title() string       { return "" }
func (i followUpItem) Description() string { return "" }
func (i followUpItem) FilterValue() string { return "" }

// Follow-up list delegate

type followUpDelegate struct{}

func (d followUpDelegate) Height() int                             { return 3 }
func (d followUpDelegate) Spacing() int                            { return 0 }
func (d followUpDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d followUpDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(followUpItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	f := item.followUp

	action := "-"
	if f.ActionTaken != nil {
		action = *f.ActionTaken
	}

	notes := ""
	if f.Notes != nil {
		notes = *f.Notes
	}

	line1 := fmt.Sprintf("%s%s  %s  next: %s",
		cursor, FormatDate(f.ContactDate), action, FormatDatePtr(f.NextFollowUpDate))

	line2 := fmt.Sprintf("      %s", notes)

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
