package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

// page adapts one record collection to the shared table screen.
type page interface {
	title() string
	columns() []table.Column
	// monthly reports whether rows are narrowed to the picked month.
	monthly() bool
	searchable() bool
	rows(store *ledger.Store, m period.Month, query string) []pageRow
	footer(store *ledger.Store, m period.Month) string
	// editor builds the add form when id is empty. ok is false when the row cannot be edited.
	editor(store *ledger.Store, id string) (ed editor, ok bool)
	deletePrompt(store *ledger.Store, id string) string
	remove(ctx context.Context, store *ledger.Store, id string) error
}

type pageRow struct {
	id    string
	cells table.Row
}

type editor struct {
	title  string
	form   *huh.Form
	submit func(ctx context.Context) error
}

type recordsState int

const (
	recordsStateBrowse recordsState = iota
	recordsStateSearch
	recordsStateEdit
	recordsStateDelete
)

type RecordsModel struct {
	CommonModel
	store *ledger.Store
	page  page

	state   recordsState
	table   table.Model
	rows    []pageRow
	picker  MonthPicker
	search  textinput.Model
	editor  editor
	editID  string
	pending string
	status  string
}

func newRecordsModel(store *ledger.Store, p page, month period.Month) RecordsModel {
	t := table.New(
		table.WithColumns(p.columns()),
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

	search := textinput.New()
	search.Placeholder = "description, category or dd/MM/yyyy"
	search.Prompt = "Search: "
	search.Width = 40

	m := RecordsModel{
		store:  store,
		page:   p,
		table:  t,
		picker: NewMonthPicker(month),
		search: search,
	}
	m.refresh()

	return m
}

func NewIncomeModel(store *ledger.Store, month period.Month) RecordsModel {
	return newRecordsModel(store, incomePage{}, month)
}

func NewExpenseModel(store *ledger.Store, month period.Month) RecordsModel {
	return newRecordsModel(store, expensePage{}, month)
}

func NewAdvanceModel(store *ledger.Store, month period.Month) RecordsModel {
	return newRecordsModel(store, advancePage{}, month)
}

func NewSalaryModel(store *ledger.Store, month period.Month) RecordsModel {
	return newRecordsModel(store, salaryPage{}, month)
}

func NewEmployeeModel(store *ledger.Store, month period.Month) RecordsModel {
	return newRecordsModel(store, employeePage{}, month)
}

func NewDebtModel(store *ledger.Store, month period.Month) RecordsModel {
	return newRecordsModel(store, debtPage{}, month)
}

func (m RecordsModel) Title() string { return m.page.title() }

func (m RecordsModel) ShortHelp() string {
	switch m.state {
	case recordsStateEdit:
		return "Enter/Tab: navigate form | Esc: cancel"
	case recordsStateSearch:
		return "Enter: done | Esc: clear"
	case recordsStateDelete:
		return "y: delete | n/Esc: keep"
	}

	help := "Esc: back | a: add | e: edit | d: delete"
	if m.page.searchable() {
		help += " | /: search"
	}

	if m.page.monthly() {
		help += " | ←/→: month | t: this month"
	}

	return help
}

func (m RecordsModel) Init() tea.Cmd {
	return nil
}

func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordSavedMsg:
		m.state = recordsStateBrowse
		m.editor = editor{}
		m.pending = ""
		m.table.Focus()

		m.status = msg.done
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
		}

		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	switch m.state {
	case recordsStateSearch:
		return m.updateSearch(msg)
	case recordsStateEdit:
		return m.updateEdit(msg)
	case recordsStateDelete:
		return m.updateDelete(msg)
	}

	return m.updateBrowse(msg)
}

func (m RecordsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.startEdit("")
		case "e", "enter":
			if id, ok := m.selected(); ok {
				return m.startEdit(id)
			}

			return m, nil
		case "d":
			if id, ok := m.selected(); ok {
				m.pending = id
				m.state = recordsStateDelete
			}

			return m, nil
		case "/":
			if m.page.searchable() {
				m.state = recordsStateSearch
				m.table.Blur()

				return m, m.search.Focus()
			}
		case "left", "right", "t":
			if m.page.monthly() {
				m.picker, _ = m.picker.Update(keyMsg)
				m.refresh()

				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RecordsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.search.Blur()
			m.table.Focus()
			m.state = recordsStateBrowse
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()

	return m, cmd
}

func (m RecordsModel) startEdit(id string) (tea.Model, tea.Cmd) {
	ed, ok := m.page.editor(m.store, id)
	if !ok {
		m.status = faintStyle.Render("This entry cannot be edited.")
		return m, nil
	}

	m.editor = ed
	m.editID = id
	m.state = recordsStateEdit
	m.table.Blur()

	return m, m.editor.form.Init()
}

func (m RecordsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = recordsStateBrowse
		m.editor = editor{}
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.editor.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.editor.form = f
	}

	if m.editor.form.State != huh.StateCompleted {
		return m, cmd
	}

	done := "Added."
	if m.editID != "" {
		done = "Updated."
	}

	return m, saveCmd(m.editor.submit, done)
}

func (m RecordsModel) updateDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		id, store, p := m.pending, m.store, m.page

		return m, saveCmd(func(ctx context.Context) error {
			return p.remove(ctx, store, id)
		}, "Deleted.")
	case "n", "N", "esc":
		m.pending = ""
		m.state = recordsStateBrowse
	}

	return m, nil
}

func (m RecordsModel) selected() (string, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return "", false
	}

	return m.rows[idx].id, true
}

func (m *RecordsModel) refresh() {
	m.rows = m.page.rows(m.store, m.picker.Month(), m.search.Value())

	rows := make([]table.Row, 0, len(m.rows))
	for _, r := range m.rows {
		rows = append(rows, r.cells)
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m RecordsModel) View() string {
	header := titleStyle.Render(m.page.title())
	if m.page.monthly() {
		header += "   " + m.picker.View()
	}

	parts := []string{lipgloss.NewStyle().PaddingBottom(1).Render(header)}

	if m.page.searchable() && (m.state == recordsStateSearch || m.search.Value() != "") {
		parts = append(parts, m.search.View())
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	parts = append(parts, tableView, m.page.footer(m.store, m.picker.Month()))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	switch m.state {
	case recordsStateEdit:
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(52).
			Render(m.editor.title + "\n\n" + m.editor.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	case recordsStateDelete:
		content += "\n\n" + errorStyle.Render(m.page.deletePrompt(m.store, m.pending)+" (y/n)")
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type recordSavedMsg struct {
	done string
	err  error
}

func saveCmd(submit func(ctx context.Context) error, done string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return recordSavedMsg{done: done, err: submit(ctx)}
	}
}
