package view

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vipledger/internal/auth"
)

// LoggedInMsg is emitted once the session has been authenticated.
type LoggedInMsg struct{}

type LoginModel struct {
	CommonModel
	session *auth.Session

	form  *huh.Form
	creds *credentials
	err   error
}

// credentials lives behind a pointer so the form's bindings survive model copies.
type credentials struct {
	password string
	remember bool
}

func NewLoginModel(session *auth.Session) LoginModel {
	m := LoginModel{session: session, creds: &credentials{}}
	m.form = m.buildForm()

	return m
}

func (m *LoginModel) buildForm() *huh.Form {
	m.creds.password = ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.creds.password),

			huh.NewConfirm().
				Key("remember").
				Title("Remember me on this machine?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.creds.remember),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Title() string { return "Login" }

func (m LoginModel) ShortHelp() string { return "Enter/Tab: navigate | ctrl+c: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if err := m.session.Login(m.creds.password, m.creds.remember); err != nil {
		m.err = err
		if errors.Is(err, auth.ErrWrongPassword) {
			m.err = errors.New("incorrect password")
		}

		m.form = m.buildForm()

		return m, m.form.Init()
	}

	m.err = nil

	return m, func() tea.Msg { return LoggedInMsg{} }
}

func (m LoginModel) View() string {
	content := titleStyle.Render("VIP Ledger") + "\n\n" + m.form.View()
	if m.err != nil {
		content += "\n" + errorStyle.Render(m.err.Error())
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}
