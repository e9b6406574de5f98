package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/auranotes/aura/internal/api"
	"github.com/auranotes/aura/internal/ui/keys"
	"github.com/auranotes/aura/internal/ui/styles"
)

type loginFailedMsg struct {
	err error
}

// LoginView is the login boundary: every lost session lands here.
type LoginView struct {
	repo   Repo
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	username textinput.Model
	password textinput.Model
	focusIdx int // 0=username, 1=password, 2=button

	notice     string
	errText    string
	submitting bool
}

// NewLoginView creates the login form.
func NewLoginView(repo Repo) *LoginView {
	s := styles.NewStyles()

	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 100
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100

	return &LoginView{
		repo:     repo,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		username: username,
		password: password,
	}
}

// Init starts the cursor blink.
func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

// SetNotice shows a line above the form, e.g. after a session expired.
func (v *LoginView) SetNotice(notice string) {
	v.notice = notice
}

// Update handles messages
func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case loginFailedMsg:
		v.submitting = false
		if errors.Is(msg.err, api.ErrInvalidCredentials) {
			v.errText = "Invalid username or password"
		} else {
			v.errText = "Login failed: " + msg.err.Error()
		}
		v.password.Reset()
		return v, nil

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return v, tea.Quit

		case key.Matches(msg, v.keys.Tab):
			v.cycleFocus(1)
			return v, nil

		case msg.String() == "shift+tab":
			v.cycleFocus(-1)
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx < 2 {
				v.cycleFocus(1)
				return v, nil
			}
			return v, v.submit()
		}

		var cmd tea.Cmd
		switch v.focusIdx {
		case 0:
			v.username, cmd = v.username.Update(msg)
		case 1:
			v.password, cmd = v.password.Update(msg)
		}
		return v, cmd
	}

	return v, nil
}

func (v *LoginView) cycleFocus(dir int) {
	v.username.Blur()
	v.password.Blur()
	v.focusIdx = (v.focusIdx + dir + 3) % 3
	switch v.focusIdx {
	case 0:
		v.username.Focus()
	case 1:
		v.password.Focus()
	}
}

func (v *LoginView) submit() tea.Cmd {
	if v.submitting || v.username.Value() == "" {
		return nil
	}
	v.submitting = true
	v.errText = ""

	user, pass := v.username.Value(), v.password.Value()
	return func() tea.Msg {
		if err := v.repo.Login(context.Background(), user, pass); err != nil {
			return loginFailedMsg{err: err}
		}
		return LoggedIn{}
	}
}

// View renders the view
func (v *LoginView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	userStyle := s.Input
	passStyle := s.Input
	btnStyle := s.Button
	switch v.focusIdx {
	case 0:
		userStyle = s.InputFocused
	case 1:
		passStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	btnLabel := " Sign in "
	if v.submitting {
		btnLabel = " Signing in… "
	}

	rows := []string{
		s.Title.Render("Aura Notes"),
		"",
	}
	if v.notice != "" {
		rows = append(rows, s.WarningText.Render(v.notice), "")
	}
	rows = append(rows,
		userStyle.Width(34).Render(v.username.View()),
		"",
		passStyle.Width(34).Render(v.password.View()),
		"",
		btnStyle.Render(btnLabel),
	)
	if v.errText != "" {
		rows = append(rows, "", s.ErrorText.Render(v.errText))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • ↵: sign in • Ctrl+C: quit"))

	form := lipgloss.JoinVertical(lipgloss.Center, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
