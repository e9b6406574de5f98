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

// UnlockView is the password challenge shown when a locked card is
// activated from the grid. It is the only path by which a locked note can
// reach the editor.
type UnlockView struct {
	repo   Repo
	styles *styles.Styles
	keys   keys.KeyMap

	pendingUnlockID string
	input           textinput.Model
	errText         string
	submitting      bool
}

// NewUnlockView creates the unlock challenge component.
func NewUnlockView(repo Repo, s *styles.Styles) *UnlockView {
	input := textinput.New()
	input.Placeholder = "Password"
	input.EchoMode = textinput.EchoPassword
	input.CharLimit = 100

	return &UnlockView{
		repo:   repo,
		styles: s,
		keys:   keys.DefaultKeyMap(),
		input:  input,
	}
}

// Open starts a challenge for the given note id.
func (v *UnlockView) Open(id string) tea.Cmd {
	v.pendingUnlockID = id
	v.input.Reset()
	v.input.Focus()
	v.errText = ""
	v.submitting = false
	return textinput.Blink
}

// Opened reports whether a challenge is in progress.
func (v *UnlockView) Opened() bool { return v.pendingUnlockID != "" }

// Close abandons the challenge.
func (v *UnlockView) Close() {
	v.pendingUnlockID = ""
	v.input.Blur()
}

// Update handles key input while the challenge is open.
func (v *UnlockView) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.Close()
		return nil

	case key.Matches(msg, v.keys.Enter):
		if v.submitting {
			return nil
		}
		v.submitting = true
		return v.submit(v.pendingUnlockID, v.input.Value())
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

// submit sends the challenge. A wrong password keeps the challenge open
// for retry; rate limiting is the server's business.
func (v *UnlockView) submit(id, password string) tea.Cmd {
	return func() tea.Msg {
		n, err := v.repo.Unlock(context.Background(), id, password)
		if err != nil {
			if errors.Is(err, api.ErrInvalidPassword) {
				return unlockFailedMsg{}
			}
			return errMsg{err}
		}
		return unlockedMsg{note: n}
	}
}

// Fail records a rejected attempt and reopens the input.
func (v *UnlockView) Fail() {
	v.submitting = false
	v.errText = "Invalid password"
	v.input.Reset()
	v.input.Focus()
}

// View renders the challenge popup.
func (v *UnlockView) View(width, height int) string {
	s := v.styles
	contentWidth := styles.ContentWidth(width)

	lines := []string{
		s.Title.Render("Unlock Note"),
		"",
		s.InputFocused.Width(34).Render(v.input.View()),
	}
	if v.errText != "" {
		lines = append(lines, s.ErrorText.Render(v.errText))
	}
	lines = append(lines,
		"",
		s.TitleMuted.Render("↵: unlock • Esc: cancel"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, width, height)
}
