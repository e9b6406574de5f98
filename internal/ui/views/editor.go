package views

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/auranotes/aura/internal/api"
	"github.com/auranotes/aura/internal/note"
	"github.com/auranotes/aura/internal/ui/keys"
	"github.com/auranotes/aura/internal/ui/styles"
)

// editorMode is the modal state: closed, composing a new note, or editing
// an existing one. Exactly one draft exists while the editor is open.
type editorMode int

const (
	editorClosed editorMode = iota
	editorCreate
	editorEdit
)

// Editor form fields, in tab order.
const (
	fieldTitle = iota
	fieldContent
	fieldTags
	fieldColor
	fieldExpiry
	fieldCustomExpiry
	fieldSave
	fieldCount
)

var expiryModes = []note.ExpiryMode{
	note.ExpiryNever,
	note.ExpiryOneDay,
	note.ExpirySevenDays,
	note.ExpiryCustom,
}

// EditorView is the note composer modal. The draft lives only while the
// editor is open and is consumed exactly once on save.
type EditorView struct {
	repo   Repo
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	mode    editorMode
	editing note.Note // snapshot seeded on open, zero for create

	title        textinput.Model
	content      textarea.Model
	tags         textinput.Model
	color        string
	expiryMode   note.ExpiryMode
	customExpiry textinput.Model
	focusIdx     int

	warning string
	saving  bool

	// Lock sub-flows
	promptingPassword bool
	password          textinput.Model
	promptErr         string
	confirmingRemoval bool
}

// NewEditorView creates a closed editor.
func NewEditorView(repo Repo, s *styles.Styles) *EditorView {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200

	content := textarea.New()
	content.Placeholder = "Take a note..."
	content.CharLimit = 50000
	content.SetWidth(50)
	content.SetHeight(6)
	content.ShowLineNumbers = false

	tags := textinput.New()
	tags.Placeholder = "Tags (comma separated)"
	tags.CharLimit = 200

	customExpiry := textinput.New()
	customExpiry.Placeholder = "YYYY-MM-DDTHH:MM"
	customExpiry.CharLimit = 16

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100

	return &EditorView{
		repo:         repo,
		styles:       s,
		keys:         keys.DefaultKeyMap(),
		title:        title,
		content:      content,
		tags:         tags,
		customExpiry: customExpiry,
		password:     password,
	}
}

// Opened reports whether a draft exists.
func (v *EditorView) Opened() bool { return v.mode != editorClosed }

// OpenForCreate starts an empty draft.
func (v *EditorView) OpenForCreate() tea.Cmd {
	v.mode = editorCreate
	v.editing = note.Note{}
	v.title.Reset()
	v.content.Reset()
	v.tags.Reset()
	v.color = note.DefaultColor
	v.expiryMode = note.ExpiryNever
	v.customExpiry.Reset()
	return v.reopen()
}

// OpenForEdit seeds the draft from a note snapshot. The expiry mode is
// reconstructed: no expiry reads as never, anything else as custom with
// the picker showing local wall-clock time.
func (v *EditorView) OpenForEdit(n note.Note) tea.Cmd {
	v.mode = editorEdit
	v.editing = n
	v.title.SetValue(n.Title)
	v.content.SetValue(n.Content)
	v.tags.SetValue(strings.Join(n.Tags, ", "))
	v.color = n.Color
	if v.color == "" {
		v.color = note.DefaultColor
	}
	if n.ExpiresAt != nil {
		v.expiryMode = note.ExpiryCustom
		v.customExpiry.SetValue(note.ToLocalInput(*n.ExpiresAt))
	} else {
		v.expiryMode = note.ExpiryNever
		v.customExpiry.Reset()
	}
	return v.reopen()
}

func (v *EditorView) reopen() tea.Cmd {
	v.focusIdx = fieldTitle
	v.warning = ""
	v.saving = false
	v.promptingPassword = false
	v.confirmingRemoval = false
	v.updateFocus()
	return textinput.Blink
}

// Close discards the draft.
func (v *EditorView) Close() {
	v.mode = editorClosed
	v.title.Blur()
	v.content.Blur()
	v.tags.Blur()
	v.customExpiry.Blur()
}

// SaveFailed keeps the draft editable after a failed persist.
func (v *EditorView) SaveFailed(err error) {
	v.saving = false
	v.warning = "Save failed: " + err.Error()
}

// SetSize propagates the window size.
func (v *EditorView) SetSize(width, height int) {
	v.width = width
	v.height = height
	contentWidth := styles.ContentWidth(width)
	v.content.SetWidth(clamp(contentWidth-10, 20, 50))
}

// Update handles key input while the editor is open.
func (v *EditorView) Update(msg tea.KeyMsg) tea.Cmd {
	if v.promptingPassword {
		return v.updatePasswordPrompt(msg)
	}
	if v.confirmingRemoval {
		return v.updateRemovalConfirm(msg)
	}

	switch {
	case key.Matches(msg, v.keys.Back):
		v.Close()
		return nil

	case key.Matches(msg, v.keys.Save):
		return v.save(note.KeepPassword())

	case key.Matches(msg, v.keys.Lock):
		if v.mode == editorEdit && v.editing.IsLocked {
			v.confirmingRemoval = true
		} else {
			v.promptingPassword = true
			v.promptErr = ""
			v.password.Reset()
			v.password.Focus()
			return textinput.Blink
		}
		return nil

	case key.Matches(msg, v.keys.Tab):
		v.cycleFocus(1)
		return nil

	case msg.String() == "shift+tab":
		v.cycleFocus(-1)
		return nil

	case key.Matches(msg, v.keys.Enter):
		switch v.focusIdx {
		case fieldTitle, fieldTags, fieldCustomExpiry:
			v.cycleFocus(1)
			return nil
		case fieldColor, fieldExpiry:
			v.cycleChoice(1)
			return nil
		case fieldSave:
			return v.save(note.KeepPassword())
		}
		// Enter in the content textarea inserts a newline below.

	case msg.String() == "left":
		if v.focusIdx == fieldColor || v.focusIdx == fieldExpiry {
			v.cycleChoice(-1)
			return nil
		}

	case msg.String() == "right":
		if v.focusIdx == fieldColor || v.focusIdx == fieldExpiry {
			v.cycleChoice(1)
			return nil
		}

	case msg.String() == " ":
		if v.focusIdx == fieldColor || v.focusIdx == fieldExpiry {
			v.cycleChoice(1)
			return nil
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case fieldTitle:
		v.title, cmd = v.title.Update(msg)
	case fieldContent:
		v.content, cmd = v.content.Update(msg)
	case fieldTags:
		v.tags, cmd = v.tags.Update(msg)
	case fieldCustomExpiry:
		v.customExpiry, cmd = v.customExpiry.Update(msg)
	}
	return cmd
}

// updatePasswordPrompt runs the set-password flow. Empty input re-prompts
// rather than saving an empty password.
func (v *EditorView) updatePasswordPrompt(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.promptingPassword = false
		v.password.Blur()
		return nil

	case key.Matches(msg, v.keys.Enter):
		pw := v.password.Value()
		if pw == "" {
			v.promptErr = "Please enter a password"
			return nil
		}
		v.promptingPassword = false
		v.password.Blur()
		return v.save(note.SetPassword(pw))
	}

	var cmd tea.Cmd
	v.password, cmd = v.password.Update(msg)
	return cmd
}

// updateRemovalConfirm runs the remove-password flow; the explicit clear
// is what tells the server to drop protection.
func (v *EditorView) updateRemovalConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		v.confirmingRemoval = false
		return v.save(note.ClearPassword())
	case "n", "N", "esc":
		v.confirmingRemoval = false
	}
	return nil
}

func (v *EditorView) cycleFocus(dir int) {
	for {
		v.focusIdx = (v.focusIdx + dir + fieldCount) % fieldCount
		if v.focusIdx == fieldCustomExpiry && v.expiryMode != note.ExpiryCustom {
			continue
		}
		break
	}
	v.updateFocus()
}

// cycleChoice steps the color palette or the expiry mode, whichever is
// focused. Entering custom mode with an empty picker seeds it an hour out.
func (v *EditorView) cycleChoice(dir int) {
	switch v.focusIdx {
	case fieldColor:
		idx := paletteIndex(v.color)
		v.color = note.Palette[(idx+dir+len(note.Palette))%len(note.Palette)]

	case fieldExpiry:
		idx := 0
		for i, m := range expiryModes {
			if m == v.expiryMode {
				idx = i
			}
		}
		v.expiryMode = expiryModes[(idx+dir+len(expiryModes))%len(expiryModes)]
		if v.expiryMode == note.ExpiryCustom && v.customExpiry.Value() == "" {
			v.customExpiry.SetValue(note.ToLocalInput(note.DefaultCustomExpiry(time.Now())))
		}
	}
}

func paletteIndex(color string) int {
	for i, c := range note.Palette {
		if c == color {
			return i
		}
	}
	return 0
}

func (v *EditorView) updateFocus() {
	v.title.Blur()
	v.content.Blur()
	v.tags.Blur()
	v.customExpiry.Blur()

	switch v.focusIdx {
	case fieldTitle:
		v.title.Focus()
	case fieldContent:
		v.content.Focus()
	case fieldTags:
		v.tags.Focus()
	case fieldCustomExpiry:
		v.customExpiry.Focus()
	}
}

// save resolves the draft into a payload and persists it. A custom expiry
// that is not in the future never reaches the network: the warning is
// shown inline and the draft stays as-is for correction.
func (v *EditorView) save(change note.PasswordChange) tea.Cmd {
	if v.saving {
		return nil
	}

	expiresAt, err := note.ResolveExpiry(v.expiryMode, strings.TrimSpace(v.customExpiry.Value()), time.Now())
	if err != nil {
		if errors.Is(err, note.ErrExpiryInPast) {
			v.warning = "The expiry time is in the past. Pick a future time."
		} else {
			v.warning = "Could not read the expiry time (use YYYY-MM-DDTHH:MM)."
		}
		return nil
	}

	p := note.Payload{
		Title:     v.title.Value(),
		Content:   v.content.Value(),
		Tags:      note.SplitTags(v.tags.Value()),
		Color:     v.color,
		ExpiresAt: expiresAt,
	}
	change.Apply(&p)

	mode, id := v.mode, v.editing.ID
	v.saving = true
	v.warning = ""

	return func() tea.Msg {
		var err error
		if mode == editorEdit {
			_, err = v.repo.Update(context.Background(), id, p)
		} else {
			_, err = v.repo.Create(context.Background(), p)
		}
		if err != nil {
			if errors.Is(err, api.ErrUnauthenticated) {
				return AuthLost{}
			}
			return errMsg{err: err}
		}
		return noteSavedMsg{}
	}
}

// View renders the editor modal or whichever lock sub-flow is on top.
func (v *EditorView) View() string {
	if v.promptingPassword {
		return v.renderPasswordPrompt()
	}
	if v.confirmingRemoval {
		return v.renderRemovalConfirm()
	}
	return v.renderForm()
}

func (v *EditorView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Note"
	if v.mode == editorEdit {
		formTitle = "Edit Note"
	}

	titleStyle := s.Input
	contentStyle := s.Input
	tagsStyle := s.Input
	colorStyle := s.Input
	expiryStyle := s.Input
	customStyle := s.Input
	btnStyle := s.Button

	switch v.focusIdx {
	case fieldTitle:
		titleStyle = s.InputFocused
	case fieldContent:
		contentStyle = s.InputFocused
	case fieldTags:
		tagsStyle = s.InputFocused
	case fieldColor:
		colorStyle = s.InputFocused
	case fieldExpiry:
		expiryStyle = s.InputFocused
	case fieldCustomExpiry:
		customStyle = s.InputFocused
	case fieldSave:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	saveLabel := " Save "
	if v.saving {
		saveLabel = " Saving… "
	}

	rows := []string{
		s.Title.Render(formTitle),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.title.View()),
		"",
		"Note:",
		contentStyle.Render(v.content.View()),
		"",
		"Tags:",
		tagsStyle.Width(inputWidth).Render(v.tags.View()),
		"",
		"Color:",
		colorStyle.Render(v.renderPalette()),
		"",
		"Expires:",
		expiryStyle.Render(v.expiryMode.String()),
	}

	if v.expiryMode == note.ExpiryCustom {
		rows = append(rows,
			"",
			"Expiry time (local):",
			customStyle.Width(20).Render(v.customExpiry.View()),
		)
	}

	rows = append(rows, "", btnStyle.Render(saveLabel))

	if v.warning != "" {
		rows = append(rows, "", s.WarningText.Render(v.warning))
	}

	lockHint := "ctrl+p: lock"
	if v.mode == editorEdit && v.editing.IsLocked {
		lockHint = "ctrl+p: remove lock"
	}
	rows = append(rows, "",
		s.TitleMuted.Render("Tab: next • ←/→: choose • Ctrl+S: save • "+lockHint+" • Esc: discard"),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *EditorView) renderPalette() string {
	var swatches []string
	for _, c := range note.Palette {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("●")
		if c == v.color {
			dot = "[" + dot + "]"
		} else {
			dot = " " + dot + " "
		}
		swatches = append(swatches, dot)
	}
	return strings.Join(swatches, "")
}

func (v *EditorView) renderPasswordPrompt() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	lines := []string{
		s.Title.Render("Lock Note"),
		"",
		s.InputFocused.Width(34).Render(v.password.View()),
	}
	if v.promptErr != "" {
		lines = append(lines, s.ErrorText.Render(v.promptErr))
	}
	lines = append(lines,
		"",
		s.TitleMuted.Render("↵: set password • Esc: cancel"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *EditorView) renderRemovalConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Remove password protection?"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
