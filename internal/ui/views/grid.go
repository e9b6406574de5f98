package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/auranotes/aura/internal/api"
	"github.com/auranotes/aura/internal/note"
	"github.com/auranotes/aura/internal/ui/keys"
	"github.com/auranotes/aura/internal/ui/styles"
)

// searchDebounce is the idle window before a search keystroke turns into
// a fetch.
const searchDebounce = 300 * time.Millisecond

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// GridView shows the note cards and routes gestures to the editor and the
// unlock challenge.
type GridView struct {
	repo   Repo
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	notes   []note.Note
	cursor  int
	scrollY int
	loaded  bool
	status  string

	// Search state. Each keystroke bumps seq and schedules a tick; only
	// the tick carrying the current seq fetches, so earlier keystrokes
	// are superseded and never reach the network.
	searchFocused bool
	searchInput   textinput.Model
	searchSeq     int

	confirmingDelete bool
	deleteTargetID   string

	editor *EditorView
	unlock *UnlockView
}

// NewGridView creates the grid and its modal components.
func NewGridView(repo Repo) *GridView {
	s := styles.NewStyles()

	search := textinput.New()
	search.Placeholder = "Search notes..."
	search.CharLimit = 100

	return &GridView{
		repo:        repo,
		styles:      s,
		keys:        keys.DefaultKeyMap(),
		searchInput: search,
		editor:      NewEditorView(repo, s),
		unlock:      NewUnlockView(repo, s),
	}
}

// Init triggers the initial fetch.
func (v *GridView) Init() tea.Cmd {
	return v.loadNotes
}

// loadNotes fetches the grid with the current query. Empty query means
// no filter.
func (v *GridView) loadNotes() tea.Msg {
	query := strings.TrimSpace(v.searchInput.Value())
	notes, err := v.repo.List(context.Background(), query)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return AuthLost{}
		}
		return errMsg{err: err}
	}
	return notesLoadedMsg{notes: notes}
}

// Update handles messages
func (v *GridView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.editor.SetSize(msg.Width, msg.Height)
		return v, nil

	case notesLoadedMsg:
		v.notes = msg.notes
		v.loaded = true
		v.status = ""
		if v.cursor >= len(v.notes) {
			v.cursor = max(0, len(v.notes)-1)
		}
		return v, nil

	case noteSavedMsg:
		// The refresh goes out only after the save resolved, so the grid
		// never races a just-completed edit.
		v.editor.Close()
		return v, v.loadNotes

	case noteDeletedMsg:
		return v, v.loadNotes

	case unlockedMsg:
		v.unlock.Close()
		return v, v.editor.OpenForEdit(msg.note)

	case unlockFailedMsg:
		v.unlock.Fail()
		return v, nil

	case errMsg:
		if v.editor.Opened() {
			v.editor.SaveFailed(msg.err)
			return v, nil
		}
		if v.unlock.Opened() {
			v.unlock.submitting = false
		}
		v.status = msg.err.Error()
		return v, nil

	case searchTickMsg:
		if msg.seq == v.searchSeq {
			return v, v.loadNotes
		}
		return v, nil

	case tea.KeyMsg:
		if v.editor.Opened() {
			return v, v.editor.Update(msg)
		}
		if v.unlock.Opened() {
			return v, v.unlock.Update(msg)
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.searchFocused {
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *GridView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.searchInput.Blur()
		v.searchFocused = false
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		v.searchInput.Blur()
		v.searchFocused = false
		v.searchSeq++ // supersede any pending tick
		return v, v.loadNotes
	}

	before := v.searchInput.Value()
	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	if v.searchInput.Value() == before {
		return v, cmd
	}

	v.searchSeq++
	seq := v.searchSeq
	return v, tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	}))
}

func (v *GridView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.notes)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		// A locked card only ever opens through the challenge.
		if len(v.notes) > 0 {
			n := v.notes[v.cursor]
			if n.IsLocked {
				return v, v.unlock.Open(n.ID)
			}
			return v, v.editor.OpenForEdit(n)
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		return v, v.editor.OpenForCreate()

	case key.Matches(msg, v.keys.Delete):
		if len(v.notes) > 0 {
			v.confirmingDelete = true
			v.deleteTargetID = v.notes[v.cursor].ID
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.searchFocused = true
		v.searchInput.Focus()
		return v, textinput.Blink

	case msg.String() == "r":
		return v, v.loadNotes

	case key.Matches(msg, v.keys.Logout):
		return v, v.logout
	}

	return v, nil
}

func (v *GridView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		return v, v.deleteNote(v.deleteTargetID)
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

// deleteNote removes a note and refreshes regardless of the outcome,
// except for a lost session.
func (v *GridView) deleteNote(id string) tea.Cmd {
	return func() tea.Msg {
		if err := v.repo.Delete(context.Background(), id); err != nil {
			if errors.Is(err, api.ErrUnauthenticated) {
				return AuthLost{}
			}
		}
		return noteDeletedMsg{}
	}
}

func (v *GridView) logout() tea.Msg {
	_ = v.repo.Logout(context.Background())
	return LoggedOut{}
}

func (v *GridView) ensureVisible() {
	visibleItems := v.visibleCards()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

// visibleCards estimates how many cards fit; each card is four content
// lines plus its border.
func (v *GridView) visibleCards() int {
	availableHeight := v.height - 8
	if availableHeight < 6 {
		availableHeight = 6
	}
	items := availableHeight / 6
	if items < 1 {
		items = 1
	}
	return items
}

// View renders the view
func (v *GridView) View() string {
	if v.editor.Opened() {
		return v.editor.View()
	}
	if v.unlock.Opened() {
		return v.unlock.View(v.width, v.height)
	}
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderCards())
	b.WriteString("\n")
	if v.status != "" {
		b.WriteString(v.styles.ErrorText.Render(v.status))
		b.WriteString("\n")
	}
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *GridView) renderHeader() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	searchStyle := s.Input
	if v.searchFocused {
		searchStyle = s.InputFocused
	}
	searchWidth := clamp(contentWidth-20, 14, 40)
	searchBox := searchStyle.Width(searchWidth).Render(v.searchInput.View())

	title := s.Title.Render("Aura Notes")

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", searchBox)
}

func (v *GridView) renderCards() string {
	s := v.styles

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}
	if len(v.notes) == 0 {
		return s.TitleMuted.Render("No notes. Press 'n' to create one.")
	}

	visibleItems := v.visibleCards()
	endIdx := min(v.scrollY+visibleItems, len(v.notes))

	var cards []string
	for i := v.scrollY; i < endIdx; i++ {
		cards = append(cards, v.renderCard(v.notes[i], i == v.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// renderCard draws one annotated note card. Locked notes are fully
// opaque: neither title nor content is shown until an unlock succeeds.
func (v *GridView) renderCard(n note.Note, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-6, 24)

	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color)).Render("█")

	var titleLine, preview string
	if n.IsLocked {
		titleLine = swatch + " " + s.CardLocked.Render("🔒 Locked note")
		preview = s.CardLocked.Render("Unlock to view this note.")
	} else {
		titleLine = swatch + " " + s.CardTitle.Render(n.DisplayTitle())
		preview = truncate(strings.Join(strings.Fields(n.Content), " "), width-2)
		if preview == "" {
			preview = s.TitleMuted.Render("Empty note")
		}
	}

	now := time.Now()

	var badges []string
	for _, tag := range n.Tags {
		badges = append(badges, s.TagBadge.Render("#"+tag))
	}
	if remaining := note.TimeRemaining(n.ExpiresAt, now); remaining != "" {
		style := s.ExpiryBadge
		if remaining == "Expired" {
			style = s.Expired
		}
		badges = append(badges, style.Render("⏱ "+remaining))
	}
	badgeLine := strings.Join(badges, " ")
	if badgeLine == "" {
		badgeLine = s.TitleMuted.Render("no tags")
	}

	score := note.HealthScore(n, now)
	tier := note.HealthTier(score)
	health := s.TitleMuted.Render("Health ") +
		s.HealthStyle(tier).Render(strconv.Itoa(score)+"% "+tier)
	footer := s.TitleMuted.Render(note.RelativeDate(n.CreatedAt, now)) + "  " + health

	cardStyle := s.Card
	if selected {
		cardStyle = s.CardSelected
	}

	body := lipgloss.JoinVertical(lipgloss.Left, titleLine, preview, badgeLine, footer)
	return cardStyle.Width(width).Render(body)
}

func truncate(text string, width int) string {
	if width < 4 {
		width = 4
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width-1]) + "…"
}

func (v *GridView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Note?"),
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

func (v *GridView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s open • %s new • %s del • %s search • %s refresh • %s logout • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("r"),
			v.styles.HelpKey.Render("ctrl+l"),
			v.styles.HelpKey.Render("q"),
		),
	)
}
