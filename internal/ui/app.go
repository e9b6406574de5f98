package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/auranotes/aura/internal/api"
	"github.com/auranotes/aura/internal/store"
	"github.com/auranotes/aura/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewLogin View = iota
	ViewGrid
)

type App struct {
	client      *api.Client
	store       *store.Store
	log         zerolog.Logger
	currentView View
	login       *views.LoginView
	grid        *views.GridView
	width       int
	height      int
}

// Creates a new application
func NewApp(client *api.Client, st *store.Store, log zerolog.Logger) *App {
	a := &App{
		client: client,
		store:  st,
		log:    log,
		login:  views.NewLoginView(client),
		grid:   views.NewGridView(client),
	}
	// A stored session skips straight to the grid; a stale one comes
	// back here via the 401 sentinel.
	if client.Session() != "" {
		a.currentView = ViewGrid
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.currentView == ViewGrid {
		return a.grid.Init()
	}
	return a.login.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.Update(msg)
		a.grid.Update(msg)

	case views.LoggedIn:
		if err := a.store.Set(store.KeySession, a.client.Session()); err != nil {
			a.log.Warn().Err(err).Msg("persist session")
		}
		a.currentView = ViewGrid
		a.grid = views.NewGridView(a.client)
		return a, tea.Batch(
			a.grid.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)

	case views.AuthLost:
		a.toLogin("Session expired. Please sign in again.")
		return a, tea.Batch(
			a.login.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)

	case views.LoggedOut:
		a.toLogin("")
		return a, tea.Batch(
			a.login.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewLogin:
		_, cmd = a.login.Update(msg)
	case ViewGrid:
		_, cmd = a.grid.Update(msg)
	}

	return a, cmd
}

// toLogin drops the session and returns to the login boundary.
func (a *App) toLogin(notice string) {
	a.client.SetSession("")
	if err := a.store.Delete(store.KeySession); err != nil {
		a.log.Warn().Err(err).Msg("clear session")
	}
	a.currentView = ViewLogin
	a.login = views.NewLoginView(a.client)
	if notice != "" {
		a.login.SetNotice(notice)
	}
}

func (a *App) View() string {
	switch a.currentView {
	case ViewGrid:
		return a.grid.View()
	}
	return a.login.View()
}
