package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/auranotes/aura/internal/api"
	"github.com/auranotes/aura/internal/note"
)

type updateCall struct {
	id      string
	payload note.Payload
}

// fakeRepo records every call so tests can assert on what reached the
// network and, just as importantly, what never did.
type fakeRepo struct {
	notes   []note.Note
	listErr error

	listQueries []string
	created     []note.Payload
	updates     []updateCall
	deleted     []string

	unlockPassword string
	unlocked       note.Note

	loginErr error
	logouts  int
}

func (f *fakeRepo) List(_ context.Context, query string) ([]note.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.listQueries = append(f.listQueries, query)
	return f.notes, nil
}

func (f *fakeRepo) Create(_ context.Context, p note.Payload) (note.Note, error) {
	f.created = append(f.created, p)
	return note.Note{ID: "new"}, nil
}

func (f *fakeRepo) Update(_ context.Context, id string, p note.Payload) (note.Note, error) {
	f.updates = append(f.updates, updateCall{id: id, payload: p})
	return note.Note{ID: id}, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) Unlock(_ context.Context, id, password string) (note.Note, error) {
	if password != f.unlockPassword {
		return note.Note{}, api.ErrInvalidPassword
	}
	return f.unlocked, nil
}

func (f *fakeRepo) Login(context.Context, string, string) error { return f.loginErr }

func (f *fakeRepo) Logout(context.Context) error {
	f.logouts++
	return nil
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
