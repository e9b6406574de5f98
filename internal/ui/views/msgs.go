package views

import (
	"context"

	"github.com/auranotes/aura/internal/note"
)

// Repo is the slice of the API client the views depend on.
type Repo interface {
	List(ctx context.Context, query string) ([]note.Note, error)
	Create(ctx context.Context, p note.Payload) (note.Note, error)
	Update(ctx context.Context, id string, p note.Payload) (note.Note, error)
	Delete(ctx context.Context, id string) error
	Unlock(ctx context.Context, id, password string) (note.Note, error)
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
}

// AuthLost signals that the server answered 401; the app switches to the
// login view and drops the stored session.
type AuthLost struct{}

// LoggedIn signals a successful login.
type LoggedIn struct{}

// LoggedOut signals an explicit logout.
type LoggedOut struct{}

// Internal messages produced by commands.
type notesLoadedMsg struct {
	notes []note.Note
}

type noteSavedMsg struct{}

type noteDeletedMsg struct{}

type unlockedMsg struct {
	note note.Note
}

type unlockFailedMsg struct{}

type searchTickMsg struct {
	seq int
}

type errMsg struct {
	err error
}
