package note

import "time"

// DefaultColor is used when the server sends no color for a note.
const DefaultColor = "#ffffff"

// Palette holds the card colors offered by the editor
var Palette = []string{
	"#ffffff",
	"#f28b82",
	"#fbbc04",
	"#fff475",
	"#ccff90",
	"#a7ffeb",
	"#cbf0f8",
	"#d7aefb",
}

// Note is the client-side snapshot of a server-owned note.
type Note struct {
	ID        string
	Title     string
	Content   string
	Tags      []string
	Color     string
	IsLocked  bool
	ExpiresAt *time.Time // nil means the note never expires
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayTitle returns the title shown on a card
func (n Note) DisplayTitle() string {
	if n.Title == "" {
		return "Untitled"
	}
	return n.Title
}
