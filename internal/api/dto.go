package api

import (
	"time"

	"github.com/pkg/errors"

	"github.com/auranotes/aura/internal/note"
)

// Wire representation of a note. The API speaks snake_case; the mapping
// to the internal model lives entirely in this file.
type noteDTO struct {
	ID        string   `json:"_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Color     string   `json:"color"`
	IsLocked  bool     `json:"is_locked"`
	ExpiresAt *string  `json:"expires_at"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type payloadDTO struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Color     string   `json:"color"`
	ExpiresAt *string  `json:"expires_at"`
	Password  *string  `json:"password,omitempty"`
	IsLocked  *bool    `json:"is_locked,omitempty"`
}

// The server stores timestamps as ISO strings; sqlite defaults use a
// space separator instead of 'T', so both shapes are accepted.
var wireTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

func parseWireTime(s string) (time.Time, error) {
	for _, layout := range wireTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized timestamp %q", s)
}

func (d noteDTO) toModel() (note.Note, error) {
	n := note.Note{
		ID:       d.ID,
		Title:    d.Title,
		Content:  d.Content,
		Tags:     d.Tags,
		Color:    d.Color,
		IsLocked: d.IsLocked,
	}
	if n.Color == "" {
		n.Color = note.DefaultColor
	}

	if d.ExpiresAt != nil && *d.ExpiresAt != "" {
		t, err := parseWireTime(*d.ExpiresAt)
		if err != nil {
			return note.Note{}, errors.Wrap(err, "expires_at")
		}
		n.ExpiresAt = &t
	}

	var err error
	if n.CreatedAt, err = parseWireTime(d.CreatedAt); err != nil {
		return note.Note{}, errors.Wrap(err, "created_at")
	}
	if n.UpdatedAt, err = parseWireTime(d.UpdatedAt); err != nil {
		return note.Note{}, errors.Wrap(err, "updated_at")
	}
	return n, nil
}

func toPayloadDTO(p note.Payload) payloadDTO {
	d := payloadDTO{
		Title:    p.Title,
		Content:  p.Content,
		Tags:     p.Tags,
		Color:    p.Color,
		Password: p.Password,
		IsLocked: p.IsLocked,
	}
	// The server distinguishes "clear expiry" (explicit null) from an
	// absent field, so tags and expires_at are always serialized.
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if p.ExpiresAt != nil {
		s := p.ExpiresAt.UTC().Format(time.RFC3339)
		d.ExpiresAt = &s
	}
	return d
}
