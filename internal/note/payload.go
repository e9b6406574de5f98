package note

import (
	"strings"
	"time"
)

// Payload is what a save sends to the server. ExpiresAt nil explicitly
// clears any prior expiry. Password nil means protection is untouched;
// see PasswordChange for the three-way distinction.
type Payload struct {
	Title     string
	Content   string
	Tags      []string
	Color     string
	ExpiresAt *time.Time
	Password  *string
	IsLocked  *bool
}

// PasswordChange is the lock intent carried by a save: leave the note's
// protection alone, clear it, or set a new password. The three cases were
// historically null / empty string / non-empty string on the wire.
type PasswordChange struct {
	kind     passwordChangeKind
	password string
}

type passwordChangeKind int

const (
	passwordKeep passwordChangeKind = iota
	passwordClear
	passwordSet
)

// KeepPassword leaves protection unchanged.
func KeepPassword() PasswordChange { return PasswordChange{kind: passwordKeep} }

// ClearPassword removes protection from the note.
func ClearPassword() PasswordChange { return PasswordChange{kind: passwordClear} }

// SetPassword locks the note with the given password.
func SetPassword(password string) PasswordChange {
	return PasswordChange{kind: passwordSet, password: password}
}

// Apply stamps the lock intent onto a payload. Keep leaves both fields
// nil so the server does not touch protection at all.
func (c PasswordChange) Apply(p *Payload) {
	switch c.kind {
	case passwordClear:
		empty := ""
		unlocked := false
		p.Password = &empty
		p.IsLocked = &unlocked
	case passwordSet:
		pw := c.password
		locked := pw != ""
		p.Password = &pw
		p.IsLocked = &locked
	}
}

// SplitTags turns the editor's comma separated tag field into the tag
// list: trimmed, empties dropped, order preserved.
func SplitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
