package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auranotes/aura/internal/note"
	"github.com/auranotes/aura/internal/ui/styles"
)

func TestEditorRejectsPastExpiry(t *testing.T) {
	repo := &fakeRepo{}
	v := NewEditorView(repo, styles.NewStyles())
	v.OpenForCreate()
	v.title.SetValue("Draft")
	v.expiryMode = note.ExpiryCustom
	v.customExpiry.SetValue(note.ToLocalInput(time.Now().Add(-24 * time.Hour)))

	cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.NotEmpty(t, v.warning)

	// Nothing reached the network and the draft stays up for correction.
	assert.Empty(t, repo.created)
	assert.Empty(t, repo.updates)
	assert.True(t, v.Opened())
	assert.Equal(t, "Draft", v.title.Value())
}

func TestEditorSaveKeepsProtectionUntouched(t *testing.T) {
	repo := &fakeRepo{}
	v := NewEditorView(repo, styles.NewStyles())
	v.OpenForEdit(note.Note{ID: "n1", Title: "Plans"})
	v.tags.SetValue("work, urgent")

	cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, noteSavedMsg{}, msg)

	require.Len(t, repo.updates, 1)
	p := repo.updates[0].payload
	assert.Nil(t, p.Password)
	assert.Nil(t, p.IsLocked)
	assert.Equal(t, []string{"work", "urgent"}, p.Tags)
}

func TestEditorSetPassword(t *testing.T) {
	repo := &fakeRepo{}
	v := NewEditorView(repo, styles.NewStyles())
	v.OpenForCreate()
	v.title.SetValue("Diary")

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.True(t, v.promptingPassword)

	// Empty input re-prompts instead of locking with an empty password.
	cmd := v.Update(keyEnter())
	assert.Nil(t, cmd)
	assert.Equal(t, "Please enter a password", v.promptErr)
	assert.True(t, v.promptingPassword)

	for _, r := range "hunter2" {
		v.Update(keyRune(r))
	}
	cmd = v.Update(keyEnter())
	require.NotNil(t, cmd)
	cmd()

	require.Len(t, repo.created, 1)
	p := repo.created[0]
	require.NotNil(t, p.Password)
	require.NotNil(t, p.IsLocked)
	assert.Equal(t, "hunter2", *p.Password)
	assert.True(t, *p.IsLocked)
}

func TestEditorRemovePassword(t *testing.T) {
	repo := &fakeRepo{}
	v := NewEditorView(repo, styles.NewStyles())
	v.OpenForEdit(note.Note{ID: "n1", Title: "Diary", IsLocked: true})

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.True(t, v.confirmingRemoval)

	cmd := v.Update(keyRune('y'))
	require.NotNil(t, cmd)
	cmd()

	require.Len(t, repo.updates, 1)
	call := repo.updates[0]
	assert.Equal(t, "n1", call.id)
	require.NotNil(t, call.payload.Password)
	require.NotNil(t, call.payload.IsLocked)
	assert.Equal(t, "", *call.payload.Password)
	assert.False(t, *call.payload.IsLocked)
}

func TestEditorSeedsCustomExpiryPicker(t *testing.T) {
	v := NewEditorView(&fakeRepo{}, styles.NewStyles())
	v.OpenForCreate()
	v.focusIdx = fieldExpiry

	v.cycleChoice(-1) // never wraps back to custom
	assert.Equal(t, note.ExpiryCustom, v.expiryMode)
	assert.NotEmpty(t, v.customExpiry.Value())
}

func TestEditorSeedsDraftFromSnapshot(t *testing.T) {
	at := time.Date(2026, 9, 2, 18, 30, 0, 0, time.Local)
	n := note.Note{
		ID:        "n1",
		Title:     "Plans",
		Content:   "body",
		Tags:      []string{"work", "urgent"},
		Color:     "#a7f3d0",
		ExpiresAt: &at,
	}
	v := NewEditorView(&fakeRepo{}, styles.NewStyles())
	v.OpenForEdit(n)

	assert.Equal(t, "Plans", v.title.Value())
	assert.Equal(t, "body", v.content.Value())
	assert.Equal(t, "work, urgent", v.tags.Value())
	assert.Equal(t, "#a7f3d0", v.color)
	assert.Equal(t, note.ExpiryCustom, v.expiryMode)
	assert.Equal(t, "2026-09-02T18:30", v.customExpiry.Value())
}
