package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auranotes/aura/internal/api"
)

func TestLoginRetryAfterBadCredentials(t *testing.T) {
	repo := &fakeRepo{loginErr: api.ErrInvalidCredentials}
	v := NewLoginView(repo)

	for _, r := range "user" {
		v.Update(keyRune(r))
	}
	v.Update(keyEnter()) // advance to password
	for _, r := range "pw" {
		v.Update(keyRune(r))
	}
	v.Update(keyEnter()) // advance to button

	_, cmd := v.Update(keyEnter())
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, loginFailedMsg{}, msg)

	v.Update(msg)
	assert.Equal(t, "Invalid username or password", v.errText)
	assert.Empty(t, v.password.Value())
	assert.False(t, v.submitting)

	// The form stays live for another attempt.
	repo.loginErr = nil
	_, cmd = v.Update(keyEnter())
	require.NotNil(t, cmd)
	assert.IsType(t, LoggedIn{}, cmd())
}

func TestLoginRequiresUsername(t *testing.T) {
	v := NewLoginView(&fakeRepo{})
	v.focusIdx = 2

	_, cmd := v.Update(keyEnter())
	assert.Nil(t, cmd)
}
