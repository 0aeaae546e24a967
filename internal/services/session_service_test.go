package services

import (
	"testing"
	"time"

	"github.com/dancosta154/leadership-profile/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSessions(t *testing.T, password string, lifetime time.Duration) *SessionService {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	ss := NewSessionService(hash, lifetime, zap.NewNop())
	t.Cleanup(ss.Close)
	return ss
}

func TestSessionService_LoginLogout(t *testing.T) {
	ss := newTestSessions(t, "correct-horse", time.Hour)

	token, err := ss.Login("correct-horse", "127.0.0.1", "test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, ss.Validate(token))

	ss.Logout(token)
	assert.False(t, ss.Validate(token))

	// Logout is idempotent.
	ss.Logout(token)
	assert.False(t, ss.Validate(token))
}

func TestSessionService_InvalidPassword(t *testing.T) {
	ss := newTestSessions(t, "correct-horse", time.Hour)

	token, err := ss.Login("battery-staple", "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.Empty(t, token)

	token, err = ss.Login("", "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.Empty(t, token)
}

func TestSessionService_ValidateUnknownToken(t *testing.T) {
	ss := newTestSessions(t, "correct-horse", time.Hour)

	assert.False(t, ss.Validate(""))
	assert.False(t, ss.Validate("not-a-token"))
}

func TestSessionService_Expiry(t *testing.T) {
	ss := newTestSessions(t, "correct-horse", -time.Second)

	token, err := ss.Login("correct-horse", "127.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.False(t, ss.Validate(token))
}

func TestSessionService_IndependentSessions(t *testing.T) {
	ss := newTestSessions(t, "correct-horse", time.Hour)

	first, err := ss.Login("correct-horse", "127.0.0.1", "agent-a")
	require.NoError(t, err)
	second, err := ss.Login("correct-horse", "10.0.0.2", "agent-b")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	ss.Logout(first)
	assert.False(t, ss.Validate(first))
	assert.True(t, ss.Validate(second))
}
