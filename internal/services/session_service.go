package services

import (
	"sync"
	"time"

	"github.com/dancosta154/leadership-profile/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService issues opaque admin session tokens after a password
// check and validates them on every admin request. Sessions live in
// memory; a background sweep evicts expired ones.
type SessionService struct {
	passwordHash string
	lifetime     time.Duration
	logger       *zap.Logger

	mu       sync.RWMutex
	sessions map[string]sessionData

	stopChan chan struct{}
	stopOnce sync.Once
}

type sessionData struct {
	ExpiresAt time.Time
	IPAddress string
	UserAgent string
}

func NewSessionService(passwordHash string, lifetime time.Duration, logger *zap.Logger) *SessionService {
	ss := &SessionService{
		passwordHash: passwordHash,
		lifetime:     lifetime,
		logger:       logger.With(zap.String("service", "session")),
		sessions:     make(map[string]sessionData),
		stopChan:     make(chan struct{}),
	}

	go ss.startBackgroundCleanup()

	return ss
}

func (ss *SessionService) startBackgroundCleanup() {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ss.stopChan:
			return
		case <-ticker.C:
			ss.cleanupExpiredSessions()
		}
	}
}

func (ss *SessionService) cleanupExpiredSessions() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	now := time.Now()
	for token, session := range ss.sessions {
		if now.After(session.ExpiresAt) {
			delete(ss.sessions, token)
		}
	}
}

// Login compares the supplied password against the configured bcrypt
// hash and issues a session token on success. Failures report nothing
// beyond ErrInvalidPassword.
func (ss *SessionService) Login(password, ipAddress, userAgent string) (string, error) {
	if !utils.VerifyPassword(ss.passwordHash, password) {
		ss.logger.Warn("Invalid admin password attempt", zap.String("ip", ipAddress))
		return "", ErrInvalidPassword
	}

	token := uuid.New().String()

	ss.mu.Lock()
	ss.sessions[token] = sessionData{
		ExpiresAt: time.Now().Add(ss.lifetime),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	ss.mu.Unlock()

	ss.logger.Info("Admin logged in", zap.String("ip", ipAddress))
	return token, nil
}

// Validate reports whether the token belongs to a live admin session.
func (ss *SessionService) Validate(token string) bool {
	if token == "" {
		return false
	}

	ss.mu.RLock()
	session, exists := ss.sessions[token]
	ss.mu.RUnlock()

	return exists && time.Now().Before(session.ExpiresAt)
}

// Logout drops the session. Unknown or already-dropped tokens are not
// an error.
func (ss *SessionService) Logout(token string) {
	ss.mu.Lock()
	delete(ss.sessions, token)
	ss.mu.Unlock()
}

// Close stops the cleanup goroutine.
func (ss *SessionService) Close() {
	ss.stopOnce.Do(func() {
		close(ss.stopChan)
	})
}
