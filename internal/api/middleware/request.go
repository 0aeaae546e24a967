package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type IPAttemptTracker struct {
	attempts     map[string]*IPAttemptInfo
	mu           sync.RWMutex
	cleanupEvery time.Duration
	window       time.Duration
	maxAttempts  int
}

type IPAttemptInfo struct {
	Count       int
	LastAttempt time.Time
	Blocked     bool
}

func NewIPAttemptTracker() *IPAttemptTracker {
	tracker := &IPAttemptTracker{
		attempts:     make(map[string]*IPAttemptInfo),
		cleanupEvery: 5 * time.Minute,
		window:       30 * time.Second,
		maxAttempts:  5,
	}

	go tracker.startCleanup()

	return tracker
}

func (t *IPAttemptTracker) startCleanup() {
	ticker := time.NewTicker(t.cleanupEvery)
	defer ticker.Stop()

	for range ticker.C {
		t.cleanOldEntries()
	}
}

func (t *IPAttemptTracker) cleanOldEntries() {
	t.mu.Lock()
	defer t.mu.Unlock()

	expiry := time.Now().Add(-t.window)
	for ip, info := range t.attempts {
		if info.LastAttempt.Before(expiry) {
			delete(t.attempts, ip)
		}
	}
}

func (t *IPAttemptTracker) RecordAttempt(ip string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	info, exists := t.attempts[ip]
	if !exists {
		info = &IPAttemptInfo{}
		t.attempts[ip] = info
	}

	info.Count++
	info.LastAttempt = time.Now()

	if info.Count > t.maxAttempts {
		info.Blocked = true
	}
}

func (t *IPAttemptTracker) IsBlocked(ip string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	info, exists := t.attempts[ip]
	return exists && info.Blocked
}

type RequestMiddleware struct {
	logger         *zap.Logger
	attemptTracker *IPAttemptTracker
}

func NewRequestMiddleware(logger *zap.Logger) *RequestMiddleware {
	return &RequestMiddleware{
		logger:         logger,
		attemptTracker: NewIPAttemptTracker(),
	}
}

// ProcessRequest tags each request with an id and logs it on the way
// in and out.
func (rm *RequestMiddleware) ProcessRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("requestID", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		rm.logger.Info("Request started",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()))
		c.Next()
		rm.logger.Info("Request completed",
			zap.String("request_id", requestID),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.Int("size", c.Writer.Size()))
	}
}

// LoginAttemptMiddleware throttles repeated admin login posts per
// client IP.
func (rm *RequestMiddleware) LoginAttemptMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost && c.FullPath() == "/admin/login" {
			clientIP := c.ClientIP()
			if rm.attemptTracker.IsBlocked(clientIP) {
				rm.logger.Warn("Blocking login attempt",
					zap.String("client_ip", clientIP))
				c.AbortWithStatus(http.StatusTooManyRequests)
				return
			}
			rm.attemptTracker.RecordAttempt(clientIP)
		}
		c.Next()
	}
}

func (rm *RequestMiddleware) RecoverPanic() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				rm.logger.Error("Panic recovered",
					zap.String("request_id", c.GetString("requestID")),
					zap.Any("error", err),
					zap.Stack("stack"))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
