package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dancosta154/leadership-profile/internal/utils"
	"go.uber.org/zap"
)

type Configuration struct {
	Server   ServerConfig
	Database DatabaseConfig
	Upload   UploadConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	// URL selects the engine: empty means the local SQLite file,
	// postgres://... or postgresql://... means PostgreSQL.
	URL             string
	SQLitePath      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type UploadConfig struct {
	Folder            string
	MaxBytes          int64
	AllowedExtensions map[string]bool
}

type SecurityConfig struct {
	AdminPasswordHash string
	SessionLifetime   time.Duration
	CookieMaxAge      int
}

type LoggingConfig struct {
	Level string
}

const defaultAdminPassword = "admin123"

// Load builds the configuration from the environment, falling back to
// development defaults for anything unset.
func Load() (*Configuration, error) {
	cfg := &Configuration{
		Server: ServerConfig{
			Port:         envOr("PORT", "5001"),
			ReadTimeout:  envDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout: envDuration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  envDuration("IDLE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			SQLitePath:      envOr("SQLITE_PATH", "instance/portfolio.db"),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: envDuration("DB_CONN_MAX_LIFETIME", 300*time.Second),
		},
		Upload: UploadConfig{
			Folder:   envOr("UPLOAD_FOLDER", "static/uploads"),
			MaxBytes: envInt64("MAX_CONTENT_LENGTH", 16*1024*1024),
			AllowedExtensions: map[string]bool{
				"pdf": true, "doc": true, "docx": true,
				"txt": true, "png": true, "jpg": true, "jpeg": true,
			},
		},
		Security: SecurityConfig{
			SessionLifetime: envDuration("SESSION_LIFETIME", 24*time.Hour),
			CookieMaxAge:    envInt("SESSION_COOKIE_MAX_AGE", 3600),
		},
		Logging: LoggingConfig{
			Level: envOr("LOG_LEVEL", "info"),
		},
	}

	// Some platforms hand out postgres:// URLs; gorm's driver wants
	// postgresql://.
	if strings.HasPrefix(cfg.Database.URL, "postgres://") {
		cfg.Database.URL = "postgresql://" + strings.TrimPrefix(cfg.Database.URL, "postgres://")
	}

	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		cfg.Security.AdminPasswordHash = hash
	} else {
		hash, err := utils.HashPassword(envOr("ADMIN_PASSWORD", defaultAdminPassword))
		if err != nil {
			return nil, err
		}
		cfg.Security.AdminPasswordHash = hash
	}

	return cfg, nil
}

// LogConfig dumps the effective configuration with secrets redacted.
func (cfg *Configuration) LogConfig(logger *zap.Logger) {
	database := "sqlite:" + cfg.Database.SQLitePath
	if cfg.Database.URL != "" {
		database = "postgresql"
	}

	logger.Info("Application configuration",
		zap.String("port", cfg.Server.Port),
		zap.Duration("read_timeout", cfg.Server.ReadTimeout),
		zap.Duration("write_timeout", cfg.Server.WriteTimeout),
		zap.String("database", database),
		zap.String("upload_folder", cfg.Upload.Folder),
		zap.Int64("max_upload_bytes", cfg.Upload.MaxBytes),
		zap.Duration("session_lifetime", cfg.Security.SessionLifetime),
		zap.String("log_level", cfg.Logging.Level),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
