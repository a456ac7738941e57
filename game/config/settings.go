package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
)

// Settings holds process-level options read from the environment. Command
// line flags override them.
type Settings struct {
	Host          string        `env:"SOLITARIO_HOST,default=localhost"`
	Port          int           `env:"SOLITARIO_PORT,default=8080"`
	ConfigDir     string        `env:"SOLITARIO_CONFIG_DIR,default=configs"`
	DefaultConfig string        `env:"SOLITARIO_DEFAULT_CONFIG,default=classic"`
	LogLevel      string        `env:"SOLITARIO_LOG_LEVEL,default=info"`
	SessionTTL    time.Duration `env:"SOLITARIO_SESSION_TTL,default=24h"`
	CleanupEvery  time.Duration `env:"SOLITARIO_CLEANUP_INTERVAL,default=10m"`
	CORSOrigins   []string      `env:"SOLITARIO_CORS_ORIGINS,default=*"`

	NgrokEnabled   bool   `env:"NGROK_ENABLED,default=false"`
	NgrokAuthToken string `env:"NGROK_AUTHTOKEN"`
	NgrokDomain    string `env:"NGROK_DOMAIN"`
}

// LoadSettings decodes Settings from the environment
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := envdecode.Decode(&s); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to read settings from environment: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks ranges that envdecode cannot express
func (s *Settings) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("settings: port %d out of range", s.Port)
	}
	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		return err
	}
	if s.SessionTTL <= 0 {
		return fmt.Errorf("settings: session TTL must be positive, got %s", s.SessionTTL)
	}
	if s.CleanupEvery <= 0 {
		return fmt.Errorf("settings: cleanup interval must be positive, got %s", s.CleanupEvery)
	}
	if s.NgrokEnabled && s.NgrokAuthToken == "" {
		return fmt.Errorf("settings: NGROK_AUTHTOKEN is required when ngrok is enabled")
	}
	return nil
}

// Addr returns the listen address
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ParseLogLevel maps debug, info, warn and error to slog levels
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("settings: unknown log level %q", level)
}
