// Package config reads process settings from EVENTDESK_ environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names.
const (
	BackendSandbox = "sandbox"
	BackendAPI     = "api"
)

// Config holds every setting the server needs.
type Config struct {
	Addr            string
	Env             string
	LogLevel        slog.Level
	Backend         string
	APIBaseURL      string
	APIToken        string
	ResendKey       string
	EmailFrom       string
	DemoStudentID   string
	SlowQuery       time.Duration
	SubmitDelay     time.Duration
	CSRFKey         []byte
	RateLimitPerMin int
	ShutdownTimeout time.Duration
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file, then the environment.
// A missing .env is not an error.
func Load(dotenvPaths ...string) (Config, error) {
	if len(dotenvPaths) == 0 {
		dotenvPaths = []string{".env"}
	}
	for _, p := range dotenvPaths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", p, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, which has the signature of os.LookupEnv.
// POST: Returns an error naming the first malformed or missing variable
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup("EVENTDESK_" + key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	c := Config{
		Addr:          get("ADDR", ":8080"),
		Env:           get("ENV", "development"),
		Backend:       get("BACKEND", BackendSandbox),
		APIBaseURL:    get("API_BASE_URL", ""),
		APIToken:      get("API_TOKEN", ""),
		ResendKey:     get("RESEND_KEY", ""),
		EmailFrom:     get("EMAIL_FROM", "Event Attendance <noreply@eventdesk.local>"),
		DemoStudentID: get("DEMO_STUDENT_ID", "2022M0000"),
		CSRFKey:       []byte(get("CSRF_KEY", "")),
	}

	var err error
	if err = c.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("EVENTDESK_LOG_LEVEL: %w", err)
	}
	if c.SlowQuery, err = duration(get("SLOW_QUERY", "50ms")); err != nil {
		return Config{}, fmt.Errorf("EVENTDESK_SLOW_QUERY: %w", err)
	}
	if c.SubmitDelay, err = duration(get("SUBMIT_DELAY", "1s")); err != nil {
		return Config{}, fmt.Errorf("EVENTDESK_SUBMIT_DELAY: %w", err)
	}
	if c.ShutdownTimeout, err = duration(get("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("EVENTDESK_SHUTDOWN_TIMEOUT: %w", err)
	}
	if c.RateLimitPerMin, err = strconv.Atoi(get("RATE_LIMIT", "120")); err != nil || c.RateLimitPerMin <= 0 {
		return Config{}, fmt.Errorf("EVENTDESK_RATE_LIMIT: must be a positive integer")
	}

	switch c.Backend {
	case BackendSandbox:
	case BackendAPI:
		if c.APIBaseURL == "" {
			return Config{}, errors.New("EVENTDESK_API_BASE_URL is required when EVENTDESK_BACKEND=api")
		}
	default:
		return Config{}, fmt.Errorf("EVENTDESK_BACKEND: unknown backend %q", c.Backend)
	}

	if len(c.CSRFKey) == 0 {
		if c.IsProduction() {
			return Config{}, errors.New("EVENTDESK_CSRF_KEY is required in production")
		}
		c.CSRFKey = []byte("eventdesk-development-csrf-key-0")
	}
	if len(c.CSRFKey) != 32 {
		return Config{}, errors.New("EVENTDESK_CSRF_KEY must be 32 bytes")
	}
	return c, nil
}

func duration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.New("must not be negative")
	}
	return d, nil
}
