package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	BackendAddress      string
	BackendClientID     string
	BackendClientSecret string
	DatabaseURI         string
	SessionSecret       string
	SessionMaxAge       time.Duration
	SecureCookies       bool
	RequestTimeout      time.Duration
	ShutdownTimeout     time.Duration
	DraftTTL            time.Duration
	JanitorInterval     time.Duration
	NoticeDuration      time.Duration
	HistoryLimit        int
	Timezone            string
	Location            *time.Location
	LogLevel            slog.Level
}

const (
	defaultRunAddress      = ":8080"
	defaultClientID        = "string"
	defaultSessionSecret   = "change-me-in-production"
	defaultSessionMaxAge   = 7 * 24 * time.Hour
	defaultRequestTimeout  = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultDraftTTL        = 2 * time.Hour
	defaultJanitorInterval = time.Minute
	defaultNoticeDuration  = 3 * time.Second
	defaultHistoryLimit    = 50
	defaultTimezone        = "Asia/Hong_Kong"
	defaultEnvFile         = ".env"
)

// Load parses configuration from flags, environment variables and an optional .env file.
// Real environment variables win over the file.
func Load() (*Config, error) {
	path := defaultEnvFile
	if v, ok := os.LookupEnv("ENV_FILE"); ok && v != "" {
		path = v
	}
	return load(os.Args[1:], withDotEnv(os.LookupEnv, path))
}

type envLookup func(string) (string, bool)

// withDotEnv layers values read from a dotenv file under lookup. A missing file is ignored.
func withDotEnv(lookup envLookup, path string) envLookup {
	values, err := godotenv.Read(path)
	if err != nil {
		return lookup
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		BackendAddress:      getString(lookup, "BACKEND_ADDRESS", ""),
		BackendClientID:     getString(lookup, "BACKEND_CLIENT_ID", defaultClientID),
		BackendClientSecret: getString(lookup, "BACKEND_CLIENT_SECRET", defaultClientID),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		SessionSecret:       getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionMaxAge:       getDuration(lookup, "SESSION_MAX_AGE", defaultSessionMaxAge),
		SecureCookies:       getBool(lookup, "SECURE_COOKIES", false),
		RequestTimeout:      getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		DraftTTL:            getDuration(lookup, "DRAFT_TTL", defaultDraftTTL),
		JanitorInterval:     getDuration(lookup, "JANITOR_INTERVAL", defaultJanitorInterval),
		NoticeDuration:      getDuration(lookup, "NOTICE_DURATION", defaultNoticeDuration),
		HistoryLimit:        getInt(lookup, "HISTORY_LIMIT", defaultHistoryLimit),
		Timezone:            getString(lookup, "TIMEZONE", defaultTimezone),
	}
	logLevel := getString(lookup, "LOG_LEVEL", "info")

	fs := flag.NewFlagSet("orderdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	durations := []struct {
		flag  string
		usage string
		dst   *time.Duration
		raw   string
	}{
		{"request-timeout", "Timeout of backend requests", &cfg.RequestTimeout, ""},
		{"shutdown-timeout", "Graceful shutdown timeout", &cfg.ShutdownTimeout, ""},
		{"draft-ttl", "Idle time after which a draft is discarded", &cfg.DraftTTL, ""},
		{"janitor-interval", "Interval between idle draft sweeps", &cfg.JanitorInterval, ""},
		{"notice-duration", "How long success and error notices stay visible", &cfg.NoticeDuration, ""},
		{"session-max-age", "Session cookie lifetime", &cfg.SessionMaxAge, ""},
	}
	for i := range durations {
		durations[i].raw = durations[i].dst.String()
		fs.StringVar(&durations[i].raw, durations[i].flag, durations[i].raw, durations[i].usage)
	}

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.BackendAddress, "b", cfg.BackendAddress, "REST backend base URL")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN for the submission ledger")
	fs.StringVar(&cfg.BackendClientID, "client-id", cfg.BackendClientID, "OAuth client id sent with logins")
	fs.StringVar(&cfg.BackendClientSecret, "client-secret", cfg.BackendClientSecret, "OAuth client secret sent with logins")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for session cookie keys")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", cfg.SecureCookies, "Mark session cookies Secure")
	fs.IntVar(&cfg.HistoryLimit, "history-limit", cfg.HistoryLimit, "Maximum submissions listed per project")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "Business time zone for delivery dates")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	for _, d := range durations {
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.flag, err)
		}
		*d.dst = v
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}
	cfg.Location = loc

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.DraftTTL <= 0 {
		cfg.DraftTTL = defaultDraftTTL
	}
	if cfg.JanitorInterval <= 0 {
		cfg.JanitorInterval = defaultJanitorInterval
	}
	if cfg.NoticeDuration <= 0 {
		cfg.NoticeDuration = defaultNoticeDuration
	}
	if cfg.SessionMaxAge <= 0 {
		cfg.SessionMaxAge = defaultSessionMaxAge
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}

	if cfg.BackendAddress == "" {
		return nil, fmt.Errorf("backend address must be provided")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
