package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads .env files into the process environment. Variables already set
// in the environment win. A missing file is reported as an error that callers
// may ignore. With no paths, ".env" is used.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// GetEnv returns the value of the environment variable named by key, or fallback
// if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by key,
// or fallback if the variable is unset, empty, or not a valid integer.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

// GetEnvSeconds reads key as a positive number of seconds.
func GetEnvSeconds(key string, fallback time.Duration) time.Duration {
	if n := GetEnvInt(key, 0); n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

// StorageHost reduces a STORAGE_URL value to the host matched for
// self-hosted content. Both "https://files.example.com:9000/bucket" and a
// bare "files.example.com" are accepted; empty input yields fallback.
func StorageHost(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Hostname()
	}
	return strings.TrimSuffix(raw, "/")
}
