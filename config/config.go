package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every configuration parameter the binaries read.
type Config struct {
	// Console settings.
	APIBaseURL     string
	SessionFile    string
	RequestTimeout time.Duration

	// Stub server settings.
	ServerPort   int
	JWTSecretKey string
}

// devJWTSecret signs tokens in the local stub only. The console never reads
// it; real tokens come from the platform.
const devJWTSecret = "padel-dev-secret"

// Load reads configuration from environment variables, optionally picking up
// a .env file first (useful for local development, never fatal when absent).
func Load() (*Config, error) {
	_ = godotenv.Load()

	baseURL := os.Getenv("PADEL_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3333/api"
	}

	sessionFile := os.Getenv("PADEL_SESSION_FILE")
	if sessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory for session file: %w", err)
		}
		sessionFile = filepath.Join(home, ".padel-admin", "session.json")
	}

	timeout := 15 * time.Second
	if raw := os.Getenv("PADEL_REQUEST_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PADEL_REQUEST_TIMEOUT: %w", err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("PADEL_REQUEST_TIMEOUT must be positive, got %s", parsed)
		}
		timeout = parsed
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "3333"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		jwtKey = devJWTSecret
	}

	return &Config{
		APIBaseURL:     baseURL,
		SessionFile:    sessionFile,
		RequestTimeout: timeout,
		ServerPort:     port,
		JWTSecretKey:   jwtKey,
	}, nil
}
