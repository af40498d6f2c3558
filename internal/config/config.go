package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	SessionFile string
}

func Load() Config {
	_ = godotenv.Load()

	base := getEnv("API_BASE_URL", "http://localhost:8080")
	timeoutSecs := getEnvInt("HTTP_TIMEOUT_SECONDS", 30)
	sessionFile := getEnv("SESSION_FILE", defaultSessionFile())

	return Config{
		APIBaseURL:  base,
		HTTPTimeout: time.Duration(timeoutSecs) * time.Second,
		SessionFile: sessionFile,
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "invoiceapp", "session.json")
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
