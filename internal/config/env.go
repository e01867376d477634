package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds process-level settings that can come from the environment.
type Env struct {
	DBPath   string
	SSHAddr  string
	FPS      int
	LogLevel string
}

// DefaultEnv returns the built-in defaults.
func DefaultEnv() Env {
	return Env{
		DBPath:   "~/.chroma/scores.db",
		SSHAddr:  ":23234",
		FPS:      30,
		LogLevel: "info",
	}
}

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// LoadEnv returns DefaultEnv overridden by CHROMA_* variables.
func LoadEnv() Env {
	env := DefaultEnv()
	if raw := os.Getenv("CHROMA_DB"); raw != "" {
		env.DBPath = raw
	}
	if raw := os.Getenv("CHROMA_SSH_ADDR"); raw != "" {
		env.SSHAddr = raw
	}
	if raw := os.Getenv("CHROMA_FPS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			env.FPS = value
		}
	}
	if raw := os.Getenv("CHROMA_LOG_LEVEL"); raw != "" {
		env.LogLevel = raw
	}
	return env
}
