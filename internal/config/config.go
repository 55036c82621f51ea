package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	Port           string
	APIKey         string
	ModelOverride  string
	ForceAPI       bool
	DataDir        string
	MaxUploadBytes int64
}

func LoadConfig() (Config, error) {
	cfg := Config{}

	cfg.Port = envOrDefault("PORT", "8080")
	cfg.APIKey = os.Getenv("GROK_API_KEY")
	cfg.ModelOverride = os.Getenv("AI_MODEL")
	cfg.ForceAPI = os.Getenv("FORCE_API") == "true"
	cfg.DataDir = envOrDefault("DATA_DIR", "data")

	maxUploadMB, err := parseIntEnv("MAX_UPLOAD_MB", 200)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAX_UPLOAD_MB: %w", err)
	}
	cfg.MaxUploadBytes = maxUploadMB * 1024 * 1024

	absDataDir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg.DataDir = absDataDir

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseIntEnv(key string, fallback int64) (int64, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}

	num, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return num, nil
}
