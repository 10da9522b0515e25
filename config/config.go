// Package config loads runtime settings from an optional JSON file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
)

// LanguageAuto leaves language selection to detection.
const LanguageAuto = "auto"

const candidatesFile = "candidates.csv"

type Config struct {
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url"`
	Model    string `json:"model"`
	DataDir  string `json:"data_dir"`
	Save     bool   `json:"save"`
	HashPII  bool   `json:"hash_pii"`
	Language string `json:"language"`
	LogLevel string `json:"log_level"`
}

// CandidatesPath is the CSV file candidate rows are appended to.
func (c *Config) CandidatesPath() string {
	return filepath.Join(c.DataDir, candidatesFile)
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FixedLanguage reports the configured language when detection is turned off.
func (c *Config) FixedLanguage() (string, bool) {
	lang := strings.ToLower(strings.TrimSpace(c.Language))
	if lang == "" || lang == LanguageAuto {
		return "", false
	}
	return lang, true
}

// Load reads path when it exists, then applies a .env file and the process
// environment on top. An empty path skips the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	conf := &Config{
		DataDir:  "data",
		HashPII:  true,
		Language: LanguageAuto,
		LogLevel: "info",
	}
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err = sonic.Unmarshal(file, conf); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			slog.Debug("config file not found, using environment", "path", path)
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	conf.APIKey = getEnv("GROQ_API_KEY", getEnv("OPENAI_API_KEY", conf.APIKey))
	conf.BaseURL = strings.TrimRight(getEnv("TALENTSCOUT_BASE_URL", conf.BaseURL), "/")
	conf.Model = getEnv("TALENTSCOUT_MODEL", conf.Model)
	conf.DataDir = getEnv("TALENTSCOUT_DATA_DIR", conf.DataDir)
	conf.Save = getEnvBool("TALENTSCOUT_SAVE", conf.Save)
	conf.HashPII = getEnvBool("TALENTSCOUT_HASH_PII", conf.HashPII)
	conf.Language = getEnv("TALENTSCOUT_LANGUAGE", conf.Language)
	conf.LogLevel = getEnv("TALENTSCOUT_LOG_LEVEL", conf.LogLevel)
	return conf, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		slog.Warn("invalid boolean in environment", "key", key, "value", value)
		return fallback
	}
	return b
}
