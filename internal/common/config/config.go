package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port             string        `yaml:"port"`
	Environment      string        `yaml:"env"`
	ReadTimeout      int           `yaml:"read_timeout"`
	WriteTimeout     int           `yaml:"write_timeout"`
	LogMode          string        `yaml:"log_mode"`
	DBPath           string        `yaml:"db_path"`
	AuthURL          string        `yaml:"auth_url"`
	DesignerURL      string        `yaml:"designer_url"`
	SessionTTL       time.Duration `yaml:"session_ttl"`
	IdentityCacheTTL time.Duration `yaml:"identity_cache_ttl"`
	CORSOrigins      []string      `yaml:"cors_origins"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	return &Config{
		Port:             "3000",
		Environment:      "development",
		ReadTimeout:      10,
		WriteTimeout:     10,
		LogMode:          "development",
		AuthURL:          "http://localhost:3002",
		DesignerURL:      "http://localhost:3003",
		SessionTTL:       24 * time.Hour,
		IdentityCacheTTL: 30 * time.Second,
		CORSOrigins:      []string{"*"},
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем YAML файл
// из CONFIG_FILE (если задан), затем переменные окружения.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENV", cfg.Environment)
	cfg.ReadTimeout = getEnvAsInt("READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.LogMode = getEnv("LOG_MODE", cfg.LogMode)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.AuthURL = getEnv("AUTH_URL", cfg.AuthURL)
	cfg.DesignerURL = getEnv("DESIGNER_URL", cfg.DesignerURL)
	cfg.SessionTTL = getEnvAsDuration("SESSION_TTL", cfg.SessionTTL)
	cfg.IdentityCacheTTL = getEnvAsDuration("IDENTITY_CACHE_TTL", cfg.IdentityCacheTTL)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}
	// кэш личностей в designer не должен переживать сессию в auth
	if cfg.SessionTTL > 0 && cfg.IdentityCacheTTL > cfg.SessionTTL {
		cfg.IdentityCacheTTL = cfg.SessionTTL
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
