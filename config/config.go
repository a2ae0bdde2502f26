package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ImagesDir      string
	AnnotationsDir string
	Workers        int
	MinImages      int
	VerifyImages   bool
	TelegramToken  string
	TelegramChatID int64
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		ImagesDir:      getEnv("IMAGES_DIR", "workspace/data/images"),
		AnnotationsDir: getEnv("ANNOTATIONS_DIR", "workspace/data/annotations"),
		Workers:        getEnvAsInt("VALIDATOR_WORKERS", 4),
		MinImages:      getEnvAsInt("MIN_IMAGES", 10),
		VerifyImages:   getEnvAsBool("VERIFY_IMAGES", false),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
	}

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if cfg.Workers < 1 {
		cfg.Workers = 4
	}

	return cfg, nil
}

// NotifyEnabled true, если задан и токен, и чат
func (c *Config) NotifyEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
