package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервера
type Config struct {
	Port               int
	MaxTotalValue      float64
	MaxYears           int
	MaxDeferralStart   int
	MaxPayoutDuration  int
	MaxRate            float64
	CORSAllowedOrigins []string
	OTELEndpoint       string
	OTELServiceName    string
	LogLevel           string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvInt("PORT", 8000),
		MaxTotalValue:      getEnvFloat("MAX_TOTAL_VALUE", 1e10),
		MaxYears:           getEnvInt("MAX_YEARS", 40),
		MaxDeferralStart:   getEnvInt("MAX_DEFERRAL_START", 40),
		MaxPayoutDuration:  getEnvInt("MAX_PAYOUT_DURATION", 40),
		MaxRate:            getEnvFloat("MAX_RATE", 100),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		OTELEndpoint:       getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:    getEnvString("OTEL_SERVICE_NAME", "deferred-contract-server"),
		LogLevel:           getEnvString("LOG_LEVEL", "INFO"),
	}

	return cfg, nil
}

// SlogLevel переводит LOG_LEVEL в уровень slog, по умолчанию INFO
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
