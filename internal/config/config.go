package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервиса
type Config struct {
	Port            int
	MaxPayment      float64
	MaxTermPeriods  int
	MaxRate         float64
	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string

	// Сбор email перед выгрузкой графика
	LeadCaptureURL     string
	LeadCaptureTimeout time.Duration
	MaxRetries         int
	InitialBackoff     time.Duration
	LeadRateLimit      int
	LeadRateWindow     time.Duration

	// Хранилище собранных email; пустой адрес - хранение в памяти
	RedisAddr string

	// Пустой секрет: serve сгенерирует случайный на время работы процесса
	DownloadTokenSecret string
	DownloadTokenTTL    time.Duration
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvInt("PORT", 8000),
		MaxPayment:      getEnvFloat("MAX_PAYMENT", 1e9),
		MaxTermPeriods:  getEnvInt("MAX_TERM_PERIODS", 1200),
		MaxRate:         getEnvFloat("MAX_RATE", 200),
		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "ifrs16-calculator"),
		LogLevel:        getEnvString("LOG_LEVEL", "info"),

		LeadCaptureURL:     getEnvString("LEAD_CAPTURE_URL", ""),
		LeadCaptureTimeout: getEnvDuration("LEAD_CAPTURE_TIMEOUT", 10*time.Second),
		MaxRetries:         getEnvInt("MAX_RETRIES", 2),
		InitialBackoff:     getEnvDuration("INITIAL_BACKOFF", 200*time.Millisecond),
		LeadRateLimit:      getEnvInt("LEAD_RATE_LIMIT", 5),
		LeadRateWindow:     getEnvDuration("LEAD_RATE_WINDOW", time.Minute),

		RedisAddr: getEnvString("REDIS_ADDR", ""),

		DownloadTokenSecret: getEnvString("DOWNLOAD_TOKEN_SECRET", ""),
		DownloadTokenTTL:    getEnvDuration("DOWNLOAD_TOKEN_TTL", 24*time.Hour),
	}

	return cfg, nil
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
