package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config - конфигурация приложения из переменных окружения
type Config struct {
	AppPort     string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	// пауза перед применением исхода спина - время проигрывания анимации
	SpinResolveDelay time.Duration
	// автоматический запуск следующего спина после показа результата
	AutoSpin      bool
	AutoSpinDelay time.Duration

	// телеграм-бот, анонсирующий результаты матчей (опционально)
	AnnouncerEnabled bool
	BotToken         string
	AnnounceChatID   int64
}

// Load читает конфигурацию из .env и окружения
func Load() *Config {
	// .env опционален - в проде переменные приходят из окружения
	_ = godotenv.Load()

	return &Config{
		AppPort:     getEnv("APP_PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),

		SpinResolveDelay: getEnvDuration("SPIN_RESOLVE_DELAY_MS", 4000),
		AutoSpin:         getEnvBool("AUTO_SPIN", false),
		AutoSpinDelay:    getEnvDuration("AUTO_SPIN_DELAY_MS", 2500),

		AnnouncerEnabled: getEnvBool("ANNOUNCER_BOT_ENABLED", false),
		BotToken:         os.Getenv("BOT_TOKEN"),
		AnnounceChatID:   getEnvInt64("ANNOUNCE_CHAT_ID", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallbackMs int) time.Duration {
	return time.Duration(getEnvInt(key, fallbackMs)) * time.Millisecond
}
