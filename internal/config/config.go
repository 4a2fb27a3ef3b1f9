package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI  string
	DBName    string
	JWTSecret string
	OwnerKey  string
	TokenTTL  time.Duration

	CORSOrigins []string

	TelegramBotToken  string
	TelegramChatID    string
	DiscordWebhookURL string
	SlackWebhookURL   string

	KafkaBrokers []string
	KafkaTopic   string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:  getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DBName:    getEnvOrDefault("DB_NAME", "medidex"),
		JWTSecret: getEnvOrDefault("JWT_SECRET", ""),
		OwnerKey:  getEnvOrDefault("OWNER_KEY", ""),
		TokenTTL:  getDurationEnv("TOKEN_TTL", 24, time.Hour),

		CORSOrigins: getListEnv("CORS_ORIGIN"),

		TelegramBotToken:  getEnvOrDefault("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:    getEnvOrDefault("TELEGRAM_CHAT_ID", ""),
		DiscordWebhookURL: getEnvOrDefault("DISCORD_WEBHOOK_URL", ""),
		SlackWebhookURL:   getEnvOrDefault("SLACK_WEBHOOK_URL", ""),

		KafkaBrokers: getListEnv("KAFKA_BROKERS"),
		KafkaTopic:   getEnvOrDefault("KAFKA_TOPIC", "orders.created"),
	}

	if AppEnv.JWTSecret == "" {
		log.Fatal("ENV JWT_SECRET is required")
	}
	if AppEnv.OwnerKey == "" {
		log.Fatal("ENV OWNER_KEY is required")
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getListEnv(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
