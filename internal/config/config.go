package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Match    MatchConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	AuditTopic   string
}

type AIConfig struct {
	VisionModel       string
	ExtractionTimeout int // seconds, per image
}

type MatchConfig struct {
	MaxConcurrentLookups int
	CacheTTLSeconds      int
}

type SessionConfig struct {
	TTLMinutes int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8081,http://localhost:19006"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GEMINI_API_KEY", ""),
			AuditTopic:   getEnv("AUDIT_TOPIC_NAME", "CATALOG_AUDIT"),
		},
		Ai: AIConfig{
			VisionModel:       getEnv("VISION_MODEL", "gemini-2.5-flash"),
			ExtractionTimeout: getEnvAsInt("EXTRACTION_TIMEOUT_SECONDS", 30),
		},
		Match: MatchConfig{
			MaxConcurrentLookups: getEnvAsInt("MATCH_MAX_CONCURRENT_LOOKUPS", 8),
			CacheTTLSeconds:      getEnvAsInt("MATCH_CACHE_TTL_SECONDS", 600),
		},
		Session: SessionConfig{
			TTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
