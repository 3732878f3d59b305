package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values
type Config struct {
	Port   string
	AppEnv string

	// Redis connection. An empty RedisAddr selects the in-memory
	// lead cache fallback.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// How long an ingested lead stays resolvable.
	LeadTTL time.Duration

	// Constants handed to the voice agent with every lookup response.
	AgentName  string
	SourceSite string
	Location   string

	SlackWebhookURL string

	RetellAPIKey     string
	RetellAgentID    string
	RetellFromNumber string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		LeadTTL: time.Duration(getEnvInt("LEAD_TTL_SECONDS", 86400)) * time.Second,

		AgentName:  getEnv("AGENT_NAME", "Alex"),
		SourceSite: getEnv("SOURCE_SITE", "website"),
		Location:   os.Getenv("LOCATION"),

		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),

		RetellAPIKey:     os.Getenv("RETELL_API_KEY"),
		RetellAgentID:    os.Getenv("RETELL_AGENT_ID"),
		RetellFromNumber: os.Getenv("RETELL_FROM_NUMBER"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
