package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment variables for the service.
type Config struct {
	Env          string // "development" or "production"
	Port         string // Service port (default: 8080)
	MongoURI     string // MongoDB connection string
	MongoDB      string // Database name (default: colheita)
	RedisURL     string // Optional cache; empty disables caching
	JWTSecret    string // JWT secret for authentication
	GoogleAPIKey string // Google Custom Search API key (optional)
	GoogleCX     string // Google Custom Search engine id (optional)
	SNSTopicARN  string // Optional reservation events topic
}

// LoadConfig loads environment variables into a Config struct and
// validates the required fields. A .env file is honored when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:          os.Getenv("APP_ENV"),
		Port:         os.Getenv("PORT"),
		MongoURI:     os.Getenv("MONGO_URI"),
		MongoDB:      os.Getenv("MONGO_DB"),
		RedisURL:     os.Getenv("REDIS_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		GoogleCX:     os.Getenv("GOOGLE_CX"),
		SNSTopicARN:  os.Getenv("RESERVATION_SNS_TOPIC_ARN"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "colheita"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
