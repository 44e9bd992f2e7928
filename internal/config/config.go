package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string

	// DynamoDB
	AWSRegion         string
	ReviewsTableName  string
	ReviewerIndexName string // GSI keyed by ReviewerName; empty falls back to a filtered scan
	StoreTimeout      time.Duration

	// Auth
	AuthProvider     string // "cognito" or "local"
	UserPoolID       string
	UserPoolClientID string
	JWTSecret        string // local provider signing key
	SessionCookie    string
	AuthCacheTTL     time.Duration // 0 disables authorizer result caching

	// SMTP (local provider confirmation codes)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string

	RateLimitRPS int
}

func Load() *Config {
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	rateLimitRPS, _ := strconv.Atoi(getEnv("RATE_LIMIT_RPS", "100"))
	storeTimeout, _ := strconv.Atoi(getEnv("STORE_TIMEOUT_SECONDS", "10"))
	cacheTTL, _ := strconv.Atoi(getEnv("AUTH_CACHE_TTL_SECONDS", "0"))

	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		AWSRegion:         getEnv("AWS_REGION", "eu-west-1"),
		ReviewsTableName:  getEnv("TABLE_NAME", "Reviews"),
		ReviewerIndexName: getEnv("REVIEWER_INDEX_NAME", "ReviewerNameIndex"),
		StoreTimeout:      time.Duration(storeTimeout) * time.Second,
		AuthProvider:      getEnv("AUTH_PROVIDER", "cognito"),
		UserPoolID:        getEnv("USER_POOL_ID", ""),
		UserPoolClientID:  getEnv("CLIENT_ID", ""),
		JWTSecret:         getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
		SessionCookie:     getEnv("SESSION_COOKIE", "token"),
		AuthCacheTTL:      time.Duration(cacheTTL) * time.Second,
		SMTPHost:          getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          smtpPort,
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		FromEmail:         getEnv("FROM_EMAIL", "noreply@yourapp.com"),
		RateLimitRPS:      rateLimitRPS,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
