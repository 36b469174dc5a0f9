package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	// AWS / telemetry
	AWSRegion             string
	ServiceLevelThreshold float64

	// Reporting policy
	DisplayUTCOffsetHours int
	ZeroTrafficAnswerRate float64
	ReportTimeout         time.Duration

	// Built-in hourly schedule; active only when the default event is
	// fully configured.
	ScheduleEnabled bool
	ConnectARN      string
	Queues          []string
	WebhookURL      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:       getEnv("PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		AWSRegion:  getEnv("AWS_REGION", "ap-northeast-1"),
		ConnectARN: getEnv("CONNECT_ARN", ""),
		WebhookURL: getEnv("WEBHOOK_URL", ""),
	}

	config.AllowedOrigins = splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"))
	if queues := getEnv("QUEUES", ""); queues != "" {
		config.Queues = splitAndTrim(queues)
	}

	threshold, err := strconv.ParseFloat(getEnv("SERVICE_LEVEL_THRESHOLD", "20.0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVICE_LEVEL_THRESHOLD: %w", err)
	}
	config.ServiceLevelThreshold = threshold

	offset, err := strconv.Atoi(getEnv("DISPLAY_UTC_OFFSET_HOURS", "9"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_UTC_OFFSET_HOURS: %w", err)
	}
	config.DisplayUTCOffsetHours = offset

	zeroRate, err := strconv.ParseFloat(getEnv("ZERO_TRAFFIC_ANSWER_RATE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ZERO_TRAFFIC_ANSWER_RATE: %w", err)
	}
	config.ZeroTrafficAnswerRate = zeroRate

	timeout, err := strconv.Atoi(getEnv("REPORT_TIMEOUT", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEOUT: %w", err)
	}
	config.ReportTimeout = time.Duration(timeout) * time.Second

	enabled, err := strconv.ParseBool(getEnv("SCHEDULE_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_ENABLED: %w", err)
	}
	config.ScheduleEnabled = enabled

	if config.ScheduleEnabled && (config.ConnectARN == "" || len(config.Queues) == 0 || config.WebhookURL == "") {
		return nil, fmt.Errorf("SCHEDULE_ENABLED requires CONNECT_ARN, QUEUES and WEBHOOK_URL")
	}

	return config, nil
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
