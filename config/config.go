package config

import (
	"os"
	"strings"
)

type Config struct {
	// Server
	Port string
	Host string

	// Database (optional; persistence is skipped when the DSN is empty)
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// RabbitMQ (optional; the capture feed is skipped when the URL is empty)
	RabbitMQURL   string
	RabbitMQQueue string

	// Brand configuration for serve mode
	YourBrands       []string
	CompetitorBrands []string
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Host:          getEnv("HOST", "0.0.0.0"),
		DBUser:        getEnv("DB_USER", "server"),
		DBPassword:    getEnv("DB_PASSWORD", "secret_app"),
		DBHost:        getEnv("DB_HOST", ""),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBName:        getEnv("DB_NAME", "brandaudit"),
		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		RabbitMQQueue: getEnv("RABBITMQ_QUEUE", "capture-results"),
	}

	cfg.YourBrands = parseBrandNames(getEnv("BRAND_NAMES", ""))
	cfg.CompetitorBrands = parseBrandNames(getEnv("COMPETITOR_BRAND_NAMES", ""))

	return cfg
}

// DSN returns the MySQL connection string, or "" when no DB host is
// configured.
func (c *Config) DSN() string {
	if c.DBHost == "" {
		return ""
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBrandNames(brandNamesStr string) []string {
	if brandNamesStr == "" {
		return []string{}
	}

	brands := strings.Split(brandNamesStr, ",")
	var cleanBrands []string
	for _, brand := range brands {
		cleanBrand := strings.TrimSpace(brand)
		if cleanBrand != "" {
			cleanBrands = append(cleanBrands, cleanBrand)
		}
	}
	return cleanBrands
}
