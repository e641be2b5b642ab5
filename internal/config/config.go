package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	GinMode     string
	CORSOrigin  string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUsername  string
	DBPassword  string
	DBDatabase  string

	RateLimitWindow      time.Duration
	RateLimitMaxRequests int
}

func Load() *Config {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")
	ginMode := "debug"
	if env == "production" {
		ginMode = "release"
	}

	return &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: env,
		GinMode:     ginMode,
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),

		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUsername:  getEnv("DB_USERNAME", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBDatabase:  getEnv("DB_DATABASE", "todos"),

		RateLimitWindow:      time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MS", 60000)) * time.Millisecond,
		RateLimitMaxRequests: getEnvInt("RATE_LIMIT_MAX_REQUESTS", 100),
	}
}

// IsDevelopment reports whether detailed error messages may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

// DSN builds the connection string for the configured driver. DATABASE_URL
// takes precedence over the discrete DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBDriver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUsername, c.DBPassword, c.DBHost, c.DBPort, c.DBDatabase)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUsername, c.DBPassword, c.DBDatabase)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
