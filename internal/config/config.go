package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Generation GenerationConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	RateLimitRPS     int
	RateLimitBurst   int
	CORSAllowOrigins []string
	SeedFile         string
}

type DatabaseConfig struct {
	Path string
}

// GenerationConfig is the explicit, immutable configuration for the
// text-generation backend. Sampling parameters are fixed by the report
// contract and intentionally not configurable here.
type GenerationConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

func Load() *Config {
	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Host:           getEnv("SERVER_HOST", "localhost"),
			Environment:    getEnv("APP_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			RateLimitRPS:   getIntEnv("RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 10),
			SeedFile:       getEnv("SEED_FILE", ""),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "wrapped.db"),
		},
		Generation: GenerationConfig{
			APIKey:  getEnv("GENERATION_API_KEY", ""),
			Model:   getEnv("GENERATION_MODEL", "gemini-2.0-flash"),
			Timeout: getDurationEnv("GENERATION_TIMEOUT", 60*time.Second),
		},
	}

	config.Server.CORSAllowOrigins = loadCORSAllowOrigins()

	return config
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment
// or returns the permissive default the original backend shipped with
func loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")
	if corsOrigins == "" {
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}
