package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite defines the test suite for configuration loading
type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

// TestLoad_Defaults tests that an empty environment yields the documented defaults
func (s *ConfigTestSuite) TestLoad_Defaults() {
	cfg := Load()

	s.Equal("8080", cfg.Server.Port)
	s.Equal("localhost", cfg.Server.Host)
	s.Equal("development", cfg.Server.Environment)
	s.Equal(5, cfg.Server.RateLimitRPS)
	s.Equal(10, cfg.Server.RateLimitBurst)
	s.Equal([]string{"*"}, cfg.Server.CORSAllowOrigins)
	s.Empty(cfg.Server.SeedFile)

	s.Equal("wrapped.db", cfg.Database.Path)

	s.Empty(cfg.Generation.APIKey)
	s.Equal("gemini-2.0-flash", cfg.Generation.Model)
	s.Equal(60*time.Second, cfg.Generation.Timeout)
}

// TestLoad_EnvironmentOverrides tests that environment variables win over defaults
func (s *ConfigTestSuite) TestLoad_EnvironmentOverrides() {
	s.T().Setenv("SERVER_PORT", "9090")
	s.T().Setenv("APP_ENV", "production")
	s.T().Setenv("RATE_LIMIT_PER_SECOND", "50")
	s.T().Setenv("DB_PATH", "/var/lib/wrapped/data.db")
	s.T().Setenv("GENERATION_MODEL", "gemini-2.5-pro")
	s.T().Setenv("GENERATION_TIMEOUT", "30s")
	s.T().Setenv("SEED_FILE", "testdata/seed.json")

	cfg := Load()

	s.Equal("9090", cfg.Server.Port)
	s.Equal("production", cfg.Server.Environment)
	s.Equal(50, cfg.Server.RateLimitRPS)
	s.Equal("/var/lib/wrapped/data.db", cfg.Database.Path)
	s.Equal("gemini-2.5-pro", cfg.Generation.Model)
	s.Equal(30*time.Second, cfg.Generation.Timeout)
	s.Equal("testdata/seed.json", cfg.Server.SeedFile)
}

// TestLoad_MalformedValuesFallBack tests that unparseable numbers and
// durations fall back to defaults instead of failing startup
func (s *ConfigTestSuite) TestLoad_MalformedValuesFallBack() {
	s.T().Setenv("RATE_LIMIT_PER_SECOND", "many")
	s.T().Setenv("GENERATION_TIMEOUT", "soon")

	cfg := Load()

	s.Equal(5, cfg.Server.RateLimitRPS)
	s.Equal(60*time.Second, cfg.Generation.Timeout)
}

// TestLoad_CORSOrigins tests comma-separated origin parsing
func (s *ConfigTestSuite) TestLoad_CORSOrigins() {
	s.T().Setenv("CORS_ALLOW_ORIGINS", "https://app.example.com , https://admin.example.com")

	cfg := Load()

	s.Equal([]string{"https://app.example.com", "https://admin.example.com"}, cfg.Server.CORSAllowOrigins)
}

// TestEnvironmentHelpers tests the environment classification helpers
func (s *ConfigTestSuite) TestEnvironmentHelpers() {
	cases := []struct {
		env          string
		isDev        bool
		isProduction bool
		isTesting    bool
	}{
		{env: "development", isDev: true},
		{env: "production", isProduction: true},
		{env: "testing", isTesting: true},
	}

	for _, tc := range cases {
		s.Run(tc.env, func() {
			cfg := &Config{Server: ServerConfig{Environment: tc.env}}

			s.Equal(tc.isDev, cfg.IsDevelopment())
			s.Equal(tc.isProduction, cfg.IsProduction())
			s.Equal(tc.isTesting, cfg.IsTesting())
		})
	}
}
