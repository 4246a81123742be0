package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv() {
	os.Setenv("FSEL_ADMIN_USERNAME", "svc-admin")
	os.Setenv("FSEL_ADMIN_PASSWORD", "svc-password")
	os.Setenv("OPERATOR_USERNAME", "ops@fsel.edu.vn")
	os.Setenv("OPERATOR_PASSWORD", "operator-password")
	os.Setenv("JWT_SECRET", "test-jwt-secret")
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name: "development environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "development"},
			},
			expected: true,
		},
		{
			name: "debug gin mode",
			config: &Config{
				Server: ServerConfig{GinMode: "debug"},
			},
			expected: true,
		},
		{
			name: "production environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "production", GinMode: "release"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsDevelopment())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{
				Port:           "8082",
				AllowedOrigins: []string{"https://admin.fsel.edu.vn"},
			},
			Gateways: GatewaysConfig{
				AuthBaseURL:     "https://gw/auth-gateway",
				UserBaseURL:     "https://gw/user-gateway",
				CourseBaseURL:   "https://gw/lms-course-gateway",
				OrderingBaseURL: "https://gw/ordering-gateway",
			},
			GatewayAuth: GatewayAuthConfig{
				AdminUsername: "svc-admin",
				AdminPassword: "svc-password",
			},
			OperatorSession: OperatorSessionConfig{
				Username:  "ops",
				Password:  "secret",
				JWTSecret: "jwt-secret",
			},
		}
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		errorMsg string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:     "missing gateway admin username",
			mutate:   func(c *Config) { c.GatewayAuth.AdminUsername = "" },
			errorMsg: "FSEL_ADMIN_USERNAME is required",
		},
		{
			name:     "missing gateway admin password",
			mutate:   func(c *Config) { c.GatewayAuth.AdminPassword = "" },
			errorMsg: "FSEL_ADMIN_PASSWORD is required",
		},
		{
			name:     "missing operator credentials",
			mutate:   func(c *Config) { c.OperatorSession.Username = "" },
			errorMsg: "OPERATOR_USERNAME is required",
		},
		{
			name:     "missing jwt secret",
			mutate:   func(c *Config) { c.OperatorSession.JWTSecret = "" },
			errorMsg: "JWT_SECRET is required",
		},
		{
			name:     "missing gateway base URL",
			mutate:   func(c *Config) { c.Gateways.OrderingBaseURL = "" },
			errorMsg: "gateway base URLs are required",
		},
		{
			name:     "missing CORS origins",
			mutate:   func(c *Config) { c.Server.AllowedOrigins = nil },
			errorMsg: "ALLOWED_CORS_ORIGINS is required",
		},
		{
			name: "profiling enabled without endpoint",
			mutate: func(c *Config) {
				c.Profiling.Enabled = true
				c.Profiling.Endpoint = ""
			},
			errorMsg: "O11Y_PROFILING_ENDPOINT is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			}
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	os.Clearenv()
	setRequiredEnv()

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "8082", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, []string{"https://admin.fsel.edu.vn"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://fsel-gateway-api.fsel.edu.vn/auth-gateway", cfg.Gateways.AuthBaseURL)
	assert.Equal(t, "https://fsel-gateway-api.fsel.edu.vn/ordering-gateway", cfg.Gateways.OrderingBaseURL)
	assert.Equal(t, "LMSAdmin", cfg.GatewayAuth.AdminPlatformCode)
	assert.Equal(t, "LMS", cfg.GatewayAuth.SignUpPlatformCode)
	assert.Equal(t, "Fsel2025@", cfg.Provisioning.DefaultSignupPassword)
	assert.Equal(t, 12, cfg.OperatorSession.SessionTTLHours)
	assert.True(t, cfg.OperatorSession.CookieSecure)
	assert.Equal(t, "fsel-admin-console-api", cfg.Observability.ServiceName)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	os.Clearenv()
	setRequiredEnv()

	os.Setenv("PORT", "9000")
	os.Setenv("GIN_MODE", "debug")
	os.Setenv("APP_ENV", "development")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("ALLOWED_CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	os.Setenv("FSEL_USER_BASE_URL", "https://staging-gw/user-gateway")
	os.Setenv("DEFAULT_SIGNUP_PASSWORD", "Other2026@")
	os.Setenv("SESSION_TTL_HOURS", "2")
	os.Setenv("COOKIE_SECURE", "false")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://staging-gw/user-gateway", cfg.Gateways.UserBaseURL)
	assert.Equal(t, "Other2026@", cfg.Provisioning.DefaultSignupPassword)
	assert.Equal(t, 2, cfg.OperatorSession.SessionTTLHours)
	assert.False(t, cfg.OperatorSession.CookieSecure)
}

func TestLoad_ValidationFailure(t *testing.T) {
	// Run from a directory without a .env file so nothing fills the gaps.
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)

	tempDir := t.TempDir()
	os.Chdir(tempDir)

	os.Clearenv()
	// Missing all gateway and operator credentials.

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
