package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server          ServerConfig
	Gateways        GatewaysConfig
	GatewayAuth     GatewayAuthConfig
	Provisioning    ProvisioningConfig
	Catalog         CatalogConfig
	AlertSettings   AlertSettingsConfig
	OperatorSession OperatorSessionConfig
	Logging         LoggingConfig
	Observability   ObservabilityConfig
	Profiling       ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AllowedOrigins []string
}

// GatewaysConfig holds the base URLs of the four FSEL gateways.
type GatewaysConfig struct {
	AuthBaseURL     string
	UserBaseURL     string
	CourseBaseURL   string
	OrderingBaseURL string
}

// GatewayAuthConfig is the service account the console uses against the
// gateways, plus where the daily token is persisted across restarts.
type GatewayAuthConfig struct {
	AdminUsername      string
	AdminPassword      string
	AdminPlatformCode  string
	SignUpPlatformCode string
	TokenCacheFile     string
}

type ProvisioningConfig struct {
	DefaultSignupPassword string
}

type CatalogConfig struct {
	CurriculumDir string
}

type AlertSettingsConfig struct {
	DefaultsFile string
	StoreFile    string
}

// OperatorSessionConfig configures console operator login and the session
// cookie.
type OperatorSessionConfig struct {
	Username        string
	Password        string
	JWTSecret       string
	JWTIssuer       string
	SessionTTLHours int
	CookieDomain    string
	CookieSecure    bool
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	AlloyEndpoint     string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8082")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://admin.fsel.edu.vn")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("FSEL_AUTH_BASE_URL", "https://fsel-gateway-api.fsel.edu.vn/auth-gateway")
	v.SetDefault("FSEL_USER_BASE_URL", "https://fsel-gateway-api.fsel.edu.vn/user-gateway")
	v.SetDefault("FSEL_COURSE_BASE_URL", "https://fsel-gateway-api.fsel.edu.vn/lms-course-gateway")
	v.SetDefault("FSEL_ORDERING_BASE_URL", "https://fsel-gateway-api.fsel.edu.vn/ordering-gateway")
	v.SetDefault("FSEL_ADMIN_PLATFORM_CODE", "LMSAdmin")
	v.SetDefault("FSEL_SIGNUP_PLATFORM_CODE", "LMS")
	v.SetDefault("FSEL_TOKEN_CACHE_FILE", "/app/data/admin_token.cache")
	v.SetDefault("DEFAULT_SIGNUP_PASSWORD", "Fsel2025@")
	v.SetDefault("CURRICULUM_DIR", "/app/data/curriculum")
	v.SetDefault("ALERT_SETTINGS_DEFAULTS_FILE", "/app/data/alert_settings_defaults.json")
	v.SetDefault("ALERT_SETTINGS_STORE_FILE", "/app/data/alert_settings.json")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "alloy:4318") // OTLP over HTTP
	v.SetDefault("O11Y_BE_SERVICE_NAME", "fsel-admin-console-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "fsel-admin")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "fsel-admin-console-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Operator session defaults
	v.SetDefault("JWT_ISSUER", "fsel-admin-console-api")
	v.SetDefault("SESSION_TTL_HOURS", 12)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: allowedOrigins,
		},
		Gateways: GatewaysConfig{
			AuthBaseURL:     v.GetString("FSEL_AUTH_BASE_URL"),
			UserBaseURL:     v.GetString("FSEL_USER_BASE_URL"),
			CourseBaseURL:   v.GetString("FSEL_COURSE_BASE_URL"),
			OrderingBaseURL: v.GetString("FSEL_ORDERING_BASE_URL"),
		},
		GatewayAuth: GatewayAuthConfig{
			AdminUsername:      v.GetString("FSEL_ADMIN_USERNAME"),
			AdminPassword:      v.GetString("FSEL_ADMIN_PASSWORD"),
			AdminPlatformCode:  v.GetString("FSEL_ADMIN_PLATFORM_CODE"),
			SignUpPlatformCode: v.GetString("FSEL_SIGNUP_PLATFORM_CODE"),
			TokenCacheFile:     v.GetString("FSEL_TOKEN_CACHE_FILE"),
		},
		Provisioning: ProvisioningConfig{
			DefaultSignupPassword: v.GetString("DEFAULT_SIGNUP_PASSWORD"),
		},
		Catalog: CatalogConfig{
			CurriculumDir: v.GetString("CURRICULUM_DIR"),
		},
		AlertSettings: AlertSettingsConfig{
			DefaultsFile: v.GetString("ALERT_SETTINGS_DEFAULTS_FILE"),
			StoreFile:    v.GetString("ALERT_SETTINGS_STORE_FILE"),
		},
		OperatorSession: OperatorSessionConfig{
			Username:        v.GetString("OPERATOR_USERNAME"),
			Password:        v.GetString("OPERATOR_PASSWORD"),
			JWTSecret:       v.GetString("JWT_SECRET"),
			JWTIssuer:       v.GetString("JWT_ISSUER"),
			SessionTTLHours: v.GetInt("SESSION_TTL_HOURS"),
			CookieDomain:    v.GetString("COOKIE_DOMAIN"),
			CookieSecure:    v.GetBool("COOKIE_SECURE"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			AlloyEndpoint:     v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.GatewayAuth.AdminUsername == "" {
		return fmt.Errorf("FSEL_ADMIN_USERNAME is required")
	}
	if c.GatewayAuth.AdminPassword == "" {
		return fmt.Errorf("FSEL_ADMIN_PASSWORD is required")
	}

	if c.OperatorSession.Username == "" {
		return fmt.Errorf("OPERATOR_USERNAME is required")
	}
	if c.OperatorSession.Password == "" {
		return fmt.Errorf("OPERATOR_PASSWORD is required")
	}
	if c.OperatorSession.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Gateways.AuthBaseURL == "" || c.Gateways.UserBaseURL == "" ||
		c.Gateways.CourseBaseURL == "" || c.Gateways.OrderingBaseURL == "" {
		return fmt.Errorf("all four FSEL gateway base URLs are required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
