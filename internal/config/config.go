package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	ApplicationName    string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// APIConfig configures the shared outbound HTTP client.
type APIConfig struct {
	BaseURL string
}

// GeoConfig configures the geolocation lookup. An empty LocatePath disables it.
type GeoConfig struct {
	LocatePath string
}

// SessionConfig holds cookie session and login gate settings.
type SessionConfig struct {
	CookieName       string
	CookieSecure     bool
	TTLHours         int
	ResolveTimeoutMs int
	LoginPath        string
}

// TTL returns the session lifetime.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

// ResolveTimeout returns how long a request waits for its session before it is treated as loading.
func (s SessionConfig) ResolveTimeout() time.Duration {
	return time.Duration(s.ResolveTimeoutMs) * time.Millisecond
}

// SeedConfig describes an account created at startup when Email is set.
// An existing account with that email is never modified.
type SeedConfig struct {
	Email    string
	Name     string
	UserType string
	Password string
}

// TracingConfig holds the OTLP exporter settings. Names follow the OTEL_* variables.
type TracingConfig struct {
	Disabled    bool
	ServiceName string
	Protocol    string
	Endpoint    string
	Sampler     string
	SamplerArg  string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost          string
	AppScheme        string
	Port             string
	Timezone         string
	PreviewExpirySec int
	Database         DatabaseConfig
	MinIO            MinIOConfig
	API              APIConfig
	Geo              GeoConfig
	Session          SessionConfig
	Tracing          TracingConfig
	Seed             SeedConfig
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PreviewExpiry is the lifetime of presigned document preview URLs.
func (c *AppConfig) PreviewExpiry() time.Duration {
	return time.Duration(c.PreviewExpirySec) * time.Second
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:          getEnv("APP_HOST", "localhost:8080"),
		AppScheme:        getEnv("APP_SCHEME", "http"),
		Port:             getEnv("PORT", "8080"),
		Timezone:         getEnv("APP_TIMEZONE", "UTC"),
		PreviewExpirySec: getEnvInt("PREVIEW_URL_EXPIRY_SEC", 900),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			ApplicationName:    getEnv("DB_APPLICATION_NAME", "advocatehub"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:3000"),
		},
		Geo: GeoConfig{
			LocatePath: getEnv("GEO_LOCATE_PATH", ""),
		},
		Session: SessionConfig{
			CookieName:       getEnv("SESSION_COOKIE_NAME", "session"),
			CookieSecure:     getEnvBool("SESSION_COOKIE_SECURE", false),
			TTLHours:         getEnvInt("SESSION_TTL_HOURS", 24),
			ResolveTimeoutMs: getEnvInt("SESSION_RESOLVE_TIMEOUT_MS", 1500),
			LoginPath:        getEnv("LOGIN_PATH", "/login"),
		},
		Tracing: TracingConfig{
			Disabled:    getEnvBool("OTEL_SDK_DISABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "advocatehub"),
			Protocol:    getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
			Sampler:     getEnv("OTEL_TRACES_SAMPLER", "parentbased_traceidratio"),
			SamplerArg:  getEnv("OTEL_TRACES_SAMPLER_ARG", "1.0"),
		},
		Seed: SeedConfig{
			Email:    getEnv("SEED_USER_EMAIL", ""),
			Name:     getEnv("SEED_USER_NAME", ""),
			UserType: getEnv("SEED_USER_TYPE", "advocate"),
			Password: getEnv("SEED_USER_PASSWORD", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
