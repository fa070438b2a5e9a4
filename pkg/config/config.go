package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Credential backends understood by CredentialsConfig.Backend.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config is the dashboard server configuration. The listener binds to
// loopback unless HOST says otherwise.
type Config struct {
	Env  string
	Host string
	Port int

	API         APIConfig
	Credentials CredentialsConfig
	Redis       RedisConfig
	CORS        CORSConfig
	Log         LogConfig
	Metrics     MetricsConfig
}

// APIConfig describes the remote education platform API.
type APIConfig struct {
	BaseURL       string
	SocketBaseURL string
	Timeout       time.Duration
	AdminPrefix   string
	RefreshPath   string
	LoginRoute    string
	LoginOrigin   string
}

// CredentialsConfig selects where access and refresh tokens are persisted.
type CredentialsConfig struct {
	Backend      string
	DSN          string
	RedisPrefix  string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Host = strings.TrimSpace(v.GetString("HOST"))
	cfg.Port = v.GetInt("PORT")

	cfg.API = APIConfig{
		BaseURL:       strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		SocketBaseURL: strings.TrimRight(v.GetString("SOCKET_BASE_URL"), "/"),
		Timeout:       parseDuration(v.GetString("API_TIMEOUT"), 15*time.Second),
		AdminPrefix:   normalizePath(v.GetString("API_ADMIN_PREFIX")),
		RefreshPath:   normalizePath(v.GetString("API_REFRESH_PATH")),
		LoginRoute:    normalizePath(v.GetString("LOGIN_ROUTE")),
		LoginOrigin:   v.GetString("LOGIN_ORIGIN"),
	}

	cfg.Credentials = CredentialsConfig{
		Backend:      strings.ToLower(strings.TrimSpace(v.GetString("CREDENTIALS_BACKEND"))),
		DSN:          v.GetString("CREDENTIALS_DSN"),
		RedisPrefix:  v.GetString("CREDENTIALS_REDIS_PREFIX"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("HOST", "127.0.0.1")
	v.SetDefault("PORT", 8090)

	v.SetDefault("API_BASE_URL", "https://suvashedu.com/api")
	v.SetDefault("SOCKET_BASE_URL", "https://suvashedu.com")
	v.SetDefault("API_TIMEOUT", "15s")
	v.SetDefault("API_ADMIN_PREFIX", "/admin")
	v.SetDefault("API_REFRESH_PATH", "/auth/refresh")
	v.SetDefault("LOGIN_ROUTE", "/login")
	v.SetDefault("LOGIN_ORIGIN", "examapp")

	v.SetDefault("CREDENTIALS_BACKEND", BackendSQLite)
	v.SetDefault("CREDENTIALS_DSN", "./data/credentials.db")
	v.SetDefault("CREDENTIALS_REDIS_PREFIX", "suvashpanel:credentials:")
	v.SetDefault("DB_MAX_OPEN_CONNS", 4)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// normalizePath guarantees a single leading slash and no trailing slash.
func normalizePath(raw string) string {
	trimmed := strings.Trim(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}
