package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Freshservice FreshserviceConfig
	Rules        RulesConfig
	Redis        RedisConfig
	Logger       LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// FreshserviceConfig holds outbound helpdesk API settings.
type FreshserviceConfig struct {
	// Mode selects which subdomain is used: staging or production.
	Mode             string
	Subdomain        string
	StagingSubdomain string
	APIKey           string
	PerPage          int
	MaxRetries       int
	TimeWaitMillis   int
	TimeoutSeconds   int
}

// RulesConfig locates the score rule table.
type RulesConfig struct {
	// Dir is the fixed configuration directory rule files resolve against.
	Dir string
	// File is the rule table file name; path segments are stripped at load.
	File string
	// LegacyShape selects the reduced-key compatibility loader.
	LegacyShape bool
}

// RedisConfig holds Redis connection values for the snapshot cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-triage"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 120),
		},
		Freshservice: FreshserviceConfig{
			Mode:             getEnv("FRESHSERVICE_MODE", "production"),
			Subdomain:        os.Getenv("FRESHSERVICE_SUBDOMAIN"),
			StagingSubdomain: os.Getenv("FRESHSERVICE_STAGING_SUBDOMAIN"),
			APIKey:           os.Getenv("FRESHSERVICE_API_KEY"),
			PerPage:        getEnvAsInt("FRESHSERVICE_PER_PAGE", 100),
			MaxRetries:     getEnvAsInt("FRESHSERVICE_MAX_RETRIES", 2),
			TimeWaitMillis: getEnvAsInt("FRESHSERVICE_TIME_WAIT_MS", 200),
			TimeoutSeconds: getEnvAsInt("FRESHSERVICE_TIMEOUT_SECONDS", 30),
		},
		Rules: RulesConfig{
			Dir:         getEnv("RULES_DIR", "static/assets/config"),
			File:        getEnv("RULES_FILE", "score_map.csv"),
			LegacyShape: getEnvAsBool("RULES_LEGACY_SHAPE", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ActiveSubdomain returns the helpdesk subdomain for the configured mode.
func (f FreshserviceConfig) ActiveSubdomain() string {
	if f.Mode == "staging" && f.StagingSubdomain != "" {
		return f.StagingSubdomain
	}
	return f.Subdomain
}

// RequestTimeout returns the outbound HTTP timeout duration.
func (f FreshserviceConfig) RequestTimeout() time.Duration {
	if f.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// TimeWait returns the pause between paginated API calls.
func (f FreshserviceConfig) TimeWait() time.Duration {
	if f.TimeWaitMillis <= 0 {
		return 0
	}
	return time.Duration(f.TimeWaitMillis) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
