package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	// Exchange rates
	BaseCurrency         string
	RateSourceURL        string
	RateFreshnessWindow  time.Duration
	RateStalenessCeiling time.Duration
	RateFetchTimeout     time.Duration
	// RateRefreshIntervalMinutes of 0 disables the background refresh job.
	RateRefreshIntervalMinutes uint64

	// LocalStorePath is the leveldb directory; empty keeps everything in memory.
	LocalStorePath string

	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "revenue-split-app")
	v.SetDefault("BASE_CURRENCY", "GBP")
	v.SetDefault("RATE_SOURCE_URL", "https://api.exchangerate-api.com/v4/latest")
	v.SetDefault("RATE_FRESHNESS_WINDOW", "10m")
	v.SetDefault("RATE_STALENESS_CEILING", "24h")
	v.SetDefault("RATE_FETCH_TIMEOUT", "10s")
	v.SetDefault("RATE_REFRESH_INTERVAL_MINUTES", 30)
	v.SetDefault("LOCAL_STORE_PATH", "data/localstore")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Split configuration will be kept in memory.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	// The whole rate table is expressed against this one currency.
	cfg.BaseCurrency = strings.ToUpper(v.GetString("BASE_CURRENCY"))
	if cfg.BaseCurrency != "GBP" {
		log.Printf("Warning: BASE_CURRENCY '%s' is not supported. Defaulting to GBP.\n", cfg.BaseCurrency)
		cfg.BaseCurrency = "GBP"
	}

	cfg.RateSourceURL = strings.TrimRight(v.GetString("RATE_SOURCE_URL"), "/")
	cfg.RateFreshnessWindow = parseDurationOr(v, "RATE_FRESHNESS_WINDOW", 10*time.Minute)
	cfg.RateStalenessCeiling = parseDurationOr(v, "RATE_STALENESS_CEILING", 24*time.Hour)
	cfg.RateFetchTimeout = parseDurationOr(v, "RATE_FETCH_TIMEOUT", 10*time.Second)
	cfg.RateRefreshIntervalMinutes = v.GetUint64("RATE_REFRESH_INTERVAL_MINUTES")

	cfg.LocalStorePath = v.GetString("LOCAL_STORE_PATH")

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg
}

// parseDurationOr reads key as a duration string ("10m", "24h"), falling back on bad input.
func parseDurationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
