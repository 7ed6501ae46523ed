package config

import (
	"log"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StoreDriver    string
	MigrationsPath string

	// Posting and digest
	BalanceTolerance     decimal.Decimal
	UseClosingEntries    bool
	ClosingEntryCacheTTL time.Duration

	// Blueprints and cursors
	BlueprintPrecision int32
	CursorMode         domain.CursorMode
	BlueprintsPath     string
	ChartSeedPath      string

	// HTTP
	RateLimit          string
	CORSAllowedOrigins []string

	// Analytics
	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("BALANCE_TOLERANCE", "0.02")
	viper.SetDefault("USE_CLOSING_ENTRIES", true)
	viper.SetDefault("CLOSING_ENTRY_CACHE_TTL", "30s")
	viper.SetDefault("BLUEPRINT_PRECISION", domain.DefaultBlueprintPrecision)
	viper.SetDefault("CURSOR_MODE", string(domain.CursorPermissive))
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("CHART_SEED_PATH", "configs/default_chart.yaml")
	viper.SetDefault("BLUEPRINTS_PATH", "configs/blueprints.yaml")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	// Environment variables override the defaults and the .env values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.StoreDriver = strings.ToLower(viper.GetString("STORE_DRIVER"))
	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StoreDriverMemory:
	default:
		log.Printf("Warning: Invalid value for STORE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StoreDriver, StoreDriverPostgres)
		cfg.StoreDriver = StoreDriverPostgres
	}
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	toleranceStr := viper.GetString("BALANCE_TOLERANCE")
	tolerance, err := decimal.NewFromString(toleranceStr)
	if err != nil || tolerance.IsNegative() {
		tolerance = decimal.RequireFromString("0.02")
		log.Printf("Warning: Invalid value for BALANCE_TOLERANCE ('%s'). Defaulting to %s.\n", toleranceStr, tolerance.String())
	}
	cfg.BalanceTolerance = tolerance

	cfg.UseClosingEntries = viper.GetBool("USE_CLOSING_ENTRIES")

	ttlStr := viper.GetString("CLOSING_ENTRY_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl < 0 {
		ttl = 30 * time.Second
		log.Printf("Warning: Invalid value for CLOSING_ENTRY_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
	}
	cfg.ClosingEntryCacheTTL = ttl

	precision := viper.GetInt("BLUEPRINT_PRECISION")
	if precision < 0 || precision > 8 {
		log.Printf("Warning: Invalid value for BLUEPRINT_PRECISION (%d). Defaulting to %d.\n", precision, domain.DefaultBlueprintPrecision)
		precision = int(domain.DefaultBlueprintPrecision)
	}
	cfg.BlueprintPrecision = int32(precision)

	cfg.CursorMode = domain.CursorMode(strings.ToLower(viper.GetString("CURSOR_MODE")))
	if !cfg.CursorMode.IsValid() {
		log.Printf("Warning: Invalid value for CURSOR_MODE ('%s'). Defaulting to %s.\n", cfg.CursorMode, domain.CursorPermissive)
		cfg.CursorMode = domain.CursorPermissive
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.ChartSeedPath = viper.GetString("CHART_SEED_PATH")
	cfg.BlueprintsPath = viper.GetString("BLUEPRINTS_PATH")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
