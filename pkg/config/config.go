package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string

	// Ledger bootstrap
	SupportedCurrencies []string
	ReserveSeedBalance  decimal.Decimal
	AdminEmail          string
	AdminPassword       string

	// Optional event broker. Publishing is disabled when no brokers are set.
	KafkaBrokers []string

	// Rate limit in ulule/limiter formatted notation, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "ledger-api")
	viper.SetDefault("SUPPORTED_CURRENCIES", "USD,EUR,NGN")
	viper.SetDefault("RESERVE_SEED_BALANCE", "1000000")
	viper.SetDefault("ADMIN_EMAIL", "admin@ledger.local")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry.String())
	}
	cfg.JWTExpiry = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.SupportedCurrencies = splitAndTrim(viper.GetString("SUPPORTED_CURRENCIES"))
	for i, code := range cfg.SupportedCurrencies {
		cfg.SupportedCurrencies[i] = strings.ToUpper(code)
	}
	if len(cfg.SupportedCurrencies) == 0 {
		cfg.SupportedCurrencies = []string{"USD"}
		log.Println("Warning: SUPPORTED_CURRENCIES empty. Defaulting to USD.")
	}

	seedBalanceStr := viper.GetString("RESERVE_SEED_BALANCE")
	seedBalance, err := decimal.NewFromString(seedBalanceStr)
	if err != nil || seedBalance.IsNegative() {
		seedBalance = decimal.NewFromInt(1000000)
		log.Printf("Warning: Invalid value for RESERVE_SEED_BALANCE ('%s'). Defaulting to %s.\n", seedBalanceStr, seedBalance.String())
	}
	cfg.ReserveSeedBalance = seedBalance

	cfg.AdminEmail = viper.GetString("ADMIN_EMAIL")
	cfg.AdminPassword = viper.GetString("ADMIN_PASSWORD")

	cfg.KafkaBrokers = splitAndTrim(viper.GetString("KAFKA_BROKERS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
