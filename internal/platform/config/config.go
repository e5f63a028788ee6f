package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FailurePolicy controls what happens when an inventory or journal side effect of a
// bill transition fails.
type FailurePolicy string

const (
	// FailurePolicyStrict rolls the whole business event back.
	FailurePolicyStrict FailurePolicy = "strict"
	// FailurePolicyLenient logs the failure, discards the side effect and keeps the bill change.
	FailurePolicyLenient FailurePolicy = "lenient"
)

// PostingAccounts holds the account codes (CFIDs) used for automatic postings.
// They are resolved per workplace at posting time.
type PostingAccounts struct {
	InventoryCode       string
	AccountsPayableCode string
	CashCode            string
	ExpenseCode         string // non-stock bill lines and return price variances
	TaxCode             string // purchase tax on bills
}

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	CORSAllowedOrigins []string
	RateLimit          string
	RedisURL           string

	InventoryFailurePolicy FailurePolicy
	PostingAccounts        PostingAccounts
	OverdueSweepInterval   time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "bizledger")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("INVENTORY_FAILURE_POLICY", string(FailurePolicyStrict))
	viper.SetDefault("INVENTORY_ACCOUNT_CODE", "1400")
	viper.SetDefault("ACCOUNTS_PAYABLE_ACCOUNT_CODE", "2000")
	viper.SetDefault("CASH_ACCOUNT_CODE", "1000")
	viper.SetDefault("EXPENSE_ACCOUNT_CODE", "5000")
	viper.SetDefault("PURCHASE_TAX_ACCOUNT_CODE", "1300")
	viper.SetDefault("OVERDUE_SWEEP_INTERVAL", "1h")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.RedisURL = viper.GetString("REDIS_URL")

	cfg.InventoryFailurePolicy = ParseFailurePolicy(viper.GetString("INVENTORY_FAILURE_POLICY"))

	cfg.PostingAccounts = PostingAccounts{
		InventoryCode:       viper.GetString("INVENTORY_ACCOUNT_CODE"),
		AccountsPayableCode: viper.GetString("ACCOUNTS_PAYABLE_ACCOUNT_CODE"),
		CashCode:            viper.GetString("CASH_ACCOUNT_CODE"),
		ExpenseCode:         viper.GetString("EXPENSE_ACCOUNT_CODE"),
		TaxCode:             viper.GetString("PURCHASE_TAX_ACCOUNT_CODE"),
	}

	sweepStr := viper.GetString("OVERDUE_SWEEP_INTERVAL")
	sweep, err := time.ParseDuration(sweepStr)
	if err != nil || sweep <= 0 {
		sweep = time.Hour
		log.Printf("Warning: Invalid value for OVERDUE_SWEEP_INTERVAL ('%s'). Defaulting to %s.\n", sweepStr, sweep.String())
	}
	cfg.OverdueSweepInterval = sweep

	return cfg, nil
}

// ParseFailurePolicy maps a config string to a FailurePolicy, falling back to strict.
func ParseFailurePolicy(s string) FailurePolicy {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case FailurePolicyLenient:
		return FailurePolicyLenient
	case FailurePolicyStrict, "":
		return FailurePolicyStrict
	default:
		log.Printf("Warning: Unknown INVENTORY_FAILURE_POLICY ('%s'). Defaulting to %s.\n", s, FailurePolicyStrict)
		return FailurePolicyStrict
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
