package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFailurePolicy(t *testing.T) {
	assert.Equal(t, FailurePolicyStrict, ParseFailurePolicy(""))
	assert.Equal(t, FailurePolicyStrict, ParseFailurePolicy("strict"))
	assert.Equal(t, FailurePolicyLenient, ParseFailurePolicy(" Lenient "))
	assert.Equal(t, FailurePolicyStrict, ParseFailurePolicy("yolo"))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://localhost/bizledger")
	t.Setenv("INVENTORY_FAILURE_POLICY", "lenient")
	t.Setenv("INVENTORY_ACCOUNT_CODE", "1450")
	t.Setenv("EXPENSE_ACCOUNT_CODE", "6100")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("OVERDUE_SWEEP_INTERVAL", "15m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/bizledger", cfg.DatabaseURL)
	assert.Equal(t, FailurePolicyLenient, cfg.InventoryFailurePolicy)
	assert.Equal(t, "1450", cfg.PostingAccounts.InventoryCode)
	assert.Equal(t, "6100", cfg.PostingAccounts.ExpenseCode)
	assert.Equal(t, "1300", cfg.PostingAccounts.TaxCode)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 15*time.Minute, cfg.OverdueSweepInterval)
}

func TestLoadConfigBadSweepInterval(t *testing.T) {
	t.Setenv("OVERDUE_SWEEP_INTERVAL", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.OverdueSweepInterval)
}
