package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDecimalCodecRoundTrip(t *testing.T) {
	type doc struct {
		Price decimal.Decimal `bson:"price"`
	}
	reg := NewRegistry()

	raw, err := bson.MarshalWithRegistry(reg, doc{Price: decimal.RequireFromString("1725.50")})
	require.NoError(t, err)

	var out doc
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, out.Price.Equal(decimal.RequireFromString("1725.5")), "got %s", out.Price)
}

func TestDecimalCodecReadsLegacyDoubles(t *testing.T) {
	type doc struct {
		Price decimal.Decimal `bson:"price"`
	}
	reg := NewRegistry()

	raw, err := bson.Marshal(bson.M{"price": 12.5})
	require.NoError(t, err)

	var out doc
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, out.Price.Equal(decimal.RequireFromString("12.5")))
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("PAYMENT_CURRENCY", "inr")
	t.Setenv("JWT_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "INR", cfg.PaymentCurrency)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 5, cfg.LoginRateLimitMax)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PORT: \"9090\"\nJWT_SECRET: fromfile\nSTORE_DRIVER: memory\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "fromfile", cfg.JWTSecret)
}

func TestValidate(t *testing.T) {
	assert.Error(t, Config{StoreDriver: DriverMemory}.Validate())
	assert.Error(t, Config{JWTSecret: "x", StoreDriver: "redis"}.Validate())
	assert.NoError(t, Config{JWTSecret: "x", StoreDriver: DriverMemory}.Validate())
}

func TestAllowedOrigins(t *testing.T) {
	assert.Equal(t, "http://localhost", Config{}.AllowedOrigins())
	assert.Equal(t, "http://localhost,https://shop.example", Config{FrontendURL: "https://shop.example"}.AllowedOrigins())
}
