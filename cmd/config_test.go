package cmd

import (
	"testing"
	"time"

	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DSN(t *testing.T) {
	c := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "laundry", DBSslMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=laundry sslmode=disable", c.DSN())
}

func TestConfig_KafkaBrokers(t *testing.T) {
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, Config{KafkaHost: " k1:9092, ,k2:9092"}.KafkaBrokers())
	assert.Empty(t, Config{}.KafkaBrokers())
}

func TestConfig_Location(t *testing.T) {
	loc, err := Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = Config{TimeZone: "Asia/Kolkata"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())

	_, err = Config{TimeZone: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}

func TestConfig_PricingPolicy(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		policy, err := Config{}.PricingPolicy()

		require.NoError(t, err)
		assert.True(t, policy.TaxRate.Equal(decimal.RequireFromString("0.18")))
		assert.True(t, policy.DeliveryCharge.Equal(decimal.NewFromInt(40)))
	})

	t.Run("overrides", func(t *testing.T) {
		policy, err := Config{TaxRate: "0.05", DeliveryCharge: "25.50"}.PricingPolicy()

		require.NoError(t, err)
		assert.True(t, policy.TaxRate.Equal(decimal.RequireFromString("0.05")))
		assert.True(t, policy.DeliveryCharge.Equal(decimal.RequireFromString("25.5")))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Config{TaxRate: "abc"}.PricingPolicy()
		assert.Error(t, err)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := Config{DeliveryCharge: "-1"}.PricingPolicy()
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
