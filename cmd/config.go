package cmd

import (
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort      string
	HTTPRateLimit float64

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost               string
	KafkaConsumerGroup      string
	KafkaOrderEventsTopic   string
	KafkaDisbursementsTopic string
	RabbitMQURL             string
	RabbitMQExchange        string
	OutboxBatchSize         int
	TimeZone                string
	TaxRate                 string
	DeliveryCharge          string
}

// DSN returns the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits the comma separated broker list.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Location is the marketplace time zone; schedules and "today" are computed in it.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// PricingPolicy overrides the default tax rate and delivery charge when set.
func (c Config) PricingPolicy() (order.PricingPolicy, error) {
	policy := order.DefaultPricingPolicy()
	if c.TaxRate != "" {
		rate, err := decimal.NewFromString(c.TaxRate)
		if err != nil {
			return order.PricingPolicy{}, fmt.Errorf("invalid TAX_RATE: %w", err)
		}
		policy.TaxRate = rate
	}
	if c.DeliveryCharge != "" {
		charge, err := decimal.NewFromString(c.DeliveryCharge)
		if err != nil {
			return order.PricingPolicy{}, fmt.Errorf("invalid DELIVERY_CHARGE: %w", err)
		}
		policy.DeliveryCharge = charge
	}
	if err := policy.Validate(); err != nil {
		return order.PricingPolicy{}, err
	}
	return policy, nil
}
