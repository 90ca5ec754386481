package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("CURRENCY_RATE", "")
	t.Setenv("SESSION_TTL_SECONDS", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 1.0, cfg.Currency.Rate)
	assert.Equal(t, "USD", cfg.Currency.Code)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CURRENCY_RATE", "83")
	t.Setenv("CURRENCY_CODE", "INR")
	t.Setenv("BCRYPT_COST", "4")

	cfg := Load()

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 83.0, cfg.Currency.Rate)
	assert.Equal(t, "INR", cfg.Currency.Code)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
}

func TestLoadRejectsNonPositiveRate(t *testing.T) {
	t.Setenv("CURRENCY_RATE", "-2")

	cfg := Load()

	assert.Equal(t, 1.0, cfg.Currency.Rate)
}
