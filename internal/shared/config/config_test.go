package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, 5*time.Second, cfg.Booking.TxTimeout)
	assert.False(t, cfg.NotificationsEnabled())
	assert.Contains(t, cfg.Database.DSN, "dbname=gatherly_db")
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BOOKING_TX_TIMEOUT", "2s")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.GetServerAddress())
	assert.Equal(t, 2*time.Second, cfg.Booking.TxTimeout)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.NotificationsEnabled())
	assert.False(t, cfg.RateLimit.Enabled)
}
