package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvDurationAcceptsSecondsAndDurations(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "90s")
	assert.Equal(t, 90*time.Second, getEnvDuration("TEST_TIMEOUT", time.Second))

	t.Setenv("TEST_TIMEOUT", "15")
	assert.Equal(t, 15*time.Second, getEnvDuration("TEST_TIMEOUT", time.Second))

	t.Setenv("TEST_TIMEOUT", "soon")
	assert.Equal(t, time.Second, getEnvDuration("TEST_TIMEOUT", time.Second))
}

func TestGetEnvBoolFallsBackOnGarbage(t *testing.T) {
	t.Setenv("TEST_FLAG", "false")
	assert.False(t, getEnvBool("TEST_FLAG", true))

	t.Setenv("TEST_FLAG", "maybe")
	assert.True(t, getEnvBool("TEST_FLAG", true))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("RECONCILE_OPTIMISTIC_FALLBACK", "")
	LoadConfig()

	assert.Equal(t, "3000", AppConfig.Port)
	assert.True(t, AppConfig.OptimisticFallback)
	assert.Equal(t, "*/5 * * * *", AppConfig.ReconcileCron)
	assert.False(t, AppConfig.IsProduction())
}
