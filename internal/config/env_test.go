package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFrom_Defaults(t *testing.T) {
	env, err := LoadEnvFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, "memory", env.DataSource)
	assert.Equal(t, "memory", env.SessionBackend)
	assert.Equal(t, "Asia/Jakarta", env.Timezone)
	assert.Equal(t, 10*time.Second, env.SearchTimeout)
	assert.Equal(t, 2*time.Hour, env.SessionTTL)
	assert.Equal(t, "simple", env.PassengerPolicy)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, env.CORSOrigins)
}

func TestLoadEnvFrom_Overrides(t *testing.T) {
	t.Setenv("DATA_SOURCE", "MySQL")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("SEARCH_TIMEOUT", "3s")
	t.Setenv("PASSENGER_POLICY", "flexible")

	env, err := LoadEnvFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "mysql", env.DataSource)
	assert.Equal(t, "redis", env.SessionBackend)
	assert.Equal(t, 3*time.Second, env.SearchTimeout)
	assert.Equal(t, "flexible", env.PassengerPolicy)
	assert.Contains(t, env.DB.DSN(), "@tcp(db.internal:3307)/shiptix?parseTime=true")
}

func TestLoadEnvFrom_RejectsUnknownDataSource(t *testing.T) {
	t.Setenv("DATA_SOURCE", "postgres")

	_, err := LoadEnvFrom(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATA_SOURCE")
}

func TestLoadEnvFrom_RejectsBadTimezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := LoadEnvFrom(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_TIMEZONE")
}
