package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "SESSION_EXPIRY_HOURS", "CACHE_TTL_SECONDS", "AMQP_EXCHANGE", "SEED_SECRET"} {
		t.Setenv(key, "")
	}

	config, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, 24, config.Session.ExpiryHours)
	assert.Equal(t, time.Minute, config.Redis.CacheTTL)
	assert.Equal(t, "cinema.events", config.Broker.Exchange)
	assert.Empty(t, config.Seed.Secret)
}

func TestLoadConfigFrom_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nDB_NAME=cinema\nSEED_SECRET=from-file\nCACHE_TTL_SECONDS=5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SEED_SECRET", "from-env")
	t.Setenv("PORT", "")

	config, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", config.App.Port)
	assert.Equal(t, "cinema", config.Database.Name)
	assert.Equal(t, "from-env", config.Seed.Secret)
	assert.Equal(t, 5*time.Second, config.Redis.CacheTTL)
}
