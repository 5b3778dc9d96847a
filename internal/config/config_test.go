package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/coachflow")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 30*time.Second, c.CacheTTL)
	assert.Equal(t, 100, c.EmailQueueBatch)
	assert.Equal(t, []string{"http://localhost:5173"}, c.AllowedOrigins)
	assert.False(t, c.MailEnabled())
	assert.False(t, c.KommoEnabled())
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "")
	os.Unsetenv("SUPABASE_JWT_SECRET")
	t.Setenv("DATABASE_URL", "postgres://localhost/coachflow")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateBackend(t *testing.T) {
	c := Config{EmailQueueBatch: 10}
	assert.Error(t, c.Validate())

	c.SupabaseURL = "https://x.supabase.co"
	assert.Error(t, c.Validate(), "anon key missing")

	c.SupabaseKey = "anon"
	assert.NoError(t, c.Validate())
}
