package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	s := Load()

	assert.Equal(t, "0.0.0.0:8000", s.Addr())
	assert.Equal(t, 60*time.Minute, s.SessionTTL)
	assert.Contains(t, s.CORSOrigins, "http://localhost:3000")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("SESSION_EXPIRE_MINUTES", "15")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")

	s := Load()

	assert.Equal(t, "0.0.0.0:9090", s.Addr())
	assert.Equal(t, "redis://cache:6379/2", s.RedisURL)
	assert.Equal(t, 15*time.Minute, s.SessionTTL)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, s.CORSOrigins)
}

func TestLoadEmptyRedisURLSelectsMemoryMode(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	assert.Empty(t, Load().RedisURL, "an explicitly empty REDIS_URL must survive Load")
}

func TestLoadIgnoresBadTTL(t *testing.T) {
	t.Setenv("SESSION_EXPIRE_MINUTES", "not-a-number")
	assert.Equal(t, 60*time.Minute, Load().SessionTTL)
}
