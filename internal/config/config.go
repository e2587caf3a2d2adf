package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings is the environment-driven configuration of the backend.
// Load a local .env with godotenv before calling Load in dev.
type Settings struct {
	Host string
	Port string

	// RedisURL selects the durable room store. Leave it empty to run
	// with the in-memory store instead (single-process dev mode).
	RedisURL string

	PostgresDSN string

	TurnServerURL  string
	TurnUsername   string
	TurnCredential string

	PersonaFetcherURL string

	CORSOrigins []string

	// SessionTTL is the default room lifetime when a create request
	// does not carry its own ttlMinutes.
	SessionTTL time.Duration
}

// Load reads settings from the environment, falling back to dev defaults.
func Load() Settings {
	return Settings{
		Host:              getEnv("HOST", "0.0.0.0"),
		Port:              getEnv("PORT", "8000"),
		RedisURL:          lookupEnv("REDIS_URL", "redis://localhost:6379"),
		PostgresDSN:       getEnv("POSTGRES_DSN", "host=localhost user=user password=password dbname=companioncall port=5432 sslmode=disable"),
		TurnServerURL:     getEnv("TURN_SERVER_URL", "turn:global.turn.twilio.com:3478"),
		TurnUsername:      getEnv("TURN_USERNAME", ""),
		TurnCredential:    getEnv("TURN_CREDENTIAL", ""),
		PersonaFetcherURL: getEnv("PERSONA_FETCHER_API_URL", "https://persona-fetcher-api.up.railway.app/personas"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		SessionTTL:        time.Duration(getEnvInt("SESSION_EXPIRE_MINUTES", 60)) * time.Minute,
	}
}

// Addr is the listen address for the HTTP server.
func (s Settings) Addr() string { return s.Host + ":" + s.Port }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// lookupEnv defaults only when the variable is unset; an explicitly-set
// empty value passes through. REDIS_URL="" is how the in-memory room
// store is selected.
func lookupEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return def
}

func splitCSV(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
