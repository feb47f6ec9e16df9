package config

import "time"

// RedisConfig contains Redis connection configuration for the session store.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// SessionConfig contains server-side session configuration.
type SessionConfig struct {
	// TTL is the server-side lifetime of a session. The cookie itself is a
	// browser-session cookie; this bounds how long the marker stays valid.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 30 * time.Minute
	}
}
