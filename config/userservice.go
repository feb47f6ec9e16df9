package config

import "strings"

// UserServiceConfig contains configuration for the remote user service that
// owns all accounts, credentials, and OTPs.
type UserServiceConfig struct {
	// BaseURL is the root of the user service REST API.
	BaseURL string `env:"USER_SERVICE_BASE_URL" envDefault:"http://localhost:3000"`

	// CountryPrefix is prepended to mobile numbers before they are sent
	// upstream and stripped for display.
	CountryPrefix string `env:"USER_SERVICE_COUNTRY_PREFIX" envDefault:"+91"`
}

// Sanitize applies guardrails to user service configuration values.
func (u *UserServiceConfig) Sanitize() {
	u.BaseURL = strings.TrimRight(strings.TrimSpace(u.BaseURL), "/")
	if u.BaseURL == "" {
		u.BaseURL = "http://localhost:3000"
	}
	u.CountryPrefix = strings.TrimSpace(u.CountryPrefix)
}
