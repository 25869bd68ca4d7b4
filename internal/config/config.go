// ABOUTME: Credential configuration for the Beeminder API.
// ABOUTME: Loads username and API key from the environment at startup.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Credentials holds the authenticated username and API key. It is built
// once at process start and never mutated; the api client and CLI borrow
// it read-only.
type Credentials struct {
	APIKey   string `env:"BEEMINDER_API_KEY,required,notEmpty"`
	Username string `env:"BEEMINDER_USERNAME,required,notEmpty"`

	// BaseURL overrides the production endpoint. Only tests and staging
	// setups need it.
	BaseURL string `env:"BEEMINDER_API_URL"`
}

// Load reads credentials from the environment. A missing variable is a
// fatal configuration error for the caller; nothing else is touched.
func Load() (Credentials, error) {
	var creds Credentials
	if err := env.Parse(&creds); err != nil {
		return Credentials{}, fmt.Errorf("beeminder credentials: %w", err)
	}
	return creds, nil
}
