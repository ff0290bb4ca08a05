package infra

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Credentials holds the exchange API credentials. The calculation core
// does not use them today; they are resolved for the collaborators that
// will authenticate private endpoints.
type Credentials struct {
	APIKey     string `json:"api_key"`
	APISecret  string `json:"api_secret"`
	Passphrase string `json:"api_passphrase"`
}

const credentialsFile = "config.json"

// LoadCredentials resolves credentials environment-first
// (OKX_API_KEY/OKX_API_SECRET/OKX_API_PASSPHRASE), falling back to a
// config.json in the platform config directory. Missing values stay
// empty; absence is not an error.
func LoadCredentials() Credentials {
	creds := loadCredentialsFile()

	if v := os.Getenv("OKX_API_KEY"); v != "" {
		creds.APIKey = v
	}
	if v := os.Getenv("OKX_API_SECRET"); v != "" {
		creds.APISecret = v
	}
	if v := os.Getenv("OKX_API_PASSPHRASE"); v != "" {
		creds.Passphrase = v
	}
	return creds
}

func loadCredentialsFile() Credentials {
	var creds Credentials

	configDir, err := os.UserConfigDir()
	if err != nil {
		return creds
	}

	data, err := os.ReadFile(filepath.Join(configDir, "QuantCost", credentialsFile))
	if err != nil {
		return creds
	}

	// Malformed file behaves like a missing one.
	_ = json.Unmarshal(data, &creds)
	return creds
}
