package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apierrors "github.com/diogo/routerchat/internal/errors"
)

// EnvAPIKey is the environment variable consulted when no key file exists
const EnvAPIKey = "OPENROUTER_API_KEY"

// Credentials holds the stored OpenRouter API key
type Credentials struct {
	APIKey string `json:"openrouter_api_key"`
}

// GetCredentialsPath returns the path to the credentials file
func GetCredentialsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "credentials.json"), nil
}

// LoadAPIKey resolves the API key: the credentials file first, then the
// OPENROUTER_API_KEY environment variable. There is deliberately no
// embedded fallback; when neither source is set the caller must refuse to
// send and surface the missing-key condition to the user.
func LoadAPIKey() (string, error) {
	credPath, err := GetCredentialsPath()
	if err == nil {
		if data, readErr := os.ReadFile(credPath); readErr == nil {
			var creds Credentials
			if jsonErr := json.Unmarshal(data, &creds); jsonErr != nil {
				return "", fmt.Errorf("failed to parse credentials file: %w", jsonErr)
			}
			if key := strings.TrimSpace(creds.APIKey); key != "" {
				return key, nil
			}
		}
	}

	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, nil
	}

	return "", fmt.Errorf("set %s or run 'routerchat auth': %w", EnvAPIKey, apierrors.ErrMissingCredential)
}

// HasAPIKey reports whether a key is configured in any source
func HasAPIKey() bool {
	_, err := LoadAPIKey()
	return err == nil
}

// SaveAPIKey stores the key in the credentials file with owner-only
// permissions
func SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(Credentials{APIKey: key}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	credPath := filepath.Join(configDir, "credentials.json")
	if err := os.WriteFile(credPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

// MaskKey renders a key for display, keeping only a short prefix visible
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:8] + strings.Repeat("*", 8)
}
