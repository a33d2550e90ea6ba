package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "rentd-cli"
)

// ErrNoToken is returned when no credential is stored for a server.
var ErrNoToken = errors.New("not authenticated. Please run 'rentd login' first")

// getKeyringKey returns a unique key for storing bearer tokens per server
func getKeyringKey(server string) string {
	return fmt.Sprintf("jwt-%s", server)
}

// SaveToken persists the bearer token securely in the OS keychain/credential manager
func SaveToken(server, token string) error {
	key := getKeyringKey(server)
	if err := keyring.Set(service, key, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// LoadToken retrieves the bearer token from the OS keychain/credential manager
func LoadToken(server string) (string, error) {
	key := getKeyringKey(server)
	token, err := keyring.Get(service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// DeleteToken removes the bearer token from the OS keychain/credential manager.
// Deleting a token that does not exist is not an error.
func DeleteToken(server string) error {
	key := getKeyringKey(server)
	if err := keyring.Delete(service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
