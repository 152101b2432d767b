package auth

import (
	"os"
	"time"
)

// Environment variables read by EnvironmentStore
const (
	EnvSession   = "LEETDL_SESSION"
	EnvCSRFToken = "LEETDL_CSRFTOKEN"
	EnvUsername  = "LEETDL_USERNAME"
)

// EnvironmentStore implements CredentialStore using environment variables.
// It is read-only.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(account *Account) error {
	return ErrStoreUnavailable
}

// Retrieve gets credentials from environment variables. An empty username
// matches whatever account the environment describes.
func (e *EnvironmentStore) Retrieve(username string) (*Account, error) {
	session := os.Getenv(EnvSession)
	csrfToken := os.Getenv(EnvCSRFToken)
	if session == "" || csrfToken == "" {
		return nil, ErrCredentialsNotFound
	}

	envUser := os.Getenv(EnvUsername)
	if envUser == "" {
		envUser = "default"
	}
	if username != "" && username != envUser {
		return nil, ErrCredentialsNotFound
	}

	return &Account{
		Username:     envUser,
		Session:      session,
		CSRFToken:    csrfToken,
		LastModified: time.Now(),
	}, nil
}

// List returns a single account if environment variables are set
func (e *EnvironmentStore) List() ([]*Account, error) {
	account, err := e.Retrieve("")
	if err != nil {
		return []*Account{}, nil
	}
	return []*Account{account}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(username string) error {
	return ErrStoreUnavailable
}

// Exists checks if environment credentials exist
func (e *EnvironmentStore) Exists(username string) bool {
	_, err := e.Retrieve(username)
	return err == nil
}
