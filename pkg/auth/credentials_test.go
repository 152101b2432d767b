package auth

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"leetdl/pkg/config"
)

func TestCredentialManager(t *testing.T) {
	manager, mockStore := NewMockManager()

	account := &Account{
		Username:  "testuser",
		Session:   "test_session_12345",
		CSRFToken: "test_csrf_token_67890",
	}

	if err := manager.Store(account); err != nil {
		t.Fatalf("Failed to store account: %v", err)
	}
	if account.LastModified.IsZero() {
		t.Error("Store should stamp LastModified")
	}

	retrieved, err := manager.Retrieve("testuser")
	if err != nil {
		t.Fatalf("Failed to retrieve account: %v", err)
	}
	if retrieved.Session != account.Session {
		t.Errorf("Session mismatch: got %s, want %s", retrieved.Session, account.Session)
	}
	if retrieved.CSRFToken != account.CSRFToken {
		t.Errorf("CSRFToken mismatch: got %s, want %s", retrieved.CSRFToken, account.CSRFToken)
	}

	accounts, err := manager.List()
	if err != nil {
		t.Fatalf("Failed to list accounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Errorf("Expected 1 account, got %d", len(accounts))
	}

	if err := manager.Delete("testuser"); err != nil {
		t.Errorf("Failed to delete account: %v", err)
	}
	if _, err := manager.Retrieve("testuser"); !errors.Is(err, ErrCredentialsNotFound) {
		t.Errorf("Expected ErrCredentialsNotFound, got %v", err)
	}
	if mockStore.Count() != 0 {
		t.Errorf("Expected 0 accounts after deletion, got %d", mockStore.Count())
	}
}

func TestManagerStoreValidation(t *testing.T) {
	manager, _ := NewMockManager()

	tests := []struct {
		name    string
		account *Account
	}{
		{"no username", &Account{Session: "s", CSRFToken: "c"}},
		{"no session", &Account{Username: "u", CSRFToken: "c"}},
		{"no csrf", &Account{Username: "u", Session: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := manager.Store(tt.account); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestManagerFallsBackToNextStore(t *testing.T) {
	broken := NewMockStore()
	broken.StoreError = fmt.Errorf("keychain locked")
	working := NewMockStore()

	manager := NewManagerWithStores(broken, working)
	if err := manager.Store(&Account{Username: "u", Session: "s", CSRFToken: "c"}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if !working.Exists("u") {
		t.Error("Account should land in the second store")
	}
}

func TestManagerListSortedAndNewestWins(t *testing.T) {
	older := NewMockStore()
	newer := NewMockStore()
	now := time.Now()

	_ = older.Store(&Account{Username: "zed", Session: "z", LastModified: now})
	_ = older.Store(&Account{Username: "amy", Session: "old", LastModified: now.Add(-time.Hour)})
	_ = newer.Store(&Account{Username: "amy", Session: "new", LastModified: now})

	accounts, err := NewManagerWithStores(older, newer).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].Username != "amy" || accounts[1].Username != "zed" {
		t.Errorf("Accounts not sorted: %s, %s", accounts[0].Username, accounts[1].Username)
	}
	if accounts[0].Session != "new" {
		t.Errorf("Expected newest entry to win, got %s", accounts[0].Session)
	}
}

func TestRetrieveDefault(t *testing.T) {
	t.Setenv(EnvSession, "")
	t.Setenv(EnvCSRFToken, "")

	store := NewMockStore()
	manager := NewManagerWithStores(store, NewEnvironmentStore())

	if _, err := manager.RetrieveDefault(); !errors.Is(err, ErrCredentialsNotFound) {
		t.Errorf("Expected ErrCredentialsNotFound, got %v", err)
	}

	now := time.Now()
	_ = store.Store(&Account{Username: "first", Session: "1", CSRFToken: "1", LastModified: now.Add(-time.Minute)})
	_ = store.Store(&Account{Username: "second", Session: "2", CSRFToken: "2", LastModified: now})

	account, err := manager.RetrieveDefault()
	if err != nil {
		t.Fatalf("RetrieveDefault failed: %v", err)
	}
	if account.Username != "second" {
		t.Errorf("Expected most recent account, got %s", account.Username)
	}

	t.Setenv(EnvSession, "env_session")
	t.Setenv(EnvCSRFToken, "env_csrf")
	account, err = manager.RetrieveDefault()
	if err != nil {
		t.Fatalf("RetrieveDefault failed: %v", err)
	}
	if account.Session != "env_session" {
		t.Errorf("Environment should take precedence, got %s", account.Session)
	}
}

func TestSanitizeAndApply(t *testing.T) {
	account := &Account{
		Username:  "user",
		Session:   "eyJhbGciOiJIUzI1NiJ9.payload",
		CSRFToken: "abcdefghijklmnop",
	}

	sanitized := SanitizeAccount(account)
	if sanitized.Session == account.Session || sanitized.CSRFToken == account.CSRFToken {
		t.Error("Cookies should be masked")
	}
	if sanitized.Username != account.Username {
		t.Error("Username should not be masked")
	}
	if SanitizeAccount(nil) != nil {
		t.Error("Sanitizing nil should return nil")
	}

	cfg := config.DefaultConfig()
	account.Apply(cfg)
	if cfg.LeetCodeSession != account.Session || cfg.CSRFToken != account.CSRFToken {
		t.Error("Apply should copy both cookies into the config")
	}
}

func TestEncryptedFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")

	store, err := NewEncryptedFileStoreWithPassphrase(path, "test_passphrase_123")
	if err != nil {
		t.Fatalf("Failed to create encrypted store: %v", err)
	}

	account := &Account{
		Username:  "encrypted_user",
		Session:   "encrypted_session",
		CSRFToken: "encrypted_csrf",
	}
	if err := store.Store(account); err != nil {
		t.Fatalf("Failed to store in encrypted file: %v", err)
	}

	retrieved, err := store.Retrieve("encrypted_user")
	if err != nil {
		t.Fatalf("Failed to retrieve from encrypted file: %v", err)
	}
	if retrieved.Session != account.Session {
		t.Errorf("Session mismatch after encryption/decryption")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(content, []byte("encrypted_session")) {
		t.Error("File contains plaintext session")
	}
	if bytes.Contains(content, []byte("encrypted_csrf")) {
		t.Error("File contains plaintext CSRF token")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}

	other, _ := NewEncryptedFileStoreWithPassphrase(path, "wrong")
	if _, err := other.Retrieve("encrypted_user"); !errors.Is(err, ErrWrongPassphrase) {
		t.Errorf("Expected ErrWrongPassphrase, got %v", err)
	}

	if err := store.Delete("encrypted_user"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("File should be removed once the last account is deleted")
	}
}

func TestEncryptedFileStorePassphraseFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvPassphrase, "env_passphrase")

	store, err := NewEncryptedFileStore(filepath.Join(dir, "credentials.enc"))
	if err != nil {
		t.Fatalf("Failed to create encrypted store: %v", err)
	}
	if err := store.Store(&Account{Username: "u", Session: "s", CSRFToken: "c"}); err != nil {
		t.Fatal(err)
	}

	reopened, _ := NewEncryptedFileStoreWithPassphrase(filepath.Join(dir, "credentials.enc"), "env_passphrase")
	if !reopened.Exists("u") {
		t.Error("Store written with the env passphrase should open with it")
	}
	if _, err := os.Stat(filepath.Join(dir, ".passphrase")); !os.IsNotExist(err) {
		t.Error("No passphrase file should be generated when the env var is set")
	}
}

func TestEncryptedFileStoreGeneratedPassphrase(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvPassphrase, "")

	first, err := NewEncryptedFileStore(filepath.Join(dir, "credentials.enc"))
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Store(&Account{Username: "u", Session: "s", CSRFToken: "c"}); err != nil {
		t.Fatal(err)
	}

	second, err := NewEncryptedFileStore(filepath.Join(dir, "credentials.enc"))
	if err != nil {
		t.Fatal(err)
	}
	if !second.Exists("u") {
		t.Error("Generated passphrase should be reused")
	}
}

func TestEnvironmentStore(t *testing.T) {
	t.Setenv(EnvSession, "env_session")
	t.Setenv(EnvCSRFToken, "env_csrf")
	t.Setenv(EnvUsername, "")

	store := NewEnvironmentStore()

	account, err := store.Retrieve("")
	if err != nil {
		t.Fatalf("Failed to retrieve from environment: %v", err)
	}
	if account.Username != "default" {
		t.Errorf("Username mismatch: got %s, want default", account.Username)
	}
	if account.Session != "env_session" || account.CSRFToken != "env_csrf" {
		t.Errorf("Cookie mismatch: %+v", account)
	}

	if _, err := store.Retrieve("someone-else"); !errors.Is(err, ErrCredentialsNotFound) {
		t.Errorf("Expected ErrCredentialsNotFound for another user, got %v", err)
	}

	if err := store.Store(&Account{}); !errors.Is(err, ErrStoreUnavailable) {
		t.Error("Expected ErrStoreUnavailable for environment store")
	}

	t.Setenv(EnvCSRFToken, "")
	if store.Exists("") {
		t.Error("Both variables are required")
	}
}

func TestMockStoreErrorInjection(t *testing.T) {
	store := NewMockStore()
	store.ListError = fmt.Errorf("injected error")

	if _, err := store.List(); err == nil || err.Error() != "injected error" {
		t.Error("Expected injected error")
	}
}

func TestCookieGuide(t *testing.T) {
	var buf bytes.Buffer
	ShowCookieExtractionGuide(&buf)
	out := buf.String()

	for _, want := range []string{"LEETCODE_SESSION", "csrftoken", "leetcode.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("Guide should mention %q", want)
		}
	}

	buf.Reset()
	ShowQuickExtractGuide(&buf)
	if !strings.Contains(buf.String(), "LEETCODE_SESSION") {
		t.Error("Quick guide should mention LEETCODE_SESSION")
	}
}
