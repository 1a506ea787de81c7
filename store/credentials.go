package store

import (
	"fmt"
	"strings"
)

// credentialKey is the logical key holding the stored API key.
const credentialKey = "dsa_analyzer_api_key"

// CredentialStore persists the analysis API key through the same
// KeyValue collaborator the history uses. The key is an opaque string;
// no validation beyond trimming is performed here.
type CredentialStore struct {
	kv KeyValue
}

// NewCredentialStore creates a credential store over the given KeyValue.
func NewCredentialStore(kv KeyValue) *CredentialStore {
	return &CredentialStore{kv: kv}
}

// APIKey returns the stored key, or an empty string when none is set.
func (s *CredentialStore) APIKey() (string, error) {
	raw, ok, err := s.kv.Get(credentialKey)
	if err != nil {
		return "", fmt.Errorf("failed to load API key: %w", err)
	}
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(string(raw)), nil
}

// SetAPIKey stores the given key, replacing any previous value.
func (s *CredentialStore) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key must not be empty")
	}
	if err := s.kv.Set(credentialKey, []byte(key)); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	return nil
}

// ClearAPIKey removes the stored key.
func (s *CredentialStore) ClearAPIKey() error {
	return s.kv.Delete(credentialKey)
}
