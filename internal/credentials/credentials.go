// Package credentials resolves the media-request service connection
// settings from process configuration with a fallback to the persisted
// settings store.
package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/askarr/askarr/internal/settings"
)

// Lookup keys understood by every Source.
const (
	KeyURL    = "overseerr_url"
	KeyAPIKey = "overseerr_api_key"
)

// ErrConfigurationMissing is returned when a required value cannot be
// resolved from any source. This is a fatal startup condition.
var ErrConfigurationMissing = errors.New("missing required configuration")

// Source supplies configuration values by key. The second return value
// reports whether the source had a usable value for the key.
type Source interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// Credentials holds the resolved connection settings for the
// media-request service.
type Credentials struct {
	BaseURL string
	APIKey  string
}

// Static is a Source backed by an in-memory map, seeded from process
// configuration. Empty values are treated as absent.
type Static map[string]string

// Get implements Source.
func (s Static) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s[key]
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// StoreSource is a Source backed by the persisted settings store. Keys are
// namespaced by account id so a future multi-account deployment does not
// require a schema change.
type StoreSource struct {
	store     *settings.Store
	accountID string
}

// NewStoreSource creates a settings-store backed source for the given
// account id.
func NewStoreSource(store *settings.Store, accountID string) *StoreSource {
	return &StoreSource{store: store, accountID: accountID}
}

// Get implements Source.
func (s *StoreSource) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.store.Get(ctx, fmt.Sprintf("acct:%s:%s", s.accountID, key))
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// Chain composes sources in priority order. The first source that has a
// value for a key wins.
type Chain []Source

// Get implements Source.
func (c Chain) Get(ctx context.Context, key string) (string, bool, error) {
	for _, src := range c {
		v, ok, err := src.Get(ctx, key)
		if err != nil {
			return "", false, err
		}
		if ok {
			return v, true, nil
		}
	}
	return "", false, nil
}

// Resolve looks up the base URL and API key through src. A missing value
// after fallback resolution is reported as ErrConfigurationMissing.
func Resolve(ctx context.Context, src Source) (Credentials, error) {
	baseURL, ok, err := src.Get(ctx, KeyURL)
	if err != nil {
		return Credentials{}, fmt.Errorf("resolving %s: %w", KeyURL, err)
	}
	if !ok {
		return Credentials{}, fmt.Errorf("%w: %s", ErrConfigurationMissing, KeyURL)
	}

	apiKey, ok, err := src.Get(ctx, KeyAPIKey)
	if err != nil {
		return Credentials{}, fmt.Errorf("resolving %s: %w", KeyAPIKey, err)
	}
	if !ok {
		return Credentials{}, fmt.Errorf("%w: %s", ErrConfigurationMissing, KeyAPIKey)
	}

	return Credentials{BaseURL: baseURL, APIKey: apiKey}, nil
}
