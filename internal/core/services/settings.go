package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyStoreBackend   = "store.backend"
	keyAPIBaseURL     = "api.base_url"
	keyAPIToken       = "api.token"
	keyAPITimeout     = "api.timeout_seconds"
	keyAPIRate        = "api.rate_per_second"
	keyLookupAttempts = "lookup.max_attempts"
	keyLookupBackoff  = "lookup.backoff_ms"
	keyLookupDebounce = "lookup.debounce_ms"
	keyLedgerRPCURL   = "ledger.rpc_url"
	keyLedgerExplorer = "ledger.explorer_url"
	keyServerAddr     = "server.addr"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: s.getStoreBackend(defaults.Store),
		API: domain.APISettings{
			BaseURL:       strings.TrimRight(s.configStore.GetString(keyAPIBaseURL), "/"),
			Token:         s.configStore.GetString(keyAPIToken),
			Timeout:       s.getDuration(keyAPITimeout, time.Second, defaults.API.Timeout),
			RatePerSecond: s.getFloat(keyAPIRate, defaults.API.RatePerSecond),
		},
		Lookup: domain.LookupSettings{
			MaxAttempts: s.getInt(keyLookupAttempts, defaults.Lookup.MaxAttempts),
			Backoff:     s.getDuration(keyLookupBackoff, time.Millisecond, defaults.Lookup.Backoff),
			Debounce:    s.getDuration(keyLookupDebounce, time.Millisecond, defaults.Lookup.Debounce),
		},
		Ledger: domain.LedgerSettings{
			RPCURL:      s.configStore.GetString(keyLedgerRPCURL),
			ExplorerURL: s.getString(keyLedgerExplorer, defaults.Ledger.ExplorerURL),
		},
		Server: domain.ServerSettings{
			Addr: s.getString(keyServerAddr, defaults.Server.Addr),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyStoreBackend, settings.Store.String()},
		{keyAPIBaseURL, settings.API.BaseURL},
		{keyAPITimeout, int(settings.API.Timeout / time.Second)},
		{keyAPIRate, settings.API.RatePerSecond},
		{keyLookupAttempts, settings.Lookup.MaxAttempts},
		{keyLookupBackoff, int(settings.Lookup.Backoff / time.Millisecond)},
		{keyLookupDebounce, int(settings.Lookup.Debounce / time.Millisecond)},
		{keyLedgerRPCURL, settings.Ledger.RPCURL},
		{keyLedgerExplorer, settings.Ledger.ExplorerURL},
		{keyServerAddr, settings.Server.Addr},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Only overwrite the token when one is given; ClearToken removes it.
	if settings.API.Token != "" {
		if err := s.configStore.Set(keyAPIToken, settings.API.Token); err != nil {
			return fmt.Errorf("save %s: %w", keyAPIToken, err)
		}
	}

	return nil
}

// SetStoreBackend switches the evidence store.
func (s *SettingsService) SetStoreBackend(backend domain.StoreBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: store backend %q", domain.ErrInvalidInput, backend)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Store = backend
	return s.Save(settings)
}

// SetAPI updates the backend URL and, when non-empty, the token.
func (s *SettingsService) SetAPI(baseURL, token string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if baseURL != "" {
		settings.API.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if token != "" {
		settings.API.Token = token
	}

	// A token may be stored before the backend URL is known.
	if settings.API.BaseURL != "" {
		probe := *settings
		probe.Store = domain.StoreBackendAPI
		if err := probe.Validate(); err != nil {
			return err
		}
	}
	return s.Save(settings)
}

// ClearToken removes the stored bearer token.
func (s *SettingsService) ClearToken() error {
	return s.configStore.Delete(keyAPIToken)
}

// SetLedger updates the ledger RPC and explorer URLs.
func (s *SettingsService) SetLedger(rpcURL, explorerURL string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Ledger.RPCURL = rpcURL
	if explorerURL != "" {
		settings.Ledger.ExplorerURL = explorerURL
	}
	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// ConfigPath returns the configuration file path.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * unit
}

func (s *SettingsService) getStoreBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	val := s.configStore.GetString(keyStoreBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StoreBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
