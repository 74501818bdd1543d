package driving

import "github.com/custodia-labs/chainforensix-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults for unset keys.
	Get() (*domain.AppSettings, error)

	// Save persists settings.
	Save(settings *domain.AppSettings) error

	// SetStoreBackend switches the evidence store.
	SetStoreBackend(backend domain.StoreBackend) error

	// SetAPI updates the backend URL and, when non-empty, the token.
	SetAPI(baseURL, token string) error

	// ClearToken removes the stored bearer token.
	ClearToken() error

	// SetLedger updates the ledger RPC and explorer URLs.
	SetLedger(rpcURL, explorerURL string) error

	// Validate checks the current settings.
	Validate() error

	// ConfigPath returns the configuration file path.
	ConfigPath() string
}
