package domain

import (
	"fmt"
	"net/url"
	"time"
)

const unknownDescription = "Unknown"

// StoreBackend selects which evidence store lookups go to.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendAPI queries the forensics backend REST API.
	StoreBackendAPI StoreBackend = "api"

	// StoreBackendArchive queries the local SQLite evidence archive.
	StoreBackendArchive StoreBackend = "archive"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendAPI, StoreBackendArchive:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendAPI:
		return "Backend API (remote)"
	case StoreBackendArchive:
		return "Local archive (SQLite)"
	default:
		return unknownDescription
	}
}

// APISettings configures the forensics backend client.
type APISettings struct {
	// BaseURL is the backend origin.
	BaseURL string

	// Token is the bearer token sent with every request.
	Token string

	// Timeout bounds a single request attempt.
	Timeout time.Duration

	// RatePerSecond throttles outbound requests.
	RatePerSecond float64
}

// IsConfigured returns true if the backend can be called.
func (a APISettings) IsConfigured() bool {
	return a.BaseURL != ""
}

// LookupSettings configures lookup orchestration.
type LookupSettings struct {
	// MaxAttempts is the number of tries for a transient failure.
	MaxAttempts int

	// Backoff is the delay before the first retry; it doubles per attempt.
	Backoff time.Duration

	// Debounce is the quiet period before an interactive lookup fires.
	Debounce time.Duration
}

// LedgerSettings configures independent ledger checks.
type LedgerSettings struct {
	// RPCURL is an Ethereum JSON-RPC endpoint. Empty disables ledger checks.
	RPCURL string

	// ExplorerURL is the block explorer transaction URL prefix.
	ExplorerURL string
}

// IsConfigured returns true if ledger checks are enabled.
func (l LedgerSettings) IsConfigured() bool {
	return l.RPCURL != ""
}

// ExplorerLink returns a browsable link for a ledger reference.
func (l LedgerSettings) ExplorerLink(ref string) string {
	if l.ExplorerURL == "" || ref == "" {
		return ""
	}
	return l.ExplorerURL + ref
}

// ServerSettings configures the REST API server.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Store  StoreBackend
	API    APISettings
	Lookup LookupSettings
	Ledger LedgerSettings
	Server ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The backend URL and token are left unconfigured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreBackendAPI,
		API: APISettings{
			Timeout:       15 * time.Second,
			RatePerSecond: 2,
		},
		Lookup: LookupSettings{
			MaxAttempts: 3,
			Backoff:     500 * time.Millisecond,
			Debounce:    300 * time.Millisecond,
		},
		Ledger: LedgerSettings{
			ExplorerURL: "https://sepolia.etherscan.io/tx/",
		},
		Server: ServerSettings{
			Addr: "127.0.0.1:8787",
		},
	}
}

// Validate checks the settings for obvious mistakes.
func (s AppSettings) Validate() error {
	if !s.Store.IsValid() {
		return fmt.Errorf("%w: store backend %q", ErrInvalidInput, s.Store)
	}
	if s.Store == StoreBackendAPI && !s.API.IsConfigured() {
		return fmt.Errorf("%w: api.base_url is required for the api backend", ErrInvalidInput)
	}
	if s.API.BaseURL != "" {
		u, err := url.Parse(s.API.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: api.base_url %q", ErrInvalidInput, s.API.BaseURL)
		}
	}
	if s.Lookup.MaxAttempts < 1 || s.Lookup.MaxAttempts > MaxLookupAttempts {
		return fmt.Errorf("%w: lookup.max_attempts must be between 1 and %d", ErrInvalidInput, MaxLookupAttempts)
	}
	if s.Lookup.Backoff < 0 {
		return fmt.Errorf("%w: lookup.backoff must not be negative", ErrInvalidInput)
	}
	if s.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", ErrInvalidInput)
	}
	return nil
}

// MaxLookupAttempts bounds lookup.max_attempts.
const MaxLookupAttempts = 10

// AllStoreBackends returns all available store backends.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{StoreBackendAPI, StoreBackendArchive}
}
