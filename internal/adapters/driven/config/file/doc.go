// Package file provides the TOML configuration store.
//
// Settings are read from ~/.chainforensix/config.toml and addressed with
// dot-notation keys ("api.base_url"). On write the keys are expanded back into
// TOML tables, so the file stays hand-editable:
//
//	[api]
//	base_url = "https://evidence.example"
//
// Any key can be overridden for a single run with an environment variable:
// CHAINFORENSIX_ plus the key upper-cased with dots replaced by underscores
// (CHAINFORENSIX_API_TOKEN for api.token). Overrides are never persisted.
package file
