// Package driving declares what the CLI, TUI, REST and MCP adapters may ask
// of the core: inspect and verify evidence, run captures, manage the archive
// and settings. The implementations are in internal/core/services.
package driving
