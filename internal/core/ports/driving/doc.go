// Package driving lists what the TUI, the CLI and the MCP server may ask
// of the core: search, selection, actions, previews, assistance, history,
// integrations and settings. Each interface is implemented by a service in
// internal/core/services; the driving adapters hold the interfaces only,
// so tests can swap in fakes.
package driving
