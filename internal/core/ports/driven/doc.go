// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Container: Parses and serialises the document file format
//   - Scanner: Lists candidate document files under a root directory
//   - SessionStore: Holds the most recent search's occurrences by identity
//   - BackupStore: Snapshots a file's bytes before its first mutation
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Persists the replacement audit trail. Without it,
//     `restitch history` is disabled but search/replace work normally.
//   - Watcher: Reports document changes under a root so a session can
//     be flagged stale. Without it, staleness is caught lazily by the
//     replacement engine's guard.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
