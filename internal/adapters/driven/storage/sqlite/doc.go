// Package sqlite provides a SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements two store interfaces
// through a single database connection:
//
//   - EvidenceArchive: Create-only archive of exported evidence records
//   - CaptureStore: Capture workflow persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.chainforensix/data/archive.db
//
// # Immutability
//
// Archived evidence rows are never updated: a trigger aborts any UPDATE, and
// there is no delete path. Timestamps are stored as RFC 3339 text so the
// canonical hash of an archived record is identical to the exported one.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
