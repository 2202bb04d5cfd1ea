// Package store persists the two durable collections the gateway needs:
// registered user accounts and the activity event log served by the
// history API.
//
// The Store interface is implemented by SQLiteStore over modernc.org/sqlite
// in WAL mode. Callers match failures against the sentinel errors
// (ErrNotFound, ErrDuplicateEmail) with errors.Is. Chat sessions are
// deliberately not stored here; they are ephemeral and live in the
// session package.
package store
