// Package library persists scanned ROMs and their merged metadata in SQLite
// and walks the on-disk library layout.
//
// The database lives at config.DatabasePath. Each ROM row carries one column
// per provider id, the merged record as JSON and each provider's raw payload
// as JSON. A rescan replaces the whole row in a single transaction, so a
// cancelled scan never leaves a half-written ROM behind.
//
// The schema is versioned; a mismatch is reported with ErrSchemaMismatch and
// the database must be rebuilt with a complete scan.
package library
