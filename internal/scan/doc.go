// Package scan walks the library, matches every ROM file against the
// configured metadata providers and stores the merged records.
//
// A Scanner holds a file lock under the data directory for the duration of
// Run so only one scan writes to a library database at a time. ROMs are
// processed by a bounded worker pool; each ROM is hashed, matched, merged and
// saved as a unit, and a cancelled scan never saves a partially matched ROM.
package scan
