// Command romm scans a ROM library, matches each file against the configured
// metadata providers and stores the merged records in a local SQLite database.
//
// Subcommands:
//
//	romm scan          walk the library and match new or changed files
//	romm match FILE    dry-run matching for one file
//	romm roms          list stored ROMs
//	romm platforms     list stored platforms or the known platform table
//	romm siblings      list sibling groups
//	romm doctor        run preflight checks
//	romm config        create or validate the configuration file
package main
