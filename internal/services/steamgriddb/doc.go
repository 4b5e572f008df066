// Package steamgriddb wraps the SteamGridDB v2 API. It contributes artwork
// only: SteamGridDB has no descriptive metadata and no hash lookups.
package steamgriddb
