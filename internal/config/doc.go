// Package config loads, normalizes, and validates scanner configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, overlays secrets from a dotenv file, and
// honours environment overrides such as IGDB_CLIENT_ID. The Config type
// centralizes every knob the scan pipeline and CLI need: library and data
// directories, merge priority lists, the shared HTTP client settings, and one
// section per metadata provider.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, lower-cased provider keys, and clear validation errors.
package config
