// Package screenscraper wraps the ScreenScraper api2 endpoints. Requests
// carry developer credentials (stored Base64-obscured in config) and
// optional user credentials as query parameters. ScreenScraper supports
// lookups by CRC32/MD5/SHA1.
package screenscraper
