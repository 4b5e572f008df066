// Package flashpoint queries the Flashpoint Archive database API for browser
// and PC games. Entries are keyed by UUID.
package flashpoint
