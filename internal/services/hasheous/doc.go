// Package hasheous wraps the Hasheous lookup API, which maps ROM checksums
// to a game and to the ids other databases use for it.
package hasheous
