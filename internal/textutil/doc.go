// Package textutil provides title comparison helpers.
//
// The primary use cases are:
//   - Token fingerprints and cosine similarity for word-order-insensitive matching
//   - Levenshtein ratio for typo-tolerant matching
//   - Sanitizing folder names into identifier tokens
//
// Callers are expected to normalize titles (case folding, diacritics,
// punctuation) before comparing; see internal/romname.
package textutil
