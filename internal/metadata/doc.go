// Package metadata reconciles ROM identities across metadata providers.
//
// A Matcher fans a ROM out to every enabled Provider concurrently, scores the
// candidates each one returns, and keeps at most one per provider. Merge
// folds the winners into a single Record using the configured provider
// priority lists, and GroupSiblings computes regional/variant groups over
// stored records with a union-find on shared external ids and normalized
// file names.
//
// Provider failures never escape a Matcher: unreachable or misbehaving
// providers simply contribute no candidate, and a provider whose credentials
// are rejected is disabled for the rest of the Matcher's lifetime (one scan
// pass).
package metadata
