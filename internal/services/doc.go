// Package services defines shared utilities consumed by the scan pipeline and
// the metadata provider clients.
//
// Key responsibilities:
//   - Context helpers that stamp scan IDs, ROM names, platforms, providers and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper so provider failures can be
//     classified (unavailable, bad credentials, configuration) without string
//     matching.
//
// Provider clients live in subpackages and share the retrying transport in
// services/httpclient.
package services
