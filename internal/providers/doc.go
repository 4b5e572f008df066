// Package providers adapts the service clients under internal/services to
// the metadata.Provider contract.
//
// Each adapter owns a normalizer that maps the provider's optional-field
// payload into a metadata.Candidate. Normalizers never fail: a missing field
// simply stays empty. Ratings are scaled to 0-100 and dates are rendered as
// YYYY-MM-DD (or YYYY when only the year is known).
//
// Build constructs every configured provider around one shared HTTP client,
// one retry policy and one IGDB token cache.
package providers
