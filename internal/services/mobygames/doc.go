// Package mobygames wraps the MobyGames v1 REST API (query-string GET with an
// api_key parameter). MobyGames rejects non-ASCII title searches.
package mobygames
