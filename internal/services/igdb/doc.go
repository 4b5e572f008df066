// Package igdb wraps the IGDB v4 API. Queries are written in the
// apicalypse DSL and POSTed as plain text; authentication uses a Twitch
// client-credentials token shared process-wide.
package igdb
