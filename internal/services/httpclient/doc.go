// Package httpclient provides the shared outbound HTTP client and the
// one-retry request policy every metadata provider client uses.
//
// Do runs a request at most twice:
//   - a transport error or timeout is retried immediately
//   - HTTP 429 sleeps the configured backoff and retries
//   - HTTP 401 refreshes credentials through the Authenticator and retries
//
// Any other non-2xx status is logged and reported as "no result" (nil body,
// nil error). A transport failure that survives the retry becomes a
// *services.UnavailableError; a 401 that survives the refresh is wrapped with
// services.ErrCredentials. Each call emits exactly one log line with the
// provider, URL class, outcome, status, attempts, and latency.
package httpclient
