// Package omdb provides the OMDb catalog client used as the remote fallback for
// title lookups.
//
// FetchOne performs a best-match title lookup; FetchMany searches by title and
// resolves each hit into a full record. Zero matches is not an error. Transport
// failures, unexpected status codes, undecodable payloads, and OMDb error
// responses all wrap services.ErrRemote. Requests are paced by a token bucket
// and never retried. Breaker adds a circuit breaker in front of any fetcher so
// an unavailable catalog fails fast.
package omdb
