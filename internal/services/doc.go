// Package services defines shared utilities consumed by the lookup service,
// the local store, and the remote catalog client.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag failures with the
//     taxonomy callers branch on (store, remote, invalid input, not found).
//   - Context helpers that stamp request IDs, query attributes, and result
//     provenance for logging.
//
// Use these helpers when wiring new components so error classification and
// observability stay uniform across the module.
package services
