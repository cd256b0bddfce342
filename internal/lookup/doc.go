// Package lookup implements the read-through lookup policy: the local store is
// always consulted first, and only a title query that misses locally falls
// back to the remote catalog.
//
// Lookup returns a tagged Result (found, not_found, remote_error) carrying the
// provenance of its candidates. Remote candidates are never persisted by
// Lookup itself; callers confirm each one through ConfirmAdd or WriteBack.
// Store failures and invalid queries come back as errors wrapping
// services.ErrStore and services.ErrInvalidInput. Remote failures are a result
// status so callers can tell "nothing exists" from "try again later".
package lookup
