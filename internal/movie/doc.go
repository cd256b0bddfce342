// Package movie defines the Movie record shared by the local store, the remote
// catalog client, and the lookup service.
//
// A Movie is transient when it comes from the remote catalog and persistent
// once the store has assigned it a row ID. Genre and Actors are comma-separated
// multi-value fields; the list helpers split them. Validate enforces the field
// rules (non-empty title, 4-digit year prefix) before anything is written.
package movie
