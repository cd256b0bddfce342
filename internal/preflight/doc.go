// Package preflight provides readiness checks for the filesystem paths, the
// movie database, and the remote catalog that moviedb depends on.
//
// The CLI "moviedb doctor" command runs RunAll and renders each Result. Checks
// never mutate user data; the database check opens (and therefore initializes)
// the configured store the same way every other command does.
package preflight
