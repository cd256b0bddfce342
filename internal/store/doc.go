// Package store persists movie records in SQLite and exposes the local query
// surface used by the lookup service.
//
// Open creates the database file and the movies table when they are absent, so
// a Store is ready for queries as soon as it is constructed. Text attributes
// (title, actor, director, genre) match case-insensitive substrings; year
// matches the leading four digits. Results come back in insertion order, which
// makes "first match" stable when duplicate titles coexist.
//
// Records are never evicted or expired. Insert does not deduplicate; Delete
// removes a single row and reports services.ErrNotFound when nothing matched.
package store
