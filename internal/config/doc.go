// Package config loads, normalizes, and validates moviedb configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the OMDB_API_KEY environment
// fallback. The Config type centralizes every knob the CLI and the lookup
// service need, so the database location and remote catalog credentials are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
