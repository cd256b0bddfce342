// Package main hosts the moviedb CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into lookup
// service calls: attribute searches with remote fallback, listing, adding a
// best match from the remote catalog, deleting stored records, configuration
// scaffolding, and environment diagnostics. It centralizes configuration
// resolution, logger construction, and service wiring so subcommands only deal
// with presentation and confirmation prompts.
//
// Keep this package lean: policy belongs in internal/lookup, and this layer
// only asks the questions and renders the answers.
package main
