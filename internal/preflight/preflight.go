package preflight

import (
	"context"

	"moviedb/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
// The remote catalog check is skipped when no API key is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDatabase(ctx, cfg.Store.Database),
	}

	if cfg.RemoteEnabled() {
		results = append(results, CheckOMDb(ctx, cfg.OMDb.BaseURL, cfg.OMDb.APIKey))
	} else {
		results = append(results, Result{Name: "OMDb", Passed: true, Detail: "Disabled (no api key; lookups are local only)"})
	}

	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
