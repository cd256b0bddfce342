package testsupport

import (
	"path/filepath"
	"testing"

	"moviedb/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Remote lookups stay disabled unless WithOMDb supplies a key.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Store.Database = filepath.Join(base, "data", "film.db")
	cfgVal.OMDb.APIKey = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithOMDb points the config at a catalog endpoint, typically an httptest server.
func WithOMDb(apiKey, baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OMDb.APIKey = apiKey
		if baseURL != "" {
			b.cfg.OMDb.BaseURL = baseURL
		}
	}
}

// WithDatabase overrides the database location relative to the test base dir.
func WithDatabase(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Store.Database = filepath.Join(b.baseDir, name)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
