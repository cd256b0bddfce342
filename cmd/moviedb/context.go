package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"moviedb/internal/config"
	"moviedb/internal/logging"
	"moviedb/internal/lookup"
	"moviedb/internal/omdb"
	"moviedb/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	store *store.Store
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.config)
		if err != nil {
			logger, _ = logging.New(logging.Options{Level: "warn", Format: "console"})
		}
		c.logger = logger
	})
	return c.logger
}

// openStore opens the configured database once per invocation.
func (c *commandContext) openStore() (*store.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg, store.WithLogger(c.ensureLogger()))
	if err != nil {
		return nil, err
	}
	c.store = st
	return st, nil
}

// lookupService wires the store and, when an API key is configured, the OMDb
// catalog behind its pacing limiter and circuit breaker.
func (c *commandContext) lookupService() (*lookup.Service, *store.Store, error) {
	st, err := c.openStore()
	if err != nil {
		return nil, nil, err
	}
	cfg := c.config
	logger := c.ensureLogger()

	var catalog lookup.Catalog
	if cfg.RemoteEnabled() {
		client, err := omdb.New(
			cfg.OMDb.APIKey,
			cfg.OMDb.BaseURL,
			omdb.WithTimeout(cfg.OMDbTimeout()),
			omdb.WithPlot(cfg.OMDb.Plot),
			omdb.WithMaxResults(cfg.OMDb.MaxResults),
			omdb.WithLimiter(rate.NewLimiter(rate.Limit(cfg.OMDb.RequestsPerSecond), cfg.OMDb.Burst)),
			omdb.WithLogger(logger),
		)
		if err != nil {
			return nil, nil, err
		}
		if cfg.OMDb.BreakerEnabled {
			catalog = omdb.NewBreaker(client, omdb.DefaultBreakerSettings(), logger)
		} else {
			catalog = client
		}
	}

	return lookup.New(st, catalog, logger), st, nil
}

func (c *commandContext) close() {
	if c.store != nil {
		_ = c.store.Close()
		c.store = nil
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
