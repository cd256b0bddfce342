package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"moviedb/internal/logging"
	"moviedb/internal/movie"
	"moviedb/internal/services"
	"moviedb/internal/store"
)

// Store is the local persistence surface the service depends on.
type Store interface {
	Query(ctx context.Context, field store.Field, value string) ([]movie.Movie, error)
	Insert(ctx context.Context, m movie.Movie) (movie.Movie, error)
	Delete(ctx context.Context, m movie.Movie) error
}

// Catalog is the remote title lookup surface.
type Catalog interface {
	FetchOne(ctx context.Context, title string) (*movie.Movie, error)
	FetchMany(ctx context.Context, title string) ([]movie.Movie, error)
}

// Service coordinates the local store and the remote catalog.
type Service struct {
	store   Store
	catalog Catalog
	logger  *slog.Logger
}

// New constructs a Service. A nil catalog disables remote fallback, so title
// misses end as not_found.
func New(st Store, catalog Catalog, logger *slog.Logger) *Service {
	return &Service{
		store:   st,
		catalog: catalog,
		logger:  logging.NewComponentLogger(logger, "lookup"),
	}
}

// RemoteEnabled reports whether title misses can fall back to the catalog.
func (s *Service) RemoteEnabled() bool {
	return s.catalog != nil
}

// Lookup answers q from the local store, falling back to the remote catalog
// for title misses. Invalid queries and store failures return an error; every
// other outcome, remote failures included, is a Result.
func (s *Service) Lookup(ctx context.Context, q Query) (Result, error) {
	value, err := normalizeQuery(q)
	if err != nil {
		return Result{}, err
	}

	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithAttribute(ctx, q.Attribute.String())
	logger := logging.WithContext(ctx, s.logger)

	local, err := s.store.Query(ctx, store.Field(q.Attribute), value)
	if err != nil {
		err = classifyStoreError("query", err)
		logging.ErrorWithContext(logger, "local lookup failed", "lookup_store_error",
			logging.Error(err),
			logging.String(logging.FieldErrorKind, services.Kind(err)),
			logging.String(logging.FieldErrorHint, services.Hint(err)),
		)
		return Result{}, err
	}
	if len(local) > 0 {
		logger.Debug("lookup served locally",
			logging.String(logging.FieldSource, string(SourceLocal)),
			logging.Int("matches", len(local)),
		)
		return Result{Status: StatusFound, Source: SourceLocal, Candidates: local}, nil
	}

	if !q.Attribute.RemoteFallback() || value == "" || s.catalog == nil {
		logger.Debug("lookup found nothing locally", logging.Bool("remote_enabled", s.catalog != nil))
		return Result{Status: StatusNotFound, Source: SourceLocal}, nil
	}

	ctx = services.WithSource(ctx, string(SourceRemote))
	logger = logging.WithContext(ctx, s.logger)

	candidates, err := s.fetch(ctx, value, q.BestMatch)
	if err != nil {
		if !errors.Is(err, services.ErrRemote) {
			err = services.Wrap(services.ErrRemote, "lookup", "remote fetch", "", err)
		}
		logging.WarnWithContext(logger, "remote lookup failed", "lookup_remote_error",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, services.Hint(err)),
			logging.String(logging.FieldImpact, "nothing was stored; the query can be repeated"),
		)
		return Result{Status: StatusRemoteError, Source: SourceRemote, Err: err}, nil
	}
	if len(candidates) == 0 {
		logger.Info("title not found locally or remotely", logging.String("title", value))
		return Result{Status: StatusNotFound, Source: SourceRemote}, nil
	}

	logger.Info("lookup served by remote catalog",
		logging.String("title", value),
		logging.Int("candidates", len(candidates)),
	)
	return Result{Status: StatusFound, Source: SourceRemote, Candidates: candidates}, nil
}

func (s *Service) fetch(ctx context.Context, title string, bestMatch bool) ([]movie.Movie, error) {
	if bestMatch {
		m, err := s.catalog.FetchOne(ctx, title)
		if err != nil || m == nil {
			return nil, err
		}
		return []movie.Movie{*m}, nil
	}
	return s.catalog.FetchMany(ctx, title)
}

// ConfirmAdd validates m and writes it to the local store. It is the write
// half of the read-through flow and is only called after the caller accepted
// a candidate.
func (s *Service) ConfirmAdd(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	m = m.Normalize()
	m.ID = 0
	if err := m.Validate(); err != nil {
		return movie.Movie{}, err
	}
	saved, err := s.store.Insert(ctx, m)
	if err != nil {
		return movie.Movie{}, classifyStoreError("insert", err)
	}
	s.logger.Info("movie stored",
		logging.Int64("id", saved.ID),
		logging.String("title", saved.Title),
		logging.String("year", saved.Year),
	)
	return saved, nil
}

// Delete removes one stored record matching m. A miss returns an error
// wrapping services.ErrNotFound.
func (s *Service) Delete(ctx context.Context, m movie.Movie) error {
	m = m.Normalize()
	if m.Title == "" {
		return services.Wrap(services.ErrInvalidInput, "lookup", "delete", "title is required", nil)
	}
	if err := s.store.Delete(ctx, m); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return err
		}
		return classifyStoreError("delete", err)
	}
	s.logger.Info("movie deleted", logging.String("title", m.Title), logging.String("year", m.Year))
	return nil
}

func normalizeQuery(q Query) (string, error) {
	if !q.Attribute.Valid() {
		return "", services.Wrap(services.ErrInvalidInput, "lookup", "query", fmt.Sprintf("unknown attribute %q", q.Attribute), nil)
	}
	value := strings.TrimSpace(q.Value)
	switch q.Attribute {
	case AttributeTitle:
	case AttributeYear:
		if len(value) != 4 || !movie.ValidYear(value) {
			return "", services.Wrap(services.ErrInvalidInput, "lookup", "query", fmt.Sprintf("year %q must be four digits", value), nil)
		}
	default:
		if value == "" {
			return "", services.Wrap(services.ErrInvalidInput, "lookup", "query", fmt.Sprintf("%s must not be empty", q.Attribute), nil)
		}
	}
	return value, nil
}

// classifyStoreError keeps invalid-input and store markers intact and tags
// anything else as a store failure.
func classifyStoreError(operation string, err error) error {
	if errors.Is(err, services.ErrStore) || errors.Is(err, services.ErrInvalidInput) {
		return err
	}
	return services.Wrap(services.ErrStore, "lookup", operation, "", err)
}
