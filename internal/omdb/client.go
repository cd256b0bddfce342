package omdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"moviedb/internal/logging"
	"moviedb/internal/movie"
	"moviedb/internal/services"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxResults = 5
	maxPayloadBytes   = 1 << 20
)

// Fetcher is the remote lookup surface shared by Client and Breaker.
type Fetcher interface {
	FetchOne(ctx context.Context, title string) (*movie.Movie, error)
	FetchMany(ctx context.Context, title string) ([]movie.Movie, error)
}

// Client provides access to the OMDb API.
type Client struct {
	apiKey     string
	baseURL    *url.URL
	plot       string
	maxResults int
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithPlot selects the "short" or "full" plot variant.
func WithPlot(plot string) Option {
	return func(c *Client) {
		plot = strings.ToLower(strings.TrimSpace(plot))
		if plot == "short" || plot == "full" {
			c.plot = plot
		}
	}
}

// WithMaxResults caps how many search hits FetchMany resolves.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithLimiter paces outgoing requests. Waiting on the limiter respects the
// request context.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

// WithLogger attaches a logger; requests log under the "omdb" component.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "omdb")
		}
	}
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "omdb", "new", "omdb api key required", nil)
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "omdb", "new", "omdb base url required", nil)
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, services.Wrap(services.ErrConfiguration, "omdb", "new", fmt.Sprintf("invalid base url %q", baseURL), err)
	}

	client := &Client{
		apiKey:     apiKey,
		baseURL:    parsed,
		plot:       "short",
		maxResults: defaultMaxResults,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Inf, 1),
		logger:     logging.NewComponentLogger(nil, "omdb"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchOne returns OMDb's best match for title, or nil when nothing matched.
func (c *Client) FetchOne(ctx context.Context, title string) (*movie.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, services.Wrap(services.ErrInvalidInput, "omdb", "fetch one", "title must not be empty", nil)
	}

	return c.fetchTitle(ctx, "fetch one", title)
}

func (c *Client) fetchTitle(ctx context.Context, operation, title string) (*movie.Movie, error) {
	var payload detailPayload
	if err := c.get(ctx, operation, url.Values{"t": {title}}, &payload); err != nil {
		return nil, err
	}
	return c.detailResult(operation, title, payload)
}

// FetchMany searches OMDb for title and resolves each hit, in the catalog's
// order, into a full record. Hits sharing a title and year collapse into one.
func (c *Client) FetchMany(ctx context.Context, title string) ([]movie.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, services.Wrap(services.ErrInvalidInput, "omdb", "fetch many", "title must not be empty", nil)
	}

	var search searchPayload
	if err := c.get(ctx, "search", url.Values{"s": {title}}, &search); err != nil {
		return nil, err
	}
	if !ok(search.Response) {
		switch classifyAnswer(search.Error) {
		case answerNoMatch:
			c.logger.Debug("omdb search returned no matches", logging.String("title", title))
			return nil, nil
		case answerTooBroad:
			// OMDb refuses broad searches but still answers a title lookup.
			c.logger.Debug("omdb search too broad; using best title match", logging.String("title", title))
			m, err := c.fetchTitle(ctx, "search fallback", title)
			if err != nil || m == nil {
				return nil, err
			}
			return []movie.Movie{*m}, nil
		default:
			return nil, services.Wrap(services.ErrRemote, "omdb", "search", fmt.Sprintf("omdb error: %s", search.Error), nil)
		}
	}

	seen := make(map[string]struct{}, len(search.Search))
	movies := make([]movie.Movie, 0, min(len(search.Search), c.maxResults))
	for _, hit := range search.Search {
		if len(movies) >= c.maxResults {
			break
		}
		id := strings.TrimSpace(hit.IMDbID)
		if id == "" {
			continue
		}
		// A failed detail fetch fails the whole search; callers never get a
		// partial candidate list. Hits OMDb no longer resolves are skipped.
		var payload detailPayload
		if err := c.get(ctx, "detail", url.Values{"i": {id}}, &payload); err != nil {
			return nil, err
		}
		m, err := c.detailResult("detail", id, payload)
		if err != nil {
			return nil, err
		}
		if m == nil {
			continue
		}
		key := m.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		movies = append(movies, *m)
	}

	c.logger.Debug("omdb search resolved",
		logging.String("title", title),
		logging.Int("hits", len(search.Search)),
		logging.Int("candidates", len(movies)),
	)
	return movies, nil
}

func (c *Client) detailResult(operation, query string, payload detailPayload) (*movie.Movie, error) {
	if !ok(payload.Response) {
		if classifyAnswer(payload.Error) != answerFailure {
			c.logger.Debug("omdb lookup returned no match",
				logging.String("query", query),
				logging.String("answer", payload.Error),
			)
			return nil, nil
		}
		return nil, services.Wrap(services.ErrRemote, "omdb", operation, fmt.Sprintf("omdb error: %s", payload.Error), nil)
	}
	m := payload.toMovie()
	if m.Title == "" {
		return nil, services.Wrap(services.ErrRemote, "omdb", operation, "omdb response missing title", nil)
	}
	return &m, nil
}

func (c *Client) get(ctx context.Context, operation string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return services.Wrap(services.ErrRemote, "omdb", operation, "rate limiter", err)
	}

	endpoint := *c.baseURL
	query := endpoint.Query()
	for key, values := range params {
		query[key] = values
	}
	query.Set("apikey", c.apiKey)
	if c.plot != "" {
		query.Set("plot", c.plot)
	}
	query.Set("r", "json")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return services.Wrap(services.ErrRemote, "omdb", operation, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.ErrRemote, "omdb", operation, fmt.Sprintf("execute request (latency=%v)", latency), redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPayloadBytes))
		return services.Wrap(services.ErrRemote, "omdb", operation, fmt.Sprintf("omdb returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayloadBytes)).Decode(out); err != nil {
		return services.Wrap(services.ErrRemote, "omdb", operation, "decode omdb response", err)
	}

	c.logger.Debug("omdb request complete",
		logging.String("operation", operation),
		logging.Duration("latency", latency),
	)
	return nil
}

// redactKey strips the API key from transport errors, which embed the full URL.
func redactKey(err error, apiKey string) error {
	if err == nil || apiKey == "" || !strings.Contains(err.Error(), apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), apiKey, "REDACTED"))
}
