package omdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moviedb/internal/movie"
	"moviedb/internal/omdb"
	"moviedb/internal/services"
)

type stubFetcher struct {
	calls int
	err   error
	one   *movie.Movie
	many  []movie.Movie
}

func (s *stubFetcher) FetchOne(context.Context, string) (*movie.Movie, error) {
	s.calls++
	return s.one, s.err
}

func (s *stubFetcher) FetchMany(context.Context, string) ([]movie.Movie, error) {
	s.calls++
	return s.many, s.err
}

func TestBreakerPassesThroughResults(t *testing.T) {
	stub := &stubFetcher{
		one:  &movie.Movie{Title: "Inception", Year: "2010"},
		many: []movie.Movie{{Title: "Dune", Year: "2021"}},
	}
	breaker := omdb.NewBreaker(stub, omdb.BreakerSettings{}, nil)

	m, err := breaker.FetchOne(context.Background(), "Inception")
	if err != nil || m == nil || m.Title != "Inception" {
		t.Fatalf("FetchOne = %#v, %v", m, err)
	}
	movies, err := breaker.FetchMany(context.Background(), "Dune")
	if err != nil || len(movies) != 1 {
		t.Fatalf("FetchMany = %#v, %v", movies, err)
	}
}

func TestBreakerPassesThroughNoMatch(t *testing.T) {
	stub := &stubFetcher{}
	breaker := omdb.NewBreaker(stub, omdb.BreakerSettings{}, nil)

	m, err := breaker.FetchOne(context.Background(), "Unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Fatalf("expected nil movie, got %#v", m)
	}
}

func TestBreakerOpensAndFailsFast(t *testing.T) {
	failure := services.Wrap(services.ErrRemote, "omdb", "fetch one", "boom", nil)
	stub := &stubFetcher{err: failure}
	breaker := omdb.NewBreaker(stub, omdb.BreakerSettings{
		MinRequests:  2,
		FailureRatio: 0.5,
		Cooldown:     time.Hour,
	}, nil)

	for i := 0; i < 2; i++ {
		if _, err := breaker.FetchOne(context.Background(), "Inception"); !errors.Is(err, services.ErrRemote) {
			t.Fatalf("attempt %d: expected remote error, got %v", i, err)
		}
	}
	if breaker.State() != "open" {
		t.Fatalf("expected open circuit, got %s", breaker.State())
	}

	_, err := breaker.FetchMany(context.Background(), "Inception")
	if !errors.Is(err, services.ErrRemote) {
		t.Fatalf("expected remote error from open circuit, got %v", err)
	}
	if stub.calls != 2 {
		t.Fatalf("open circuit must not reach the catalog, calls=%d", stub.calls)
	}
}

func TestBreakerIgnoresCancelledCalls(t *testing.T) {
	stub := &stubFetcher{err: context.Canceled}
	breaker := omdb.NewBreaker(stub, omdb.BreakerSettings{MinRequests: 1, FailureRatio: 0.1}, nil)

	for i := 0; i < 3; i++ {
		_, _ = breaker.FetchOne(context.Background(), "Inception")
	}
	if breaker.State() != "closed" {
		t.Fatalf("cancelled calls should not trip the circuit, state=%s", breaker.State())
	}
	if stub.calls != 3 {
		t.Fatalf("expected every call to reach the fetcher, calls=%d", stub.calls)
	}
}

func TestBreakerStaysClosedForTooBroadSearches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("s") != "":
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Too many results."}`))
		case q.Get("t") == "Inception":
			_, _ = w.Write([]byte(`{"Title":"Inception","Year":"2010","Response":"True"}`))
		default:
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
		}
	}))
	t.Cleanup(server.Close)

	client, err := omdb.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	breaker := omdb.NewBreaker(client, omdb.DefaultBreakerSettings(), nil)

	for i := 0; i < 8; i++ {
		if _, err := breaker.FetchMany(context.Background(), "a"); err != nil {
			t.Fatalf("search %d: expected no error for a too broad search, got %v", i, err)
		}
	}
	if breaker.State() != "closed" {
		t.Fatalf("catalog answers must not trip the circuit, state=%s", breaker.State())
	}

	m, err := breaker.FetchOne(context.Background(), "Inception")
	if err != nil || m == nil || m.Title != "Inception" {
		t.Fatalf("FetchOne = %#v, %v", m, err)
	}
}
