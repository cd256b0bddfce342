package testsupport

import (
	"context"
	"testing"

	"moviedb/internal/config"
	"moviedb/internal/movie"
	"moviedb/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// MustInsert stores each movie and returns them with their assigned IDs.
func MustInsert(t testing.TB, st *store.Store, movies ...movie.Movie) []movie.Movie {
	t.Helper()

	stored := make([]movie.Movie, 0, len(movies))
	for _, m := range movies {
		saved, err := st.Insert(context.Background(), m)
		if err != nil {
			t.Fatalf("store.Insert(%s): %v", m.Label(), err)
		}
		stored = append(stored, saved)
	}
	return stored
}
