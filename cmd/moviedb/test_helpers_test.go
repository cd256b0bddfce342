package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	database   string
	omdb       *fakeOMDb
}

type fakeOMDb struct {
	server   *httptest.Server
	requests atomic.Int32
	fail     atomic.Bool
}

// newFakeOMDb serves Dune (2021) for searches and Inception for best-match
// lookups; every other title is "not found".
func newFakeOMDb(t *testing.T) *fakeOMDb {
	t.Helper()
	f := &fakeOMDb{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		if f.fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.EqualFold(q.Get("s"), "Dune"):
			_, _ = w.Write([]byte(`{"Search":[{"Title":"Dune","Year":"2021","imdbID":"tt1160419","Type":"movie"}],"totalResults":"1","Response":"True"}`))
		case q.Get("i") == "tt1160419":
			_, _ = w.Write([]byte(`{"Title":"Dune","Year":"2021","Genre":"Action, Adventure, Drama","Director":"Denis Villeneuve","Actors":"Timothee Chalamet, Rebecca Ferguson","Type":"movie","Response":"True"}`))
		case strings.EqualFold(q.Get("t"), "Inception"):
			_, _ = w.Write([]byte(`{"Title":"Inception","Year":"2010","Genre":"Action, Sci-Fi","Director":"Christopher Nolan","Actors":"Leonardo DiCaprio","Type":"movie","Response":"True"}`))
		default:
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func setupCLITestEnv(t *testing.T, withRemote bool) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("OMDB_API_KEY", "")

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "moviedb.toml"),
		database:   filepath.Join(base, "data", "film.db"),
	}

	apiKey := ""
	baseURL := "https://www.omdbapi.com/"
	if withRemote {
		env.omdb = newFakeOMDb(t)
		apiKey = "test-key"
		baseURL = env.omdb.server.URL
	}
	writeTestConfig(t, env, apiKey, baseURL)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv, apiKey, baseURL string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[store]
database = %q

[omdb]
api_key = %q
base_url = %q
breaker_enabled = false

[logging]
level = "error"
`,
		filepath.Join(env.baseDir, "data"),
		filepath.Join(env.baseDir, "logs"),
		env.database,
		apiKey,
		baseURL,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
