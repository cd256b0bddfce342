package movie_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"moviedb/internal/movie"
	"moviedb/internal/services"
)

func TestKeyFoldsCase(t *testing.T) {
	a := movie.Movie{Title: "The Matrix", Year: "1999"}
	b := movie.Movie{Title: "  the MATRIX ", Year: "1999"}
	if a.Key() != b.Key() {
		t.Fatalf("expected keys to match: %q vs %q", a.Key(), b.Key())
	}
	c := movie.Movie{Title: "The Matrix", Year: "2021"}
	if a.Key() == c.Key() {
		t.Fatal("expected different years to produce different keys")
	}
}

func TestLabel(t *testing.T) {
	if got := (movie.Movie{Title: "Dune", Year: "2021"}).Label(); got != "Dune (2021)" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := (movie.Movie{Title: "Dune"}).Label(); got != "Dune" {
		t.Fatalf("unexpected label without year %q", got)
	}
}

func TestListHelpersSplitAndTrim(t *testing.T) {
	m := movie.Movie{Genre: "Action, Sci-Fi,,", Actors: " Keanu Reeves ,Carrie-Anne Moss"}
	if got := m.GenreList(); !reflect.DeepEqual(got, []string{"Action", "Sci-Fi"}) {
		t.Fatalf("unexpected genres %v", got)
	}
	if got := m.ActorList(); !reflect.DeepEqual(got, []string{"Keanu Reeves", "Carrie-Anne Moss"}) {
		t.Fatalf("unexpected actors %v", got)
	}
	if got := (movie.Movie{}).GenreList(); got != nil {
		t.Fatalf("expected nil for empty genre, got %v", got)
	}
}

func TestOnlyTitle(t *testing.T) {
	if !(movie.Movie{Title: "Heat"}).OnlyTitle() {
		t.Fatal("expected title-only record")
	}
	if (movie.Movie{Title: "Heat", Year: "1995"}).OnlyTitle() {
		t.Fatal("expected record with year to not be title-only")
	}
}

func TestValidYear(t *testing.T) {
	cases := map[string]bool{
		"2010":      true,
		"2008–2013": true,
		"201":       false,
		"abcd":      false,
		"":          false,
		" 1999 ":    true,
	}
	for input, want := range cases {
		if got := movie.ValidYear(input); got != want {
			t.Fatalf("ValidYear(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestValidateRequiresTitle(t *testing.T) {
	err := (movie.Movie{Title: "   ", Year: "2010"}).Validate()
	if err == nil {
		t.Fatal("expected error for blank title")
	}
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "title: is required") {
		t.Fatalf("expected title message, got %q", err.Error())
	}
}

func TestValidateRejectsMalformedYear(t *testing.T) {
	err := (movie.Movie{Title: "Inception", Year: "20x0"}).Validate()
	if err == nil || !strings.Contains(err.Error(), "year") {
		t.Fatalf("expected year error, got %v", err)
	}
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	m := movie.Movie{
		Title:    "Inception",
		Year:     "2010",
		Genre:    "Action, Sci-Fi",
		Actors:   "Leonardo DiCaprio",
		Director: "Christopher Nolan",
		Type:     movie.TypeMovie,
		Plot:     "A thief who steals corporate secrets through dream-sharing technology.",
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
	if err := (movie.Movie{Title: "Untitled"}).Validate(); err != nil {
		t.Fatalf("expected missing year to be allowed, got %v", err)
	}
}
