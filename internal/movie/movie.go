package movie

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Type values reported by the remote catalog.
const (
	TypeMovie   = "movie"
	TypeSeries  = "series"
	TypeEpisode = "episode"
)

// Movie is a single metadata record. ID is assigned by the local store and is
// zero for records that have not been persisted; it never takes part in
// matching.
type Movie struct {
	ID       int64  `json:"id,omitempty"`
	Title    string `json:"title" validate:"required,max=500"`
	Year     string `json:"year" validate:"omitempty,year"`
	Genre    string `json:"genre,omitempty"`
	Actors   string `json:"actors,omitempty"`
	Director string `json:"director,omitempty"`
	Type     string `json:"type,omitempty" validate:"omitempty,max=32"`
	Plot     string `json:"plot,omitempty"`
}

var folder = cases.Fold()

// Key returns the natural title+year key, case-folded so "the matrix" and
// "The Matrix" collapse to the same value.
func (m Movie) Key() string {
	return folder.String(strings.TrimSpace(m.Title)) + "|" + strings.TrimSpace(m.Year)
}

// Label renders "Title (Year)", omitting the year when unknown.
func (m Movie) Label() string {
	title := strings.TrimSpace(m.Title)
	year := strings.TrimSpace(m.Year)
	if year == "" {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, year)
}

// GenreList splits the comma-separated genre field.
func (m Movie) GenreList() []string {
	return splitList(m.Genre)
}

// ActorList splits the comma-separated actors field.
func (m Movie) ActorList() []string {
	return splitList(m.Actors)
}

// Persisted reports whether the record carries a store row ID.
func (m Movie) Persisted() bool {
	return m.ID > 0
}

// Normalize trims surrounding whitespace from every text field.
func (m Movie) Normalize() Movie {
	m.Title = strings.TrimSpace(m.Title)
	m.Year = strings.TrimSpace(m.Year)
	m.Genre = strings.TrimSpace(m.Genre)
	m.Actors = strings.TrimSpace(m.Actors)
	m.Director = strings.TrimSpace(m.Director)
	m.Type = strings.TrimSpace(m.Type)
	m.Plot = strings.TrimSpace(m.Plot)
	return m
}

// OnlyTitle reports whether Title is the sole populated visible field.
func (m Movie) OnlyTitle() bool {
	return m.Year == "" && m.Genre == "" && m.Actors == "" &&
		m.Director == "" && m.Type == "" && m.Plot == ""
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
