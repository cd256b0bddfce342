package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"moviedb/internal/movie"
	"moviedb/internal/services"
)

// Field names a queryable movie attribute.
type Field string

const (
	FieldTitle    Field = "title"
	FieldActor    Field = "actor"
	FieldDirector Field = "director"
	FieldGenre    Field = "genre"
	FieldYear     Field = "year"
)

const movieColumns = `id, title, year, genre, actors, director, type, plot`

// QueryByTitle returns movies whose title contains title. An empty title
// returns every stored movie.
func (s *Store) QueryByTitle(ctx context.Context, title string) ([]movie.Movie, error) {
	return s.Query(ctx, FieldTitle, title)
}

// QueryByActor returns movies whose cast contains actor.
func (s *Store) QueryByActor(ctx context.Context, actor string) ([]movie.Movie, error) {
	return s.Query(ctx, FieldActor, actor)
}

// QueryByDirector returns movies whose director field contains director.
func (s *Store) QueryByDirector(ctx context.Context, director string) ([]movie.Movie, error) {
	return s.Query(ctx, FieldDirector, director)
}

// QueryByGenre returns movies whose genre list contains genre.
func (s *Store) QueryByGenre(ctx context.Context, genre string) ([]movie.Movie, error) {
	return s.Query(ctx, FieldGenre, genre)
}

// QueryByYear returns movies released in year. Stored series ranges match on
// their starting year.
func (s *Store) QueryByYear(ctx context.Context, year string) ([]movie.Movie, error) {
	return s.Query(ctx, FieldYear, year)
}

// All returns every stored movie in insertion order.
func (s *Store) All(ctx context.Context) ([]movie.Movie, error) {
	return s.Query(ctx, FieldTitle, "")
}

// Query runs the lookup for field against value. Text fields match
// case-insensitive substrings with LIKE wildcards escaped; year matches the
// first four characters exactly and must itself be four digits.
func (s *Store) Query(ctx context.Context, field Field, value string) ([]movie.Movie, error) {
	value = strings.TrimSpace(value)

	var (
		where string
		args  []any
	)
	switch field {
	case FieldTitle, FieldActor, FieldDirector, FieldGenre:
		if value == "" && field != FieldTitle {
			return nil, services.Wrap(services.ErrInvalidInput, "store", "query", fmt.Sprintf("%s value is required", field), nil)
		}
		if value != "" {
			where = fmt.Sprintf(`WHERE %s LIKE ? ESCAPE '\'`, columnFor(field))
			args = []any{"%" + escapeLike(value) + "%"}
		}
	case FieldYear:
		if len(value) != 4 || !movie.ValidYear(value) {
			return nil, services.Wrap(services.ErrInvalidInput, "store", "query", fmt.Sprintf("year %q is not a 4-digit year", value), nil)
		}
		where = `WHERE substr(year, 1, 4) = ?`
		args = []any{value}
	default:
		return nil, services.Wrap(services.ErrInvalidInput, "store", "query", fmt.Sprintf("unsupported field %q", field), nil)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "store", "query", string(field), err)
	}
	defer rows.Close()

	movies, err := scanMovies(rows)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "store", "query", string(field), err)
	}
	return movies, nil
}

func columnFor(field Field) string {
	switch field {
	case FieldActor:
		return "actors"
	case FieldDirector:
		return "director"
	case FieldGenre:
		return "genre"
	default:
		return "title"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(scanner rowScanner) (movie.Movie, error) {
	var (
		m    movie.Movie
		year sql.NullString
	)
	if err := scanner.Scan(&m.ID, &m.Title, &year, &m.Genre, &m.Actors, &m.Director, &m.Type, &m.Plot); err != nil {
		return movie.Movie{}, err
	}
	m.Year = year.String
	return m, nil
}

func scanMovies(rows *sql.Rows) ([]movie.Movie, error) {
	var movies []movie.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
