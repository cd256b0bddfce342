package omdb

import (
	"strings"

	"moviedb/internal/movie"
)

// detailPayload models OMDb's title (t=) and id (i=) responses.
type detailPayload struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Actors   string `json:"Actors"`
	Plot     string `json:"Plot"`
	Type     string `json:"Type"`
	IMDbID   string `json:"imdbID"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// searchPayload models OMDb's search (s=) response.
type searchPayload struct {
	Search       []searchHit `json:"Search"`
	TotalResults string      `json:"totalResults"`
	Response     string      `json:"Response"`
	Error        string      `json:"Error"`
}

type searchHit struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
}

func (p detailPayload) toMovie() movie.Movie {
	return movie.Movie{
		Title:    clean(p.Title),
		Year:     clean(p.Year),
		Genre:    clean(p.Genre),
		Actors:   clean(p.Actors),
		Director: clean(p.Director),
		Type:     clean(p.Type),
		Plot:     clean(p.Plot),
	}.Normalize()
}

// clean drops OMDb's "N/A" placeholder.
func clean(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}

// ok reports whether OMDb flagged the response as successful.
func ok(response string) bool {
	return strings.EqualFold(strings.TrimSpace(response), "True")
}

// answer sorts OMDb's Response:"False" messages. The catalog answers some
// queries definitively (no such title, search too broad); everything else
// (bad key, exhausted quota, server trouble) is a catalog failure.
type answer int

const (
	answerFailure answer = iota
	answerNoMatch
	answerTooBroad
)

func classifyAnswer(message string) answer {
	message = strings.ToLower(strings.TrimSpace(message))
	switch {
	case strings.Contains(message, "not found"), strings.Contains(message, "incorrect imdb id"):
		return answerNoMatch
	case strings.Contains(message, "too many results"):
		return answerTooBroad
	default:
		return answerFailure
	}
}
