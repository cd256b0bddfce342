package lookup

import "moviedb/internal/movie"

// Status is the terminal state of a lookup.
type Status string

const (
	StatusFound       Status = "found"
	StatusNotFound    Status = "not_found"
	StatusRemoteError Status = "remote_error"
)

// Source records where a result's candidates came from.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// Query describes one lookup request.
type Query struct {
	Attribute Attribute
	Value     string
	// BestMatch asks the remote catalog for a single best match instead of
	// every search hit.
	BestMatch bool
}

// Result is the outcome of Lookup. Candidates is empty unless Status is
// StatusFound. Err is set only for StatusRemoteError and wraps
// services.ErrRemote.
type Result struct {
	Status     Status        `json:"status"`
	Source     Source        `json:"source"`
	Candidates []movie.Movie `json:"candidates"`
	Err        error         `json:"-"`
}

// Found reports whether the lookup produced candidates.
func (r Result) Found() bool {
	return r.Status == StatusFound
}

// NeedsConfirmation reports whether the candidates came from the remote
// catalog and must be confirmed before they are stored.
func (r Result) NeedsConfirmation() bool {
	return r.Status == StatusFound && r.Source == SourceRemote
}
