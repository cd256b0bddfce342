package lookup

import (
	"fmt"
	"strings"

	"moviedb/internal/services"
)

// Attribute names the movie field a query searches.
type Attribute string

const (
	AttributeTitle    Attribute = "title"
	AttributeActor    Attribute = "actor"
	AttributeDirector Attribute = "director"
	AttributeGenre    Attribute = "genre"
	AttributeYear     Attribute = "year"
)

// Attributes lists every queryable attribute in menu order.
var Attributes = []Attribute{
	AttributeTitle,
	AttributeActor,
	AttributeDirector,
	AttributeGenre,
	AttributeYear,
}

// ParseAttribute maps user input onto an Attribute. Plural forms ("actors",
// "genres") are accepted.
func ParseAttribute(value string) (Attribute, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "title", "name":
		return AttributeTitle, nil
	case "actor", "actors", "cast":
		return AttributeActor, nil
	case "director", "directors":
		return AttributeDirector, nil
	case "genre", "genres":
		return AttributeGenre, nil
	case "year":
		return AttributeYear, nil
	default:
		return "", services.Wrap(services.ErrInvalidInput, "lookup", "parse attribute", fmt.Sprintf("unknown attribute %q", value), nil)
	}
}

// Valid reports whether a is one of the known attributes.
func (a Attribute) Valid() bool {
	for _, known := range Attributes {
		if a == known {
			return true
		}
	}
	return false
}

// RemoteFallback reports whether a local miss on a may consult the remote
// catalog. Only titles qualify; the catalog is keyed by title.
func (a Attribute) RemoteFallback() bool {
	return a == AttributeTitle
}

func (a Attribute) String() string {
	return string(a)
}
