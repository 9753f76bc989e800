package media

import (
	"fmt"
	"strings"
)

// ParseOrigin parses a navigation origin tag.
//
// An absent (empty) tag defaults to OriginLocal. This mirrors how titles
// opened from the user's own library never carried a tag; use
// ParseOriginStrict where that default is not wanted.
func ParseOrigin(tag string) (Origin, error) {
	if strings.TrimSpace(tag) == "" {
		return OriginLocal, nil
	}
	return ParseOriginStrict(tag)
}

// ParseOriginStrict parses a navigation origin tag and rejects absent tags.
// "tmdb" is accepted as an alias for the catalog.
func ParseOriginStrict(tag string) (Origin, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "local":
		return OriginLocal, nil
	case "catalog", "tmdb":
		return OriginCatalog, nil
	case "":
		return "", fmt.Errorf("%w: missing origin", ErrInvalidOrigin)
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrigin, tag)
	}
}

// Valid reports whether o is one of the modeled origins.
func (o Origin) Valid() bool {
	return o == OriginLocal || o == OriginCatalog
}
