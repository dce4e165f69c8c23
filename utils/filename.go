package utils

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// IconFilename derives the cache filename of an icon from its URI.
// The query string is discarded:
// https://svgs.scryfall.io/sets/neo.svg?1647835200 -> neo.svg
func IconFilename(iconURI string) (string, error) {
	trimmed := strings.TrimSpace(iconURI)
	if trimmed == "" {
		return "", fmt.Errorf("empty icon uri")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid icon uri %q: %w", iconURI, err)
	}

	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("icon uri %q has no filename", iconURI)
	}
	return name, nil
}
