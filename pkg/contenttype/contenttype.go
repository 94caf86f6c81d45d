// Package contenttype classifies sample sources as JSON or YAML documents.
package contenttype

import (
	"mime"
	"path/filepath"
	"strings"
)

// Category represents the document syntax of a sample source.
type Category string

const (
	JSON    Category = "json"
	YAML    Category = "yaml"
	Unknown Category = "unknown"
)

// Classify returns the category for a content-type value such as
// "application/json; charset=utf-8" or a bare syntax name ("json", "yaml",
// "yml"). Uses mime.ParseMediaType to strip parameters before matching and
// falls back to strings.ToLower for malformed values.
func Classify(contentType string) Category {
	if contentType == "" {
		return Unknown
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	// JSON: application/json, application/vnd.*+json, any containing "json"
	case strings.Contains(mediaType, "json"):
		return JSON
	// YAML: application/yaml, text/yaml, application/x-yaml, "yml"
	case strings.Contains(mediaType, "yaml"), mediaType == "yml":
		return YAML
	default:
		return Unknown
	}
}

// FromPath classifies a file by its extension. .yaml and .yml files are
// YAML; .json files and every other extension are JSON.
func FromPath(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return YAML
	case ".json", "":
		return JSON
	}
	if c := Classify(mime.TypeByExtension(ext)); c != Unknown {
		return c
	}
	return JSON
}
