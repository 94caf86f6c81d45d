package jsonschema

import (
	"errors"
	"fmt"
)

// DefaultDraft is the draft used when none is selected.
const DefaultDraft = "2020-12"

// Draft names a JSON Schema dialect and its meta-schema URI.
type Draft struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

var drafts = []Draft{
	{Name: "2020-12", URL: "https://json-schema.org/draft/2020-12/schema"},
	{Name: "7", URL: "http://json-schema.org/draft-07/schema#"},
	{Name: "4", URL: "http://json-schema.org/draft-04/schema#"},
}

// ErrUnknownDraft is returned by ParseDraft for unsupported draft names.
var ErrUnknownDraft = errors.New("unknown draft")

// Drafts lists the supported drafts, newest first.
func Drafts() []Draft {
	out := make([]Draft, len(drafts))
	copy(out, drafts)
	return out
}

// ParseDraft validates a draft name. The empty string selects DefaultDraft.
func ParseDraft(name string) (string, error) {
	if name == "" {
		return DefaultDraft, nil
	}
	for _, d := range drafts {
		if d.Name == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: 2020-12, 7, 4)", ErrUnknownDraft, name)
}

// DraftURL returns the $schema URI for a draft name, falling back to
// DefaultDraft for unknown names.
func DraftURL(name string) string {
	for _, d := range drafts {
		if d.Name == name {
			return d.URL
		}
	}
	return drafts[0].URL
}

// Finalize returns a copy of s carrying the document metadata: $schema for
// the draft and, when non-empty, title. s itself is not modified.
func Finalize(s *Schema, draft, title string) *Schema {
	out := &Schema{}
	if s != nil {
		*out = *s
	}
	out.Version = DraftURL(draft)
	out.Title = title
	return out
}
