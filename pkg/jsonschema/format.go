package jsonschema

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/usestring/jsoninfer/internal/cache"
)

// String format hints, tried in this order.
const (
	FormatUUID     = "uuid"
	FormatEmail    = "email"
	FormatURI      = "uri"
	FormatDateTime = "date-time"
)

// DefaultFormatCacheSize is the number of distinct strings a FormatDetector
// remembers when built with NewFormatDetector(0).
const DefaultFormatCacheSize = 4096

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	uriRegex      = regexp.MustCompile(`^https?://\S+$`)
	dateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:?\d{2})?)?$`)
)

// DetectFormat returns the format hint for s, or "" when no recognizer
// matches. The first matching recognizer wins.
func DetectFormat(s string) string {
	switch {
	case isUUID(s):
		return FormatUUID
	case emailRegex.MatchString(s):
		return FormatEmail
	case uriRegex.MatchString(s):
		return FormatURI
	case dateTimeRegex.MatchString(s):
		return FormatDateTime
	default:
		return ""
	}
}

// isUUID accepts only the canonical 8-4-4-4-12 form. uuid.Validate also
// accepts braced, urn and undashed forms, which are rejected by length.
func isUUID(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
}

// FormatDetector memoizes DetectFormat for repeated string values.
// It is safe for concurrent use.
type FormatDetector struct {
	cache *cache.FormatCache
}

// NewFormatDetector creates a detector remembering up to size distinct
// strings. A size <= 0 selects DefaultFormatCacheSize.
func NewFormatDetector(size int) (*FormatDetector, error) {
	if size <= 0 {
		size = DefaultFormatCacheSize
	}
	c, err := cache.NewFormatCache(size)
	if err != nil {
		return nil, err
	}
	return &FormatDetector{cache: c}, nil
}

// Detect returns the format hint for s.
func (d *FormatDetector) Detect(s string) string {
	if d == nil || d.cache == nil {
		return DetectFormat(s)
	}
	if f, ok := d.cache.Get(s); ok {
		return f
	}
	f := DetectFormat(s)
	d.cache.Put(s, f)
	return f
}
