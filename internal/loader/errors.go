package loader

import (
	"errors"
	"fmt"
)

// Kind classifies a SourceError.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindRead        Kind = "read"
	KindInvalidJSON Kind = "invalid_json"
	KindInvalidYAML Kind = "invalid_yaml"
	KindEmpty       Kind = "empty"
)

// StdinSource names standard input in samples and errors.
const StdinSource = "<stdin>"

// ErrNoSamples is returned when loading produced no sample at all.
var ErrNoSamples = errors.New("No samples provided.")

// SourceError reports a sample source that could not be loaded.
type SourceError struct {
	Source string
	Kind   Kind
	Err    error
}

func (e *SourceError) Error() string {
	stdin := e.Source == StdinSource
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("File not found: %s", e.Source)
	case KindInvalidJSON:
		if stdin {
			return fmt.Sprintf("Invalid JSON: %v", e.Err)
		}
		return fmt.Sprintf("Invalid JSON in %s: %v", e.Source, e.Err)
	case KindInvalidYAML:
		if stdin {
			return fmt.Sprintf("Invalid YAML: %v", e.Err)
		}
		return fmt.Sprintf("Invalid YAML in %s: %v", e.Source, e.Err)
	case KindEmpty:
		if stdin {
			return "Empty input."
		}
		return fmt.Sprintf("Empty input: %s", e.Source)
	default:
		return fmt.Sprintf("Cannot read %s: %v", e.Source, e.Err)
	}
}

func (e *SourceError) Unwrap() error { return e.Err }

// IsKind reports whether err is a SourceError of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *SourceError
	return errors.As(err, &se) && se.Kind == kind
}
