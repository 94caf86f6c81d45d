// Package query selects sub-documents from decoded samples with jq
// expressions.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Selector is a compiled jq expression. It is safe for concurrent use.
type Selector struct {
	expr string
	code *gojq.Code
}

// Compile parses and compiles a jq expression.
func Compile(expression string) (*Selector, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	return &Selector{expr: expression, code: code}, nil
}

// String returns the source expression.
func (s *Selector) String() string { return s.expr }

// Select runs the expression against one decoded value and returns every
// non-null output. The input must hold JSON-compatible Go values; YAML
// documents are converted first. label names the input in error messages.
//
// Numbers come back as int, float64 or *big.Int, so a whole literal such as
// 1.0 selected by the expression reads as an integer afterwards.
func (s *Selector) Select(label string, v any) ([]any, error) {
	var out []any
	iter := s.code.Run(v)
	for {
		item, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := item.(error); isErr {
			return nil, errors.New(formatJQError(label, err))
		}
		// Skip nil values
		if item == nil {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// formatJQError creates a helpful error message for JQ execution errors.
// It adds contextual hints to help users fix common issues.
//
// Runtime JQ errors (like "cannot iterate over: null") are plain errors
// without typed wrappers in gojq, so string matching decorates the message.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this sample)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}
