package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/jsoninfer/internal/loader"
)

// Error codes for MCP tool responses.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeInternal     = "INTERNAL"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// WrapLoadError converts a sample loading failure to a coded error. Decoding
// and selection problems are the caller's input; read failures and
// cancellation are internal.
func WrapLoadError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var srcErr *loader.SourceError
	switch {
	case loader.IsKind(err, loader.KindRead):
		coded = &CodedError{Code: ErrCodeInternal, Message: "reading sample", Cause: err}
	case errors.As(err, &srcErr), errors.Is(err, loader.ErrNoSamples):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: err.Error()}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		coded = &CodedError{Code: ErrCodeInternal, Message: "request cancelled", Cause: err}
	default:
		// jq runtime errors
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "select failed", Cause: err}
	}

	slog.Warn("tool input rejected",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}
