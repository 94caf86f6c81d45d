package tools

import (
	"github.com/usestring/jsoninfer/internal/config"
	"github.com/usestring/jsoninfer/pkg/jsonschema"
)

// MimeJSON is the MIME type of every tool and resource payload.
const MimeJSON = "application/json"

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config  *config.Config
	Formats *jsonschema.FormatDetector
}

// inferOptions resolves per-call overrides against the configured defaults.
func (d *Deps) inferOptions(detectFormats *bool, threshold *float64, strategy string) (*jsonschema.InferOptions, error) {
	opts := d.Config.InferOptions(d.Formats)
	if detectFormats != nil {
		opts.DetectFormats = *detectFormats
	}
	if threshold != nil {
		if *threshold < 0 || *threshold > 1 {
			return nil, ErrInvalidInput("required_threshold must be between 0 and 1")
		}
		opts.RequiredThreshold = *threshold
	}
	if strategy != "" {
		s, err := jsonschema.ParseStrategy(strategy)
		if err != nil {
			return nil, ErrInvalidInput(err.Error())
		}
		opts.Strategy = s
	}
	return opts, nil
}

// draft resolves the draft name of a call, defaulting to the configured one.
func (d *Deps) draft(name string) (string, error) {
	if name == "" {
		name = d.Config.Draft
	}
	draft, err := jsonschema.ParseDraft(name)
	if err != nil {
		return "", ErrInvalidInput(err.Error())
	}
	return draft, nil
}
