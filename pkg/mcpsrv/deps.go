package mcpsrv

import (
	"github.com/usestring/jsoninfer/internal/config"
	"github.com/usestring/jsoninfer/pkg/jsonschema"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config  *config.Config
	Formats *jsonschema.FormatDetector
}

// InferOptions returns the configured inference options, sharing the
// server's format cache.
func (d *Deps) InferOptions() *jsonschema.InferOptions {
	return d.Config.InferOptions(d.Formats)
}
