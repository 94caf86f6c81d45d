// Package jsonschema provides JSON Schema inference from arbitrary JSON data.
// It derives a schema per sample value and merges per-sample schemas into
// one schema that accepts every observed shape.
package jsonschema

import (
	"fmt"
	"math"
	"math/big"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
)

// InferOptions controls schema inference behavior.
type InferOptions struct {
	// DetectFormats attaches uuid, email, uri or date-time format hints to
	// string schemas.
	// Default: true
	DetectFormats bool
	// RequiredThreshold is the minimum fraction of merged object samples a
	// property must appear in to be listed as required. Values outside
	// [0,1] are clamped.
	// Default: 1.0 (present in every sample)
	RequiredThreshold float64
	// Strategy selects the merge algebra used to fold several schemas.
	// Default: StrategyBatch
	Strategy Strategy
	// Formats memoizes format detection. Nil detects without caching.
	Formats *FormatDetector
}

// DefaultInferOptions returns the default inference options.
func DefaultInferOptions() *InferOptions {
	return &InferOptions{
		DetectFormats:     true,
		RequiredThreshold: 1.0,
		Strategy:          StrategyBatch,
	}
}

// Infer derives the schema describing exactly the shape of v.
//
// v is a value as produced by a JSON or YAML decoder: nil, bool, string,
// json.Number, Go integer and float kinds, *big.Int, []any, map[string]any or
// map[any]any. Any other kind is described as a string. If opts is nil,
// DefaultInferOptions() is used.
//
// Keys of a map[any]any are converted with fmt.Sprint. When a non-string key
// prints the same as a string key of the same map, as with YAML keys 1 and
// "1", the string key wins and the other entry is not described. Two
// non-string keys printing alike collapse to one of them.
func Infer(v any, opts *InferOptions) *Schema {
	if opts == nil {
		opts = DefaultInferOptions()
	}
	return newInferrer(opts).infer(v)
}

type inferrer struct {
	opts   *InferOptions
	merger merger
}

func newInferrer(opts *InferOptions) *inferrer {
	return &inferrer{opts: opts, merger: newMerger(opts.RequiredThreshold, opts.Strategy)}
}

func (in *inferrer) infer(v any) *Schema {
	switch val := v.(type) {
	case nil:
		return &Schema{Type: Types(TypeNull)}
	case bool:
		return &Schema{Type: Types(TypeBoolean)}
	case json.Number:
		return &Schema{Type: Types(numberLiteralType(string(val)))}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, *big.Int:
		return &Schema{Type: Types(TypeInteger)}
	case float64:
		return &Schema{Type: Types(floatType(val))}
	case float32:
		return &Schema{Type: Types(floatType(float64(val)))}
	case string:
		return in.inferString(val)
	case []any:
		return in.inferArray(val)
	case map[string]any:
		return in.inferObject(val)
	case map[any]any:
		obj := make(map[string]any, len(val))
		for k, item := range val {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprint(k)
				if _, taken := val[key]; taken {
					continue
				}
			}
			obj[key] = item
		}
		return in.inferObject(obj)
	default:
		// Unknown kinds never abort inference.
		return &Schema{Type: Types(TypeString)}
	}
}

// numberLiteralType classifies a JSON number by its source text: only a
// literal without fraction or exponent is an integer.
func numberLiteralType(lit string) string {
	if strings.ContainsAny(lit, ".eE") {
		return TypeNumber
	}
	return TypeInteger
}

// floatType is used for numbers decoded without their source text, where a
// whole finite value is the best available evidence of an integer.
func floatType(f float64) string {
	if math.Trunc(f) == f && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return TypeInteger
	}
	return TypeNumber
}

func (in *inferrer) inferString(s string) *Schema {
	schema := &Schema{Type: Types(TypeString)}
	if in.opts.DetectFormats {
		schema.Format = in.opts.Formats.Detect(s)
	}
	return schema
}

func (in *inferrer) inferArray(arr []any) *Schema {
	if len(arr) == 0 {
		return &Schema{Type: Types(TypeArray), Items: &Schema{}}
	}

	itemSchemas := make([]*Schema, 0, len(arr))
	for _, item := range arr {
		itemSchemas = append(itemSchemas, in.infer(item))
	}

	return &Schema{
		Type:  Types(TypeArray),
		Items: in.merger.fold(itemSchemas),
	}
}

func (in *inferrer) inferObject(obj map[string]any) *Schema {
	schema := &Schema{
		Type:       Types(TypeObject),
		Properties: NewProperties(),
	}

	if len(obj) == 0 {
		return schema
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		schema.Properties.Set(k, in.infer(obj[k]))
	}
	// Every key of a single object is required relative to itself.
	schema.Required = keys

	return schema
}
