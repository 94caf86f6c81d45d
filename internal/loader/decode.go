package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/usestring/jsoninfer/pkg/contenttype"
)

var errTrailingData = errors.New("unexpected data after top-level value")

// Decode parses one source into its documents. A JSON source holds exactly
// one document; a YAML source may hold a stream of documents. Numbers keep
// their literal kind: JSON numbers decode to json.Number and YAML floats to a
// json.Number carrying a fraction or exponent.
func Decode(source string, data []byte, cat contenttype.Category) ([]any, error) {
	if cat == contenttype.YAML {
		return decodeYAML(source, data)
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, &SourceError{Source: source, Kind: KindInvalidJSON, Err: err}
	}
	return []any{v}, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}

func decodeYAML(source string, data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []any
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &SourceError{Source: source, Kind: KindInvalidYAML, Err: err}
		}
		docs = append(docs, ConvertYAML(v))
	}

	if len(docs) == 0 {
		return nil, &SourceError{Source: source, Kind: KindEmpty}
	}
	return docs, nil
}

// ConvertYAML recursively converts YAML-parsed values to JSON-compatible
// types. Mappings with non-string keys get stringified keys, timestamps
// become RFC 3339 strings and finite floats become json.Number literals that
// keep reading as non-integers.
//
// A non-string key that stringifies to an existing string key, such as 1
// next to "1", is dropped in favor of the string key.
func ConvertYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[k] = ConvertYAML(v)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprintf("%v", k)
				if _, taken := val[key]; taken {
					continue
				}
			}
			result[key] = ConvertYAML(v)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v := range val {
			result[i] = ConvertYAML(v)
		}
		return result
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return val
		}
		lit := strconv.FormatFloat(val, 'g', -1, 64)
		if !strings.ContainsAny(lit, ".eE") {
			lit += ".0"
		}
		return json.Number(lit)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return v
	}
}
