// Package render serializes finalized schemas and field statistics.
package render

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/jsoninfer/pkg/jsonschema"
)

// Marshal serializes s with the given indentation width followed by a
// newline. An indent of 0 writes compact JSON.
func Marshal(s *jsonschema.Schema, indent int) ([]byte, error) {
	compact, err := s.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	if indent <= 0 {
		return append(compact, '\n'), nil
	}

	// Reindenting keeps the key order MarshalJSON produced.
	var buf bytes.Buffer
	if err := stdjson.Indent(&buf, compact, "", strings.Repeat(" ", indent)); err != nil {
		return nil, fmt.Errorf("indenting schema: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write stores data in the file at path, or writes it to stdout when path
// is empty.
func Write(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// printer is a default English printer for localized numbers.
var printer = message.NewPrinter(language.English)

// FieldStats renders one line per field:
//
//	path: type (96%, nullable, email, 1,204 distinct) — "a@b.io", "c@d.io"
func FieldStats(w io.Writer, stats []jsonschema.FieldStat, sampleCount int) error {
	var b strings.Builder
	printer.Fprintf(&b, "Field statistics (%d samples)\n", sampleCount)
	if len(stats) == 0 {
		b.WriteString("  (no object fields)\n")
	}
	for _, s := range stats {
		renderFieldLine(&b, s)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderFieldLine(b *strings.Builder, s jsonschema.FieldStat) {
	// path: type
	fmt.Fprintf(b, "  %s: %s", s.Path, s.Type)
	if s.Type == "..." {
		b.WriteByte('\n')
		return
	}

	// Annotations
	notes := []string{printer.Sprintf("%.0f%%", s.Frequency*100)}
	if s.Required {
		notes = append(notes, "required")
	}
	if s.Nullable {
		notes = append(notes, "nullable")
	}
	if s.Format != "" {
		notes = append(notes, s.Format)
	}
	notes = append(notes, printer.Sprintf("%d distinct", s.DistinctCount))
	fmt.Fprintf(b, " (%s)", strings.Join(notes, ", "))

	// Examples
	exStr := formatExamples(s.Examples, 2)
	if exStr != "" {
		fmt.Fprintf(b, " — %s", exStr)
	}

	b.WriteByte('\n')
}

func formatExamples(examples []any, limit int) string {
	var parts []string
	for _, ex := range examples {
		if len(parts) >= limit {
			break
		}
		switch v := ex.(type) {
		case string:
			s := v
			if r := []rune(s); len(r) > 40 {
				s = string(r[:37]) + "..."
			}
			parts = append(parts, fmt.Sprintf("%q", s))
		case json.Number:
			parts = append(parts, v.String())
		case bool:
			parts = append(parts, fmt.Sprintf("%t", v))
		case nil:
			parts = append(parts, "null")
		default:
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	return strings.Join(parts, ", ")
}
