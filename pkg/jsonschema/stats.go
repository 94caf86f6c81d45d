package jsonschema

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// FieldStat contains per-field statistics computed across multiple JSON samples.
type FieldStat struct {
	Path          string  `json:"path"`             // JSON path (e.g., "user.name", "items[].id")
	Type          string  `json:"type"`             // Schema type; unions are joined with "|"
	Frequency     float64 `json:"frequency"`        // Fraction of samples containing this field (0.0-1.0)
	Required      bool    `json:"required"`         // Present in all samples and never null
	Nullable      bool    `json:"nullable"`         // At least one sample has null for this field
	DistinctCount int     `json:"distinct_count"`   // Number of distinct non-null values observed
	Examples      []any   `json:"examples"`         // Up to 3 example values
	Format        string  `json:"format,omitempty"` // Format hint carried by the schema
}

const (
	defaultMaxDepth = 5
	maxExamples     = 3
)

// ComputeFieldStats walks the merged schema and computes per-field statistics
// by cross-referencing the parsed samples. Returns a flat table of field stats.
func ComputeFieldStats(schema *Schema, samples []any) []FieldStat {
	if schema == nil || len(samples) == 0 {
		return nil
	}

	var stats []FieldStat
	walkSchema(schema, "", samples, 0, defaultMaxDepth, &stats)
	return stats
}

// walkSchema recursively walks the schema and collects field stats.
func walkSchema(schema *Schema, path string, samples []any, depth, maxDepth int, stats *[]FieldStat) {
	if schema == nil || depth > maxDepth {
		if depth > maxDepth && path != "" {
			*stats = append(*stats, FieldStat{
				Path: path + " (truncated at depth limit)",
				Type: "...",
			})
		}
		return
	}

	if len(samples) == 0 || !schema.Types().Has(TypeObject) || schema.Properties == nil {
		return
	}

	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		propName := pair.Key
		propSchema := pair.Value

		fieldPath := propName
		if path != "" {
			fieldPath = path + "." + propName
		}

		*stats = append(*stats, computeSingleFieldStat(fieldPath, propSchema, propName, samples))

		if propSchema.Types().Has(TypeObject) && propSchema.Properties != nil {
			walkSchema(propSchema, fieldPath, collectNestedSamples(propName, samples), depth+1, maxDepth, stats)
		}

		if propSchema.Types().Has(TypeArray) && propSchema.Items != nil &&
			propSchema.Items.Types().Has(TypeObject) && propSchema.Items.Properties != nil {
			walkSchema(propSchema.Items, fieldPath+"[]", collectArrayItemSamples(propName, samples), depth+1, maxDepth, stats)
		}
	}
}

// computeSingleFieldStat computes statistics for a single field across all samples.
// Presence and null observations are tracked as bitmaps of sample indices.
func computeSingleFieldStat(path string, schema *Schema, fieldName string, samples []any) FieldStat {
	stat := FieldStat{
		Path:   path,
		Type:   resolveType(schema),
		Format: schema.Format,
	}

	present := roaring.New()
	nulls := roaring.New()
	distinctValues := make(map[string]bool)
	var examples []any

	for i, sample := range samples {
		obj, ok := sample.(map[string]any)
		if !ok {
			continue
		}

		val, exists := obj[fieldName]
		if !exists {
			continue
		}
		present.Add(uint32(i))

		if val == nil {
			nulls.Add(uint32(i))
			continue
		}

		// Nested values are described by their child stats, so only their
		// distinctness is recorded.
		key := fmt.Sprintf("%v", val)
		if !distinctValues[key] {
			distinctValues[key] = true
			switch val.(type) {
			case map[string]any, []any:
			default:
				if len(examples) < maxExamples {
					examples = append(examples, val)
				}
			}
		}
	}

	total := uint64(len(samples))
	if total > 0 {
		stat.Frequency = float64(present.GetCardinality()) / float64(total)
	}
	stat.Required = present.GetCardinality() == total && nulls.IsEmpty()
	stat.Nullable = !nulls.IsEmpty()
	stat.DistinctCount = len(distinctValues)
	stat.Examples = examples
	if stat.Examples == nil {
		stat.Examples = []any{}
	}

	return stat
}

// collectNestedSamples extracts the value of a field from each sample object.
func collectNestedSamples(fieldName string, samples []any) []any {
	var nested []any
	for _, sample := range samples {
		obj, ok := sample.(map[string]any)
		if !ok {
			continue
		}
		if val, exists := obj[fieldName]; exists && val != nil {
			nested = append(nested, val)
		}
	}
	return nested
}

// collectArrayItemSamples extracts all array items from a field across samples.
func collectArrayItemSamples(fieldName string, samples []any) []any {
	var items []any
	for _, sample := range samples {
		obj, ok := sample.(map[string]any)
		if !ok {
			continue
		}
		arr, ok := obj[fieldName].([]any)
		if !ok {
			continue
		}
		for _, item := range arr {
			if item != nil {
				items = append(items, item)
			}
		}
	}
	return items
}

// resolveType returns the type string for a schema, handling unions.
func resolveType(schema *Schema) string {
	types := schema.Types()
	if len(types) == 0 {
		return "unknown"
	}
	return strings.Join(types, "|")
}
