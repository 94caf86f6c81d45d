package jsonschema

import (
	"math"
	"slices"
)

// Merge combines schemas into one schema accepting every shape they accept.
// This is the batch merge algebra: incompatible types become a sorted type
// union, object schemas merge property-wise and a property is required when
// the fraction of inputs holding it reaches requiredThreshold.
//
// Merge never modifies its inputs and may return one of them unchanged.
func Merge(schemas []*Schema, requiredThreshold float64) *Schema {
	return newMerger(requiredThreshold, StrategyBatch).merge(schemas)
}

type merger struct {
	threshold float64
	pairwise  bool
}

func newMerger(threshold float64, strategy Strategy) merger {
	return merger{
		threshold: clampThreshold(threshold),
		pairwise:  strategy == StrategyPairwise,
	}
}

func clampThreshold(t float64) float64 {
	switch {
	case math.IsNaN(t):
		return 1.0
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

// fold reduces schemas with the configured algebra.
func (m merger) fold(schemas []*Schema) *Schema {
	if !m.pairwise {
		return m.merge(schemas)
	}
	if len(schemas) == 0 {
		return &Schema{}
	}
	acc := schemas[0]
	for _, s := range schemas[1:] {
		acc = MergePair(acc, s)
	}
	return acc
}

func (m merger) merge(schemas []*Schema) *Schema {
	if len(schemas) == 0 {
		return &Schema{}
	}
	if len(schemas) == 1 {
		return schemas[0]
	}

	// Empty schemas (items of empty arrays) carry no type evidence.
	typed := make([]*Schema, 0, len(schemas))
	for _, s := range schemas {
		if !s.IsEmpty() {
			typed = append(typed, s)
		}
	}
	switch len(typed) {
	case 0:
		return &Schema{}
	case 1:
		return typed[0]
	}

	var names []string
	allObjects, allArrays := true, true
	for _, s := range typed {
		names = append(names, s.Types()...)
		allObjects = allObjects && s.IsObject()
		allArrays = allArrays && s.IsArray()
	}
	types := Types(names...)

	switch {
	case allObjects:
		return m.mergeObjects(typed, len(typed))
	case allArrays:
		return m.mergeArrays(typed)
	case types.Equal(Types(TypeObject, TypeNull)):
		// Nullable object: null inputs count toward the required fraction.
		objects := make([]*Schema, 0, len(typed))
		for _, s := range typed {
			if s.Types().Has(TypeObject) {
				objects = append(objects, s)
			}
		}
		merged := m.mergeObjects(objects, len(typed))
		merged.Type = types
		return merged
	}

	result := &Schema{Type: types}
	if format, ok := sharedStringFormat(typed); ok {
		result.Format = format
	}
	return result
}

// sharedStringFormat returns the format every schema agrees on, provided all
// of them are string schemas carrying one.
func sharedStringFormat(schemas []*Schema) (string, bool) {
	format := ""
	for _, s := range schemas {
		if !s.Type.Is(TypeString) || s.Format == "" {
			return "", false
		}
		if format != "" && s.Format != format {
			return "", false
		}
		format = s.Format
	}
	return format, format != ""
}

// mergeObjects applies the object-merge rule. total is the number of samples
// the required fraction is computed against.
func (m merger) mergeObjects(schemas []*Schema, total int) *Schema {
	var keys []string
	groups := make(map[string][]*Schema)
	for _, s := range schemas {
		if s.Properties == nil {
			continue
		}
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			if _, seen := groups[pair.Key]; !seen {
				keys = append(keys, pair.Key)
			}
			groups[pair.Key] = append(groups[pair.Key], pair.Value)
		}
	}

	merged := &Schema{
		Type:       Types(TypeObject),
		Properties: NewProperties(),
	}

	var required []string
	for _, k := range keys {
		merged.Properties.Set(k, m.fold(groups[k]))
		if total > 0 && float64(len(groups[k]))/float64(total) >= m.threshold {
			required = append(required, k)
		}
	}
	if len(required) > 0 {
		slices.Sort(required)
		merged.Required = required
	}

	return merged
}

func (m merger) mergeArrays(schemas []*Schema) *Schema {
	itemSchemas := make([]*Schema, 0, len(schemas))
	for _, s := range schemas {
		if s.Items != nil {
			itemSchemas = append(itemSchemas, s.Items)
		}
	}

	return &Schema{
		Type:  Types(TypeArray),
		Items: m.fold(itemSchemas),
	}
}

// MergePair merges two schemas. It is the pairwise merge algebra used when
// folding one pair at a time:
//
//   - deeply equal inputs merge to the first one unchanged;
//   - differing types become an anyOf of minimal {"type": T} alternatives;
//   - two objects merge property-wise, required is the intersection of both
//     required sets;
//   - two arrays merge their items;
//   - a union holding object or array keeps its properties and items.
//
// MergePair never modifies its inputs.
func MergePair(a, b *Schema) *Schema {
	if a.Equal(b) {
		return a
	}
	if b.IsEmpty() {
		return a
	}
	if a.IsEmpty() {
		return b
	}

	if len(a.AnyOf) > 0 || len(b.AnyOf) > 0 || !a.Type.Equal(b.Type) {
		return anyOfTypes(a, b)
	}

	if len(a.Type) == 0 {
		return a
	}

	merged := &Schema{Type: a.Type}
	if a.Type.Has(TypeObject) {
		mergePairObjects(merged, a, b)
	}
	if a.Type.Has(TypeArray) {
		merged.Items = mergePairItems(a.Items, b.Items)
	}
	if a.Format == b.Format {
		merged.Format = a.Format
	}
	return merged
}

// anyOfTypes builds the anyOf fallback from the flattened types of a and b.
func anyOfTypes(a, b *Schema) *Schema {
	types := Types(append(a.Types(), b.Types()...)...)
	if len(types) == 1 {
		return &Schema{Type: types}
	}
	alts := make([]*Schema, 0, len(types))
	for _, t := range types {
		alts = append(alts, &Schema{Type: Types(t)})
	}
	return &Schema{AnyOf: alts}
}

func mergePairObjects(merged, a, b *Schema) {
	merged.Properties = NewProperties()

	for _, name := range a.PropertyNames() {
		as, _ := a.Property(name)
		if bs, ok := b.Property(name); ok {
			merged.Properties.Set(name, MergePair(as, bs))
		} else {
			merged.Properties.Set(name, as)
		}
	}
	for _, name := range b.PropertyNames() {
		if _, ok := merged.Properties.Get(name); !ok {
			bs, _ := b.Property(name)
			merged.Properties.Set(name, bs)
		}
	}

	var required []string
	for _, name := range a.Required {
		if !slices.Contains(b.Required, name) {
			continue
		}
		if _, ok := merged.Properties.Get(name); ok {
			required = append(required, name)
		}
	}
	if len(required) > 0 {
		slices.Sort(required)
		merged.Required = required
	}
}

func mergePairItems(a, b *Schema) *Schema {
	switch {
	case !a.IsEmpty() && !b.IsEmpty():
		return MergePair(a, b)
	case !a.IsEmpty():
		return a
	case !b.IsEmpty():
		return b
	default:
		return &Schema{}
	}
}
