package jsonschema

import (
	"bytes"
	"fmt"
	"slices"

	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// JSON Schema type names.
const (
	TypeNull    = "null"
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeString  = "string"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Properties is the insertion-ordered property map of an object schema.
type Properties = orderedmap.OrderedMap[string, *Schema]

// NewProperties returns an empty property map.
func NewProperties() *Properties {
	return orderedmap.New[string, *Schema]()
}

// TypeSet is the value of the "type" keyword. A single member marshals as a
// string, several members as a sorted array.
type TypeSet []string

// Types builds a sorted, duplicate-free TypeSet.
func Types(names ...string) TypeSet {
	if len(names) == 0 {
		return nil
	}
	out := slices.Clone(names)
	slices.Sort(out)
	return TypeSet(slices.Compact(out))
}

// Is reports whether the set is exactly the single type name.
func (t TypeSet) Is(name string) bool {
	return len(t) == 1 && t[0] == name
}

// Has reports whether name is a member of the set.
func (t TypeSet) Has(name string) bool {
	return slices.Contains(t, name)
}

// Equal reports whether both sets hold the same members.
func (t TypeSet) Equal(o TypeSet) bool {
	return slices.Equal(t, o)
}

func (t TypeSet) MarshalJSON() ([]byte, error) {
	switch len(t) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(t[0])
	default:
		return json.Marshal([]string(t))
	}
}

func (t *TypeSet) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*t = nil
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = Types(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("type must be a string or an array of strings: %w", err)
	}
	*t = Types(many...)
	return nil
}

// Schema is one node of an inferred JSON Schema document.
//
// A zero Schema is the permissive empty schema {}. Nodes are treated as
// immutable once built: merge functions allocate new nodes and may return
// an input unchanged, so callers must not modify schemas they did not build.
type Schema struct {
	// Version and Title are document metadata, only set on the root by Finalize.
	Version string
	Title   string

	Type       TypeSet
	Format     string
	Properties *Properties
	Required   []string
	Items      *Schema
	AnyOf      []*Schema
}

// IsEmpty reports whether s carries no constraint at all.
func (s *Schema) IsEmpty() bool {
	return s == nil || (len(s.Type) == 0 && len(s.AnyOf) == 0 && s.Format == "" &&
		s.Properties == nil && len(s.Required) == 0 && s.Items == nil)
}

// IsObject reports whether s describes objects only.
func (s *Schema) IsObject() bool { return s != nil && s.Type.Is(TypeObject) }

// IsArray reports whether s describes arrays only.
func (s *Schema) IsArray() bool { return s != nil && s.Type.Is(TypeArray) }

// Types flattens the type keyword and any anyOf alternatives into one
// sorted, duplicate-free set.
func (s *Schema) Types() TypeSet {
	if s == nil {
		return nil
	}
	names := slices.Clone([]string(s.Type))
	for _, alt := range s.AnyOf {
		names = append(names, alt.Types()...)
	}
	return Types(names...)
}

// Property returns the schema of the named property, if any.
func (s *Schema) Property(name string) (*Schema, bool) {
	if s == nil || s.Properties == nil {
		return nil, false
	}
	return s.Properties.Get(name)
}

// PropertyNames returns property names in insertion order.
func (s *Schema) PropertyNames() []string {
	if s == nil || s.Properties == nil {
		return nil
	}
	names := make([]string, 0, s.Properties.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Equal reports deep structural equality. Property order is ignored.
func (s *Schema) Equal(o *Schema) bool {
	if s == nil || o == nil {
		return s.IsEmpty() && o.IsEmpty()
	}
	if s.Version != o.Version || s.Title != o.Title || s.Format != o.Format {
		return false
	}
	if !s.Type.Equal(o.Type) || !slices.Equal(s.Required, o.Required) {
		return false
	}
	if (s.Items == nil) != (o.Items == nil) || (s.Items != nil && !s.Items.Equal(o.Items)) {
		return false
	}
	if len(s.AnyOf) != len(o.AnyOf) {
		return false
	}
	for i := range s.AnyOf {
		if !s.AnyOf[i].Equal(o.AnyOf[i]) {
			return false
		}
	}
	return propertiesEqual(s.Properties, o.Properties)
}

func propertiesEqual(a, b *Properties) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Len() != b.Len() {
		return false
	}
	for pair := a.Oldest(); pair != nil; pair = pair.Next() {
		other, ok := b.Get(pair.Key)
		if !ok || !pair.Value.Equal(other) {
			return false
		}
	}
	return true
}

// MarshalJSON writes keys in a fixed order: $schema, title, type, format,
// properties, required, items, anyOf.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	w := &objectWriter{}
	w.buf.WriteByte('{')
	if s.Version != "" {
		w.field("$schema", s.Version)
	}
	if s.Title != "" {
		w.field("title", s.Title)
	}
	if len(s.Type) > 0 {
		w.field("type", s.Type)
	}
	if s.Format != "" {
		w.field("format", s.Format)
	}
	if s.Properties != nil {
		w.key("properties")
		w.buf.WriteByte('{')
		first := true
		for pair := s.Properties.Oldest(); pair != nil && w.err == nil; pair = pair.Next() {
			if !first {
				w.buf.WriteByte(',')
			}
			first = false
			w.value(pair.Key)
			w.buf.WriteByte(':')
			w.value(pair.Value)
		}
		w.buf.WriteByte('}')
	}
	if len(s.Required) > 0 {
		w.field("required", s.Required)
	}
	if s.Items != nil {
		w.field("items", s.Items)
	}
	if len(s.AnyOf) > 0 {
		w.field("anyOf", s.AnyOf)
	}
	w.buf.WriteByte('}')
	if w.err != nil {
		return nil, w.err
	}
	return w.buf.Bytes(), nil
}

// objectWriter accumulates a JSON object without HTML escaping.
type objectWriter struct {
	buf    bytes.Buffer
	fields int
	err    error
}

func (w *objectWriter) key(name string) {
	if w.fields > 0 {
		w.buf.WriteByte(',')
	}
	w.fields++
	w.value(name)
	w.buf.WriteByte(':')
}

func (w *objectWriter) field(name string, v any) {
	w.key(name)
	w.value(v)
}

func (w *objectWriter) value(v any) {
	if w.err != nil {
		return
	}
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		w.err = err
		return
	}
	w.buf.Write(bytes.TrimRight(b.Bytes(), "\n"))
}

type schemaDoc struct {
	Version    string      `json:"$schema"`
	Title      string      `json:"title"`
	Type       TypeSet     `json:"type"`
	Format     string      `json:"format"`
	Properties *Properties `json:"properties"`
	Required   []string    `json:"required"`
	Items      *Schema     `json:"items"`
	AnyOf      []*Schema   `json:"anyOf"`
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	var doc schemaDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*s = Schema{
		Version:    doc.Version,
		Title:      doc.Title,
		Type:       doc.Type,
		Format:     doc.Format,
		Properties: doc.Properties,
		Items:      doc.Items,
		AnyOf:      doc.AnyOf,
	}
	if len(doc.Required) > 0 {
		s.Required = slices.Sorted(slices.Values(doc.Required))
	}
	return nil
}

// String returns the compact JSON form of s.
func (s *Schema) String() string {
	b, err := s.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid schema: %v>", err)
	}
	return string(b)
}
