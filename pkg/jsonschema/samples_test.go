package jsonschema

import (
	"strings"
	"testing"

	sjs "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAll(t *testing.T, texts ...string) []any {
	t.Helper()
	out := make([]any, 0, len(texts))
	for _, text := range texts {
		out = append(out, decode(t, text))
	}
	return out
}

func TestInferSamples_Empty(t *testing.T) {
	assert.Nil(t, InferSamples(nil, nil))
}

func TestInferSamples_Single(t *testing.T) {
	result := InferSamples(decodeAll(t, `{"a": 1}`), nil)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.SampleCount)
	assert.True(t, result.AllMatch)
	assert.Equal(t, `{"type":"object","properties":{"a":{"type":"integer"}},"required":["a"]}`, result.Schema.String())
}

func TestInferSamples_EndToEnd(t *testing.T) {
	samples := decodeAll(t,
		`{"id": 1, "name": "x"}`,
		`{"id": 2, "name": "y", "email": "a@b.com"}`,
	)

	result := InferSamples(samples, nil)
	require.NotNil(t, result)

	assert.Equal(t, 2, result.SampleCount)
	assert.False(t, result.AllMatch)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"id": {"type": "integer"},
			"name": {"type": "string"},
			"email": {"type": "string", "format": "email"}
		},
		"required": ["id", "name"]
	}`, result.Schema.String())
}

func TestInferSamples_AllMatch(t *testing.T) {
	result := InferSamples(decodeAll(t, `{"id": 1}`, `{"id": 2}`, `{"id": 3}`), nil)
	assert.True(t, result.AllMatch)
	assert.Equal(t, 3, result.SampleCount)
}

func TestInferSamples_RequiredThreshold(t *testing.T) {
	samples := decodeAll(t, `{"a": 1, "b": 1}`, `{"a": 2, "b": 2}`, `{"a": 3}`)

	opts := DefaultInferOptions()
	assert.Equal(t, []string{"a"}, InferSamples(samples, opts).Schema.Required)

	opts.RequiredThreshold = 0.5
	assert.Equal(t, []string{"a", "b"}, InferSamples(samples, opts).Schema.Required)
}

func TestInferSamples_NullableObject(t *testing.T) {
	result := InferSamples(decodeAll(t, `{"a": 1}`, `null`), nil)

	assert.Equal(t, TypeSet{"null", "object"}, result.Schema.Type)
	_, ok := result.Schema.Property("a")
	assert.True(t, ok)
	assert.Empty(t, result.Schema.Required)
}

func TestInferSamples_MixedTopLevel(t *testing.T) {
	result := InferSamples(decodeAll(t, `1`, `"x"`, `[true]`), nil)
	assert.Equal(t, TypeSet{"array", "integer", "string"}, result.Schema.Type)
}

func TestInferSamples_Pairwise(t *testing.T) {
	samples := decodeAll(t,
		`{"id": 1, "name": "x"}`,
		`{"id": 2, "name": "y", "email": "a@b.com"}`,
		`{"id": 3, "name": null}`,
	)
	opts := DefaultInferOptions()
	opts.Strategy = StrategyPairwise

	result := InferSamples(samples, opts)

	assert.Equal(t, []string{"id", "name", "email"}, result.Schema.PropertyNames())
	assert.Equal(t, []string{"id", "name"}, result.Schema.Required)
	name, _ := result.Schema.Property("name")
	assert.Equal(t, `{"anyOf":[{"type":"null"},{"type":"string"}]}`, name.String())
}

func TestInferSamples_PairwiseRequiredThreshold(t *testing.T) {
	samples := decodeAll(t, `{"id": 1, "name": "x"}`, `{"id": 2}`, `{"id": 3, "name": "z"}`)
	opts := DefaultInferOptions()
	opts.Strategy = StrategyPairwise

	assert.Equal(t, []string{"id"}, InferSamples(samples, opts).Schema.Required)

	opts.RequiredThreshold = 0.5
	assert.Equal(t, []string{"id", "name"}, InferSamples(samples, opts).Schema.Required)
}

func TestMergeSampleSchemas(t *testing.T) {
	objects := []*Schema{
		schemaOf(t, `{"type":"object","properties":{"a":{"type":"integer"},"b":{"type":"string"}},"required":["a","b"]}`),
		schemaOf(t, `{"type":"object","properties":{"a":{"type":"null"}},"required":["a"]}`),
	}
	opts := DefaultInferOptions()
	opts.Strategy = StrategyPairwise
	opts.RequiredThreshold = 0.5

	merged := MergeSampleSchemas(objects, opts)
	assert.Equal(t, []string{"a", "b"}, merged.Required)
	a, _ := merged.Property("a")
	assert.Equal(t, `{"anyOf":[{"type":"integer"},{"type":"null"}]}`, a.String())

	scalars := []*Schema{schemaOf(t, `{"type":"integer"}`), schemaOf(t, `{"type":"string"}`)}
	assert.Equal(t, `{"anyOf":[{"type":"integer"},{"type":"string"}]}`, MergeSampleSchemas(scalars, opts).String())
	assert.Equal(t, `{"type":["integer","string"]}`, MergeSampleSchemas(scalars, nil).String())
	assert.Equal(t, "{}", MergeSampleSchemas(nil, nil).String())
}

func TestInferSamples_OrderInsensitive(t *testing.T) {
	a := `{"id": 1, "tags": ["x"], "meta": {"k": "v"}}`
	b := `{"id": 2.5, "extra": null, "meta": {"k": "w", "n": 1}}`

	ab := InferSamples(decodeAll(t, a, b), nil).Schema
	ba := InferSamples(decodeAll(t, b, a), nil).Schema

	assert.True(t, ab.Equal(ba), "ab=%s ba=%s", ab, ba)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyBatch, s)

	s, err = ParseStrategy("pairwise")
	require.NoError(t, err)
	assert.Equal(t, StrategyPairwise, s)

	_, err = ParseStrategy("greedy")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

// compileSchema compiles an inferred schema with an independent validator.
func compileSchema(t *testing.T, s *Schema) *sjs.Schema {
	t.Helper()
	doc, err := sjs.UnmarshalJSON(strings.NewReader(s.String()))
	require.NoError(t, err)

	c := sjs.NewCompiler()
	require.NoError(t, c.AddResource("inferred.json", doc))
	compiled, err := c.Compile("inferred.json")
	require.NoError(t, err)
	return compiled
}

func TestInferSamples_SchemaAcceptsEverySample(t *testing.T) {
	corpora := map[string][]string{
		"objects": {
			`{"id": 1, "name": "x", "tags": ["a", "b"]}`,
			`{"id": 2, "tags": [], "owner": {"email": "o@p.com"}}`,
			`{"id": 3.5, "name": null, "owner": null}`,
		},
		"mixed": {
			`[1, "two", {"three": 3}]`,
			`"2024-05-01T12:00:00Z"`,
			`null`,
			`{"k": [[], [1], [true, null]]}`,
		},
		"nested arrays": {
			`{"rows": [{"a": 1}, {"b": "x"}, {"a": 2, "b": "y"}]}`,
			`{"rows": []}`,
		},
	}

	for name, texts := range corpora {
		for _, strategy := range []Strategy{StrategyBatch, StrategyPairwise} {
			t.Run(name+"/"+string(strategy), func(t *testing.T) {
				opts := DefaultInferOptions()
				opts.Strategy = strategy

				result := InferSamples(decodeAll(t, texts...), opts)
				compiled := compileSchema(t, result.Schema)

				for _, text := range texts {
					inst, err := sjs.UnmarshalJSON(strings.NewReader(text))
					require.NoError(t, err)
					assert.NoError(t, compiled.Validate(inst), "sample %s against %s", text, result.Schema)
				}
			})
		}
	}
}
