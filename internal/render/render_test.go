package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/jsoninfer/pkg/jsonschema"
)

func finalized(t *testing.T) *jsonschema.Schema {
	t.Helper()
	v := map[string]any{"id": json.Number("1"), "url": "https://ex.io/<a>"}
	return jsonschema.Finalize(jsonschema.Infer(v, nil), "2020-12", "Thing")
}

func TestMarshal_Indented(t *testing.T) {
	out, err := Marshal(finalized(t), 2)
	require.NoError(t, err)

	expected := `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Thing",
  "type": "object",
  "properties": {
    "id": {
      "type": "integer"
    },
    "url": {
      "type": "string",
      "format": "uri"
    }
  },
  "required": [
    "id",
    "url"
  ]
}
`
	assert.Equal(t, expected, string(out))
}

func TestMarshal_Compact(t *testing.T) {
	out, err := Marshal(finalized(t), 0)
	require.NoError(t, err)
	assert.Equal(t,
		`{"$schema":"https://json-schema.org/draft/2020-12/schema","title":"Thing","type":"object","properties":{"id":{"type":"integer"},"url":{"type":"string","format":"uri"}},"required":["id","url"]}`+"\n",
		string(out))
}

func TestMarshal_EmptyItemsStayInline(t *testing.T) {
	s := jsonschema.Infer([]any{}, nil)
	out, err := Marshal(s, 2)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"type\": \"array\",\n  \"items\": {}\n}\n", string(out))
}

func TestWrite(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, Write(&stdout, "", []byte("x\n")))
	assert.Equal(t, "x\n", stdout.String())

	path := filepath.Join(t.TempDir(), "schema.json")
	stdout.Reset()
	require.NoError(t, Write(&stdout, path, []byte("y\n")))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "y\n", string(data))

	err = Write(&stdout, filepath.Join(t.TempDir(), "missing", "schema.json"), nil)
	assert.ErrorContains(t, err, "writing output")
}

func TestFieldStats(t *testing.T) {
	stats := []jsonschema.FieldStat{
		{Path: "id", Type: "integer", Frequency: 1, Required: true, DistinctCount: 1500, Examples: []any{json.Number("1"), json.Number("2"), json.Number("3")}},
		{Path: "email", Type: "null|string", Frequency: 0.5, Nullable: true, Format: "email", DistinctCount: 1, Examples: []any{"a@b.io"}},
		{Path: "a.b.c.d.e.f (truncated at depth limit)", Type: "..."},
	}

	var buf bytes.Buffer
	require.NoError(t, FieldStats(&buf, stats, 2000))

	expected := "Field statistics (2,000 samples)\n" +
		"  id: integer (100%, required, 1,500 distinct) — 1, 2\n" +
		"  email: null|string (50%, nullable, email, 1 distinct) — \"a@b.io\"\n" +
		"  a.b.c.d.e.f (truncated at depth limit): ...\n"
	assert.Equal(t, expected, buf.String())
}

func TestFormatExamples_TruncatesByRune(t *testing.T) {
	long := strings.Repeat("é", 45)
	assert.Equal(t, `"`+strings.Repeat("é", 37)+`..."`, formatExamples([]any{long}, 3))

	short := strings.Repeat("日", 40)
	assert.Equal(t, `"`+short+`"`, formatExamples([]any{short}, 3))
}

func TestFieldStats_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FieldStats(&buf, nil, 1))
	assert.Equal(t, "Field statistics (1 samples)\n  (no object fields)\n", buf.String())
}
