package memo

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func exportFixture() []Memo {
	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	return []Memo{
		{ID: 2, Content: "call mom", CreatedAt: at.Add(time.Minute), UpdatedAt: at.Add(time.Minute)},
		{ID: 1, Content: "buy oat milk", CreatedAt: at, UpdatedAt: at.Add(time.Hour)},
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"json": FormatJSON, "": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestExport_JSONMatchesStoredForm(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, exportFixture(), FormatJSON))

	decoded, err := Decode(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.True(t, decoded[1].Equal(exportFixture()[1]))

	var generic []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &generic))
	assert.Equal(t, "2024-05-01T09:30:00.000Z", generic[1]["updatedAt"])
}

func TestExport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, exportFixture(), FormatYAML))

	var out []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "call mom", out[0]["content"])
	assert.Equal(t, 1, out[1]["id"])
	assert.Equal(t, "2024-05-01T08:30:00.000Z", out[1]["createdAt"])
}

func TestExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestExport_UnknownFormat(t *testing.T) {
	assert.Error(t, Export(&bytes.Buffer{}, exportFixture(), Format("xml")))
}
