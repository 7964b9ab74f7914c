package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/forkify/internal/domain"
)

var sample = []domain.ListEntry{
	{ID: "a1", Quantity: domain.Amount(4.5), Unit: "cup", Name: "flour"},
	{ID: "b2", Name: "olive oil to taste"},
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"list.json":     FormatJSON,
		"list.YAML":     FormatYAML,
		"out/list.yml":  FormatYAML,
		"list.txt":      FormatTable,
		"shopping-list": FormatTable,
	}
	for path, want := range tests {
		assert.Equal(t, want, FormatFromPath(path), path)
	}
}

func TestFormatIsUnknown(t *testing.T) {
	assert.False(t, FormatYAML.IsUnknown())
	assert.True(t, Format("xml").IsUnknown())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sample))

	var got struct {
		Items []struct {
			ID       string   `json:"id"`
			Quantity *float64 `json:"quantity"`
			Unit     string   `json:"unit"`
			Name     string   `json:"name"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].Quantity)
	assert.Equal(t, 4.5, *got.Items[0].Quantity)
	assert.Nil(t, got.Items[1].Quantity)
	assert.Contains(t, buf.String(), `"quantity": null`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sample))

	var got map[string][]map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got["items"], 2)
	assert.Equal(t, 4.5, got["items"][0]["quantity"])
	assert.Nil(t, got["items"][1]["quantity"])
	assert.Equal(t, "flour", got["items"][0]["name"])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, sample))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Contains(t, lines[2], "4.5")
	assert.Contains(t, lines[2], "flour")
	assert.Contains(t, lines[3], "olive oil to taste")
}

func TestWriteEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, nil))
	assert.Equal(t, "<empty>\n", buf.String())
}

func TestWriteUnsupported(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("xml"), sample)
	assert.ErrorContains(t, err, "unsupported format")
}
