// Package export writes the shopping list to a file or stream.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/forkify/internal/domain"
)

// Format represents the output format type
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// FormatFromPath picks a format from the file extension. Anything that is
// not .json or .yaml/.yml becomes a table.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTable
	}
}

// Item is the serialized form of a list entry. Quantity is nil when the
// amount is unknown.
type Item struct {
	ID       string   `json:"id" yaml:"id"`
	Quantity *float64 `json:"quantity" yaml:"quantity"`
	Unit     string   `json:"unit" yaml:"unit"`
	Name     string   `json:"name" yaml:"name"`
}

type document struct {
	Items []Item `json:"items" yaml:"items"`
}

// Items converts list entries to their serialized form.
func Items(entries []domain.ListEntry) []Item {
	out := make([]Item, len(entries))
	for i, e := range entries {
		out[i] = Item{ID: e.ID, Unit: e.Unit, Name: e.Name}
		if e.Quantity.Valid {
			v := e.Quantity.Value
			out[i].Quantity = &v
		}
	}
	return out
}

// Write serializes entries to w in the given format.
func Write(w io.Writer, format Format, entries []domain.ListEntry) error {
	doc := document{Items: Items(entries)}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to serialize to JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return writeTable(w, entries)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeTable(w io.Writer, entries []domain.ListEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "<empty>")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tQTY\tUNIT\tINGREDIENT")
	fmt.Fprintln(tw, "-\t---\t----\t----------")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, e.Quantity, e.Unit, e.Name)
	}
	return tw.Flush()
}
