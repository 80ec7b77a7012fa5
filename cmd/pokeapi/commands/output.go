package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/Sternrassler/pokeapi-client/pkg/metrics"
	"github.com/Sternrassler/pokeapi-client/pkg/resource"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// maxListItems caps how many list entries a table cell shows.
const maxListItems = 8

// writeOutput encodes v as json or yaml, or calls renderTable.
func writeOutput(w io.Writer, format string, v any, renderTable func() error) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		// Round trip through JSON so yaml keys match the API field names
		generic, err := toGeneric(v)
		if err != nil {
			return err
		}
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(generic)
	case "table", "":
		return renderTable()
	default:
		return fmt.Errorf("unsupported output format %q (want table, json or yaml)", format)
	}
}

func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	return generic, nil
}

// renderResource prints the top-level fields of a resource as a
// Property/Value table.
func renderResource(w io.Writer, v any) error {
	generic, err := toGeneric(v)
	if err != nil {
		return err
	}
	fields, ok := generic.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot render %T as a table", v)
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")
	for _, key := range keys {
		if key == "names" {
			// Localized names would swamp the table
			continue
		}
		_ = table.Append(key, summarize(fields[key]))
	}
	return table.Render()
}

func renderLinks[T any](w io.Writer, links []resource.Link[T]) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "URL")
	for _, link := range links {
		id := ""
		if n, ok := link.ID(); ok {
			id = strconv.Itoa(n)
		}
		_ = table.Append(id, link.Name, link.URL)
	}
	return table.Render()
}

// summarize reduces a decoded JSON value to one table cell. Objects are shown
// by their name when they have one, arrays as a list of their entries.
func summarize(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]any:
		if name, ok := val["name"].(string); ok {
			return name
		}
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if nested, ok := val[key].(map[string]any); ok {
				if name, ok := nested["name"].(string); ok {
					return name
				}
			}
		}
		return fmt.Sprintf("{%d fields}", len(val))
	case []any:
		parts := make([]string, 0, len(val))
		for i, item := range val {
			if i == maxListItems {
				parts = append(parts, fmt.Sprintf("(+%d more)", len(val)-maxListItems))
				break
			}
			parts = append(parts, summarize(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

func printStats(w io.Writer) error {
	samples, err := metrics.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	for _, s := range samples {
		_ = table.Append(s.Name, strconv.FormatFloat(s.Value, 'f', -1, 64))
	}
	return table.Render()
}
