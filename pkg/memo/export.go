package memo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat returns the Format named by s ("json", "yaml" or "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (must be json or yaml)", s)
	}
}

// Export writes memos to w in the given format using the stored field
// names.
func Export(w io.Writer, memos []Memo, format Format) error {
	wire := make([]wireMemo, len(memos))
	for i, m := range memos {
		wire[i] = m.wire()
	}

	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(wire); err != nil {
			return fmt.Errorf("failed to encode memos as JSON: %w", err)
		}
		return nil

	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(wire); err != nil {
			return fmt.Errorf("failed to encode memos as YAML: %w", err)
		}
		return encoder.Close()

	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
