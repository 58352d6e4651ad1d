package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ParseTOML decodes a flat TOML document into site values. Top-level scalars
// become entries under their upper-cased key, tables and arrays are ignored, and
// empty strings are dropped the same way Parse drops empty values.
//
//	gist_id = "abc123"
//	featured_project_count = 4
func ParseTOML(text string) (map[string]string, error) {
	var doc map[string]any
	if _, err := toml.Decode(text, &doc); err != nil {
		return nil, fmt.Errorf("decoding site configuration: %w", err)
	}

	values := make(map[string]string, len(doc))
	for key, raw := range doc {
		var value string
		switch v := raw.(type) {
		case string:
			value = strings.TrimSpace(v)
		case int64, float64, bool:
			value = fmt.Sprint(v)
		default:
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		if key != "" && value != "" {
			values[key] = value
		}
	}
	return values, nil
}
