package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a plan file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and decodes the plan at path. It does not validate it.
func Load(path string) (*Plan, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes a plan. YAML goes through the JSON decoder after a
// generic yaml.v3 decode so both formats share one schema.
func Parse(data []byte, format Format) (*Plan, error) {
	switch format {
	case FormatJSON:
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse plan: %w", err)
		}
		js, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse plan: %w", err)
		}
		data = js
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var pl Plan
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&pl); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	return &pl, nil
}
