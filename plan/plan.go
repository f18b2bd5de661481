// Package plan reads deck plans and turns them into slides.
//
// A plan is a JSON or YAML document with deck metadata and a list of
// slides. Each slide names its layout and carries that layout's keys at
// the top level, the way the assistant skill emits them.
package plan

import (
	"encoding/json"
	"fmt"
)

// Plan is a whole deck.
type Plan struct {
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle,omitempty"`
	Author   string      `json:"author,omitempty"`
	Language string      `json:"language,omitempty"`
	Slides   []SlideSpec `json:"slides"`
}

// SlideSpec is one slide entry. Layout selects the layout function; every
// other key stays raw until the layout decodes it.
type SlideSpec struct {
	Layout string
	Fields map[string]json.RawMessage
}

// UnmarshalJSON keeps every key of the slide object.
func (s *SlideSpec) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	s.Fields = fields
	s.Layout = ""
	if raw, ok := fields["layout"]; ok {
		if err := json.Unmarshal(raw, &s.Layout); err != nil {
			return fmt.Errorf("layout: %w", err)
		}
	}
	return nil
}

// MarshalJSON writes the slide back as a flat object.
func (s SlideSpec) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.Fields)+1)
	for k, v := range s.Fields {
		out[k] = v
	}
	layout, err := json.Marshal(s.Layout)
	if err != nil {
		return nil, err
	}
	out["layout"] = layout
	return json.Marshal(out)
}

// Has reports whether key is present and not null.
func (s SlideSpec) Has(key string) bool {
	raw, ok := s.Fields[key]
	return ok && string(raw) != "null"
}

// Decode unmarshals key into v. A missing key leaves v untouched.
func (s SlideSpec) Decode(key string, v any) error {
	raw, ok := s.Fields[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &FieldError{Layout: s.Layout, Key: key, Index: -1, Err: err}
	}
	return nil
}

// String returns key as a string, or def when it is absent.
func (s SlideSpec) String(key, def string) (string, error) {
	if !s.Has(key) {
		return def, nil
	}
	var v string
	if err := s.Decode(key, &v); err != nil {
		return "", err
	}
	return v, nil
}

// Notes returns the slide's speaker notes, empty when absent.
func (s SlideSpec) Notes() string {
	n, _ := s.String("notes", "")
	return n
}
