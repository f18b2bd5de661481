package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"hrslides/pptx"
	"hrslides/slides"
)

// step decodes either "Label" or {"label": ..., "description": ...}.
type step slides.Step

func (s *step) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		return json.Unmarshal(data, &s.Label)
	}
	var obj struct {
		Label       string `json:"label"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	s.Label, s.Description = obj.Label, obj.Description
	return nil
}

// milestone decodes either ["2005", "Loi Borloo"] or {"label", "description"}.
type milestone slides.Milestone

func (m *milestone) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if len(raw) == 0 || len(raw) > 2 {
			return fmt.Errorf("milestone needs [label, description], got %d values", len(raw))
		}
		pair, err := scalarStrings(raw)
		if err != nil {
			return err
		}
		m.Label = pair[0]
		if len(pair) == 2 {
			m.Description = pair[1]
		}
		return nil
	}
	var obj struct {
		Label       string `json:"label"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	m.Label, m.Description = obj.Label, obj.Description
	return nil
}

// stage decodes {"label", "value"} where value may be a string or a number.
type stage slides.Stage

func (st *stage) UnmarshalJSON(data []byte) error {
	var obj struct {
		Label string          `json:"label"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	st.Label = obj.Label
	v, err := scalarString(obj.Value)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	st.Value = v
	return nil
}

// card decodes {"value", "label", "color"} with an optional hex color.
type card slides.Card

func (c *card) UnmarshalJSON(data []byte) error {
	var obj struct {
		Value json.RawMessage `json:"value"`
		Label string          `json:"label"`
		Color string          `json:"color"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	v, err := scalarString(obj.Value)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	c.Value, c.Label = v, obj.Label
	if obj.Color != "" {
		col, err := pptx.ParseColor(obj.Color)
		if err != nil {
			return fmt.Errorf("color: %w", err)
		}
		c.Color = col
	}
	return nil
}

var errNotScalar = errors.New("expected a string or a number")

// scalarString accepts a JSON string or number and returns its text.
func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", errNotScalar
	}
	return n.String(), nil
}

func scalarStrings(raw []json.RawMessage) ([]string, error) {
	out := make([]string, len(raw))
	for i, r := range raw {
		v, err := scalarString(r)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func convert[T any, U any](in []U, f func(U) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

// member accepts "desc" or "description" for the optional text.
type member slides.Member

func (m *member) UnmarshalJSON(data []byte) error {
	var obj struct {
		Name        string `json:"name"`
		Role        string `json:"role"`
		Desc        string `json:"desc"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	m.Name, m.Role, m.Description = obj.Name, obj.Role, obj.Desc
	if m.Description == "" {
		m.Description = obj.Description
	}
	return nil
}
