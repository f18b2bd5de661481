package slides

import "hrslides/pptx"

// Column is one side of a two-column slide.
type Column struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Step is one stage of a process flow. Description defaults to Label.
type Step struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Milestone is a dated point on a timeline.
type Milestone struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Quadrant is one cell of a 2x2 matrix.
type Quadrant struct {
	Title string   `json:"title"`
	Items []string `json:"items,omitempty"`
}

// Matrix is the content of a 2x2 matrix slide.
type Matrix struct {
	TopLeft     Quadrant `json:"top_left"`
	TopRight    Quadrant `json:"top_right"`
	BottomLeft  Quadrant `json:"bottom_left"`
	BottomRight Quadrant `json:"bottom_right"`
	XLabel      string   `json:"x_label,omitempty"`
	YLabel      string   `json:"y_label,omitempty"`
}

// Card is a KPI card. A zero Color picks the palette color for its position.
type Card struct {
	Value string     `json:"value"`
	Label string     `json:"label"`
	Color pptx.Color `json:"-"`
}

// Person is a node of an org chart.
type Person struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Stage is one step of a recruitment or conversion funnel.
type Stage struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Member is a team member card.
type Member struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"desc,omitempty"`
}
