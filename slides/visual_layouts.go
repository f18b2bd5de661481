package slides

import (
	"fmt"
	"math"
	"strconv"

	"hrslides/design"
	"hrslides/pptx"

	ppt "github.com/VantageDataChat/GoPPT"
)

// AddProcessFlowSlide adds connected chevrons, one per step, with numbered
// ovals above and descriptions below.
func AddProcessFlowSlide(p *ppt.Presentation, title string, steps []Step, notes string) (*ppt.Slide, error) {
	n := int64(len(steps))
	if n == 0 {
		return nil, fmt.Errorf("process flow: %w", ErrNoItems)
	}

	s := addBlankSlide(p, design.White)
	addHeader(s, title)

	gap := pptx.Inches(0.05)
	chevronW := (design.ContentWidth - gap*(n-1)) / n
	chevronH := pptx.Inches(1.2)
	chevronY := pptx.Inches(2.5)
	circle := pptx.Inches(0.5)

	for i, step := range steps {
		x := design.MarginLeft + int64(i)*(chevronW+gap)
		color := design.ProcessColors[i%len(design.ProcessColors)]

		addChevron(s, x, chevronY, chevronW, chevronH, color, step.Label, textStyle{size: 12, color: design.White})
		addOval(s, x+(chevronW-circle)/2, pptx.Inches(1.85), circle, circle, color, strconv.Itoa(i+1),
			textStyle{size: 14, color: design.White})
	}

	descW := design.ContentWidth / n
	for i, step := range steps {
		desc := step.Description
		if desc == "" {
			desc = step.Label
		}
		addTextbox(s, design.MarginLeft+int64(i)*descW, pptx.Inches(4.2), descW, pptx.Inches(2.5), desc, textStyle{
			size:  13,
			color: design.Gray,
			align: ppt.HorizontalCenter,
		})
	}

	addSpeakerNotes(s, notes)
	return s, nil
}

// AddTimelineSlide adds a horizontal axis with milestones alternating above
// (even indexes) and below (odd indexes). A single milestone is centered.
func AddTimelineSlide(p *ppt.Presentation, title string, milestones []Milestone, notes string) (*ppt.Slide, error) {
	n := int64(len(milestones))
	if n == 0 {
		return nil, fmt.Errorf("timeline: %w", ErrNoItems)
	}

	s := addBlankSlide(p, design.White)
	addHeader(s, title)

	lineY := pptx.Inches(4.0)
	lineLeft := design.MarginLeft + pptx.Inches(0.3)
	lineW := design.ContentWidth - pptx.Inches(0.6)
	addLine(s, lineLeft, lineY, lineW, pptx.Pt(4), design.Navy)

	dot := pptx.Inches(0.3)
	textW := pptx.Inches(2.2)
	dateStyle := textStyle{size: 14, color: design.Orange, bold: true, align: ppt.HorizontalCenter}
	descStyle := textStyle{size: 12, color: design.Gray, align: ppt.HorizontalCenter}

	for i, m := range milestones {
		xCenter := lineLeft + lineW/2
		if n > 1 {
			xCenter = lineLeft + lineW*int64(i)/(n-1)
		}
		addOval(s, xCenter-dot/2, lineY-dot/2, dot, dot, design.Orange, "", textStyle{})

		textX := xCenter - textW/2
		if i%2 == 0 {
			addTextbox(s, textX, pptx.Inches(2.2), textW, pptx.Inches(0.5), m.Label, dateStyle)
			addTextbox(s, textX, pptx.Inches(2.7), textW, pptx.Inches(1.0), m.Description, descStyle)
			addLine(s, xCenter, pptx.Inches(3.7), pptx.Pt(2), pptx.Inches(0.3), design.LightGray)
		} else {
			addLine(s, xCenter, lineY+dot/2, pptx.Pt(2), pptx.Inches(0.3), design.LightGray)
			addTextbox(s, textX, pptx.Inches(4.6), textW, pptx.Inches(0.5), m.Label, dateStyle)
			addTextbox(s, textX, pptx.Inches(5.1), textW, pptx.Inches(1.0), m.Description, descStyle)
		}
	}

	addSpeakerNotes(s, notes)
	return s, nil
}

// AddMatrixSlide adds a 2x2 matrix of tinted quadrants with optional axis labels.
func AddMatrixSlide(p *ppt.Presentation, title string, m Matrix, notes string) *ppt.Slide {
	s := addBlankSlide(p, design.White)
	addHeader(s, title)

	left := pptx.Inches(1.8)
	top := pptx.Inches(2.0)
	cellW := pptx.Inches(4.8)
	cellH := pptx.Inches(2.5)
	gap := pptx.Inches(0.1)

	quadrants := []struct {
		col, row int64
		q        Quadrant
	}{
		{0, 0, m.TopLeft},
		{1, 0, m.TopRight},
		{0, 1, m.BottomLeft},
		{1, 1, m.BottomRight},
	}
	for i, quad := range quadrants {
		x := left + quad.col*(cellW+gap)
		y := top + quad.row*(cellH+gap)

		addRoundedRectangle(s, x, y, cellW, cellH, design.MatrixColors[i], pptx.Color{})
		addTextbox(s, x+pptx.Inches(0.2), y+pptx.Inches(0.15), cellW-pptx.Inches(0.4), pptx.Inches(0.5), quad.q.Title, textStyle{
			size:  16,
			color: design.Navy,
			bold:  true,
		})
		if len(quad.q.Items) > 0 {
			addMultilineTextbox(s,
				x+pptx.Inches(0.3), y+pptx.Inches(0.7),
				cellW-pptx.Inches(0.5), cellH-pptx.Inches(0.9),
				quad.q.Items,
				textStyle{size: 13, color: design.DarkText},
				listStyle{bullet: design.BulletChar, bulletColor: design.Orange, spaceAfter: 4},
			)
		}
	}

	axis := textStyle{size: 13, color: design.Navy, bold: true, align: ppt.HorizontalCenter}
	if m.YLabel != "" {
		addTextbox(s, pptx.Inches(0.2), top+cellH-pptx.Inches(0.3), pptx.Inches(1.4), pptx.Inches(0.5), m.YLabel, axis)
	}
	if m.XLabel != "" {
		addTextbox(s, left+cellW-pptx.Inches(0.5), top+2*cellH+gap+pptx.Inches(0.15), cellW+gap, pptx.Inches(0.4), m.XLabel, axis)
	}

	addSpeakerNotes(s, notes)
	return s
}

// AddPyramidSlide adds stacked bars narrowing toward the top. levels run
// from the top (narrowest) to the base.
func AddPyramidSlide(p *ppt.Presentation, title string, levels []string, notes string) (*ppt.Slide, error) {
	n := int64(len(levels))
	if n == 0 {
		return nil, fmt.Errorf("pyramid: %w", ErrNoItems)
	}

	s := addBlankSlide(p, design.White)
	addHeader(s, title)

	top := pptx.Inches(2.0)
	levelH := pptx.Inches(5.0) / n
	maxW := pptx.Inches(10.0)
	minW := pptx.Inches(3.0)
	centerX := design.SlideWidth / 2

	for i, level := range levels {
		w := minW + (maxW-minW)*(int64(i)+1)/n
		shape := addRoundedRectangle(s, centerX-w/2, top+int64(i)*levelH, w, levelH-pptx.Inches(0.08),
			design.PyramidColors[i%len(design.PyramidColors)], pptx.Color{})
		shapeText(s, shape, textStyle{size: 16, color: design.White, bold: true}, level)
	}

	addSpeakerNotes(s, notes)
	return s, nil
}

// checkSeries validates one chart series and returns its category labels
// clamped for display. Labels must stay distinct after clamping because a
// chart series keys its values by category.
func checkSeries(kind string, categories []string, values []float64) ([]string, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%s: %w", kind, ErrNoItems)
	}
	if len(categories) != len(values) {
		return nil, fmt.Errorf("%s: %d categories, %d values: %w", kind, len(categories), len(values), ErrLengthMismatch)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s: %q = %v: %w", kind, categories[i], v, ErrInvalidValue)
		}
	}
	labels := clampLabels(categories)
	seen := make(map[string]int, len(labels))
	for i, l := range labels {
		if j, ok := seen[l]; ok {
			return nil, fmt.Errorf("%s: %q and %q both read %q: %w", kind, categories[j], categories[i], l, ErrDuplicateCategory)
		}
		seen[l] = i
	}
	return labels, nil
}

// AddBarChartSlide adds a column chart of one series.
func AddBarChartSlide(p *ppt.Presentation, title string, categories []string, values []float64, notes string) (*ppt.Slide, error) {
	labels, err := checkSeries("bar chart", categories, values)
	if err != nil {
		return nil, err
	}

	s := addBlankSlide(p, design.White)
	addHeader(s, title)
	addBarChart(s,
		design.MarginLeft+pptx.Inches(0.5), pptx.Inches(2.0),
		design.ContentWidth-pptx.Inches(1.0), pptx.Inches(4.8),
		title, labels, values,
	)

	addSpeakerNotes(s, notes)
	return s, nil
}

// AddPieChartSlide adds a pie chart with percentage labels and a legend.
func AddPieChartSlide(p *ppt.Presentation, title string, categories []string, values []float64, notes string) (*ppt.Slide, error) {
	labels, err := checkSeries("pie chart", categories, values)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("pie chart: %q = %v: %w", categories[i], v, ErrNegativeValue)
		}
	}

	s := addBlankSlide(p, design.White)
	addHeader(s, title)
	addPieChart(s, pptx.Inches(2.5), pptx.Inches(1.8), pptx.Inches(8.0), pptx.Inches(5.2), title, labels, values)

	addSpeakerNotes(s, notes)
	return s, nil
}

// AddIconCardsSlide adds a grid of KPI cards: one row up to three cards,
// three columns by two rows up to six, four by two up to eight.
func AddIconCardsSlide(p *ppt.Presentation, title string, cards []Card, notes string) (*ppt.Slide, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("icon cards: %w", ErrNoItems)
	}
	if len(cards) > design.MaxGridItems {
		return nil, fmt.Errorf("icon cards: %d cards, max %d: %w", len(cards), design.MaxGridItems, ErrTooManyItems)
	}

	s := addBlankSlide(p, design.White)
	addHeader(s, title)

	cols, rows := gridShape(len(cards))
	gap := pptx.Inches(0.3)
	cardW := (design.ContentWidth - gap*int64(cols-1)) / int64(cols)
	cardH, startY := pptx.Inches(2.2), pptx.Inches(2.2)
	if rows > 1 {
		cardH, startY = pptx.Inches(2.0), pptx.Inches(2.0)
	}

	for i, card := range cards {
		x := design.MarginLeft + int64(i%cols)*(cardW+gap)
		y := startY + int64(i/cols)*(cardH+gap)
		color := card.Color.Or(design.ProcessColors[i%len(design.ProcessColors)])

		addRoundedRectangle(s, x, y, cardW, cardH, design.CardBackground, design.LightGray)
		addRectangle(s, x, y, cardW, pptx.Inches(0.08), color)

		addTextbox(s, x, y+pptx.Inches(0.2), cardW, pptx.Inches(1.0), card.Value, textStyle{
			size:   design.CardTitleSize,
			color:  color,
			bold:   true,
			align:  ppt.HorizontalCenter,
			anchor: ppt.TextAnchorBottom,
		})
		addTextbox(s, x+pptx.Inches(0.1), y+pptx.Inches(1.3), cardW-pptx.Inches(0.2), pptx.Inches(0.7), card.Label, textStyle{
			size:   13,
			color:  design.Gray,
			align:  ppt.HorizontalCenter,
			anchor: ppt.TextAnchorTop,
		})
	}

	addSpeakerNotes(s, notes)
	return s, nil
}
