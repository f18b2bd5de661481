// Package slides builds HR presentation slides on top of the design system.
//
// Each Add*Slide function appends exactly one slide to the presentation,
// places its shapes in insertion order and attaches optional speaker notes.
// Layouts that can reject their payload validate it before touching the
// presentation, so a failed call appends nothing.
package slides

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"hrslides/design"
	"hrslides/pptx"

	ppt "github.com/VantageDataChat/GoPPT"
)

// NewPresentation creates an empty 16:9 presentation sized to the design system.
func NewPresentation() *ppt.Presentation {
	return pptx.New(design.SlideWidth, design.SlideHeight)
}

// Save writes p to filename, appending ".pptx" when missing, and returns the
// name actually written.
func Save(p *ppt.Presentation, filename string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pptx") {
		filename += ".pptx"
	}
	if err := pptx.Save(p, filename); err != nil {
		return filename, fmt.Errorf("failed to save presentation %s: %w", filename, err)
	}
	return filename, nil
}

// textStyle is the character and paragraph styling of a text box.
type textStyle struct {
	size   int
	color  pptx.Color
	bold   bool
	align  ppt.HorizontalAlignment
	anchor ppt.TextAnchorType
	font   string
}

func (st textStyle) apply(f *ppt.Font) {
	font := st.font
	if font == "" {
		font = design.FontFamily
	}
	size := st.size
	if size == 0 {
		size = design.BodySize
	}
	f.SetName(font).SetSize(size).SetBold(st.bold).SetColor(st.color.Or(design.DarkText).PPT())
}

// listStyle adds bullets and paragraph spacing to a multi-line text box.
type listStyle struct {
	bullet      string
	bulletColor pptx.Color
	spaceAfter  int // points
}

func addBlankSlide(p *ppt.Presentation, background pptx.Color) *ppt.Slide {
	s := pptx.NextSlide(p)
	s.SetBackground(pptx.SolidFill(background))
	return s
}

func newTextbox(s *ppt.Slide, x, y, w, h int64) *ppt.RichTextShape {
	tb := s.CreateRichTextShape()
	tb.SetOffsetX(x).SetOffsetY(y)
	tb.SetWidth(w).SetHeight(h)
	tb.SetWordWrap(true)
	return tb
}

func align(p *ppt.Paragraph, a ppt.HorizontalAlignment) {
	if a == "" {
		a = ppt.HorizontalLeft
	}
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(a))
}

func addTextbox(s *ppt.Slide, x, y, w, h int64, text string, st textStyle) *ppt.RichTextShape {
	tb := newTextbox(s, x, y, w, h)
	if st.anchor != "" {
		tb.SetTextAnchor(st.anchor)
	}
	p := tb.GetActiveParagraph()
	align(p, st.align)
	st.apply(p.CreateTextRun(text).GetFont())
	return tb
}

func addMultilineTextbox(s *ppt.Slide, x, y, w, h int64, lines []string, st textStyle, ls listStyle) *ppt.RichTextShape {
	tb := newTextbox(s, x, y, w, h)
	for i, line := range lines {
		p := tb.GetActiveParagraph()
		if i > 0 {
			p = tb.CreateParagraph()
		}
		align(p, st.align)
		if ls.bullet != "" {
			color := ls.bulletColor.Or(st.color.Or(design.DarkText))
			p.SetBullet(ppt.NewBullet().SetCharBullet(ls.bullet).SetColor(color.PPT()))
		}
		if ls.spaceAfter > 0 {
			// spcPts is in hundredths of a point
			p.SetSpaceAfter(ls.spaceAfter * 100)
		}
		st.apply(p.CreateTextRun(line).GetFont())
	}
	return tb
}

func addSpeakerNotes(s *ppt.Slide, notes string) {
	if notes == "" {
		return
	}
	s.SetNotes(notes)
}

func addAutoShape(s *ppt.Slide, geom ppt.AutoShapeType, x, y, w, h int64, fill pptx.Color) *ppt.AutoShape {
	shape := s.CreateAutoShape()
	shape.SetGeometry(geom).SetSolidFill(fill.PPT())
	shape.SetPosition(x, y).SetSize(w, h)
	return shape
}

// addRectangle draws a filled rectangle as an empty text frame.
func addRectangle(s *ppt.Slide, x, y, w, h int64, fill pptx.Color) *ppt.RichTextShape {
	r := s.CreateRichTextShape()
	r.SetOffsetX(x).SetOffsetY(y)
	r.SetWidth(w).SetHeight(h)
	r.SetFill(pptx.SolidFill(fill))
	return r
}

// addLine draws a line as a thin filled rectangle.
func addLine(s *ppt.Slide, x, y, w, h int64, color pptx.Color) *ppt.RichTextShape {
	return addRectangle(s, x, y, w, h, color)
}

// addRoundedRectangle draws a rounded box; a zero border color means no outline.
func addRoundedRectangle(s *ppt.Slide, x, y, w, h int64, fill, border pptx.Color) *ppt.AutoShape {
	shape := addAutoShape(s, ppt.AutoShapeRoundedRect, x, y, w, h, fill)
	if !border.IsZero() {
		shape.SetBorder(ppt.NewBorder().SetSolidFill(border.PPT()).SetWidth(int(pptx.Pt(1))))
	}
	return shape
}

func addChevron(s *ppt.Slide, x, y, w, h int64, fill pptx.Color, text string, st textStyle) *ppt.AutoShape {
	shape := addAutoShape(s, ppt.AutoShapeChevron, x, y, w, h, fill)
	shapeText(s, shape, st, text)
	return shape
}

func addOval(s *ppt.Slide, x, y, w, h int64, fill pptx.Color, text string, st textStyle) *ppt.AutoShape {
	shape := addAutoShape(s, ppt.AutoShapeEllipse, x, y, w, h, fill)
	if text != "" {
		shapeText(s, shape, st, text)
	}
	return shape
}

// addTriangle draws an isosceles triangle, pointing down when flipped.
func addTriangle(s *ppt.Slide, x, y, w, h int64, fill pptx.Color, flip bool) *ppt.AutoShape {
	shape := addAutoShape(s, ppt.AutoShapeTriangle, x, y, w, h, fill)
	shape.SetFlipVertical(flip)
	return shape
}

// shapeText lays a text frame over shape with one centered paragraph per
// line, anchored in the middle. GoPPT writes auto shape text without run
// properties, so styled labels live in their own frame.
func shapeText(s *ppt.Slide, shape ppt.Shape, st textStyle, lines ...string) *ppt.RichTextShape {
	tb := newTextbox(s, shape.GetOffsetX(), shape.GetOffsetY(), shape.GetWidth(), shape.GetHeight())
	tb.SetTextAnchor(ppt.TextAnchorMiddle)
	for i, line := range lines {
		p := tb.GetActiveParagraph()
		if i > 0 {
			p = tb.CreateParagraph()
		}
		align(p, ppt.HorizontalCenter)
		st.apply(p.CreateTextRun(line).GetFont())
	}
	return tb
}

// addShapeLine appends a styled centered paragraph to a shape label.
func addShapeLine(tb *ppt.RichTextShape, st textStyle, line string) {
	p := tb.CreateParagraph()
	align(p, ppt.HorizontalCenter)
	st.apply(p.CreateTextRun(line).GetFont())
}

// addHeader places the standard slide title and its orange underline.
func addHeader(s *ppt.Slide, title string) {
	addTextbox(s, design.MarginLeft, design.MarginTop, design.ContentWidth, pptx.Inches(0.8), title, textStyle{
		size:  design.TitleSize,
		color: design.Navy,
		bold:  true,
	})
	addLine(s, design.MarginLeft, pptx.Inches(1.5), pptx.Inches(2), pptx.Pt(3), design.Orange)
}

func newChart(s *ppt.Slide, x, y, w, h int64) *ppt.ChartShape {
	chart := s.CreateChartShape()
	chart.SetPosition(x, y).SetSize(w, h)
	// the slide header already carries the title
	chart.GetTitle().SetVisible(false)
	return chart
}

// addBarChart adds a one-series column chart. labels must come from
// checkSeries.
func addBarChart(s *ppt.Slide, x, y, w, h int64, series string, labels []string, values []float64) *ppt.ChartShape {
	chart := newChart(s, x, y, w, h)
	chart.GetLegend().Visible = false

	ser := ppt.NewChartSeriesOrdered(series, labels, values).
		SetFillColor(design.Navy.PPT()).
		SetLabelPosition(ppt.LabelOutsideEnd)
	ser.ShowValue = true
	chart.GetPlotArea().SetType(ppt.NewBarChart().AddSeries(ser).SetGapWidthPercent(80))
	return chart
}

// addPieChart adds a pie chart with percentage labels and a legend on the
// right. Slices take the theme palette. labels must come from checkSeries.
func addPieChart(s *ppt.Slide, x, y, w, h int64, series string, labels []string, values []float64) *ppt.ChartShape {
	chart := newChart(s, x, y, w, h)
	legend := chart.GetLegend()
	legend.Visible = true
	legend.Position = ppt.LegendRight

	ser := ppt.NewChartSeriesOrdered(series, labels, values)
	ser.ShowPercentage = true
	chart.GetPlotArea().SetType(ppt.NewPieChart().AddSeries(ser))
	return chart
}

// clampLabel shortens chart category labels past design.ChartLabelMax runes.
func clampLabel(s string) string {
	if utf8.RuneCountInString(s) <= design.ChartLabelMax {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:design.ChartLabelMax-1])) + design.Ellipsis
}

func clampLabels(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = clampLabel(l)
	}
	return out
}

// gridShape picks columns and rows for card-style grids.
func gridShape(n int) (cols, rows int) {
	switch {
	case n <= 3:
		return n, 1
	case n <= 6:
		return 3, 2
	default:
		return 4, 2
	}
}
