package slides

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"hrslides/design"
	"hrslides/pptx"

	ppt "github.com/VantageDataChat/GoPPT"
)

// AddOrgChartSlide adds a manager box on top and one row of direct reports
// joined to it through a horizontal bus.
func AddOrgChartSlide(p *ppt.Presentation, title string, manager Person, reports []Person, notes string) (*ppt.Slide, error) {
	if len(reports) > design.MaxGridItems {
		return nil, fmt.Errorf("org chart: %d reports, max %d: %w", len(reports), design.MaxGridItems, ErrTooManyItems)
	}

	s := addBlankSlide(p, design.White)
	addHeader(s, title)

	centerX := design.SlideWidth / 2
	managerW, managerH := pptx.Inches(3.4), pptx.Inches(1.0)
	managerY := pptx.Inches(1.9)
	busY := pptx.Inches(3.35)
	reportY, reportH := pptx.Inches(3.8), pptx.Inches(1.1)
	stroke := pptx.Pt(2)

	box := addRoundedRectangle(s, centerX-managerW/2, managerY, managerW, managerH, design.Navy, pptx.Color{})
	label := shapeText(s, box, textStyle{size: 16, color: design.White, bold: true}, manager.Name)
	if manager.Title != "" {
		addShapeLine(label, textStyle{size: 13, color: design.LightGray}, manager.Title)
	}

	n := int64(len(reports))
	if n > 0 {
		gap := pptx.Inches(0.25)
		boxW := min((design.ContentWidth-gap*(n-1))/n, pptx.Inches(3.0))
		total := boxW*n + gap*(n-1)
		startX := (design.SlideWidth - total) / 2

		addLine(s, centerX-stroke/2, managerY+managerH, stroke, busY-managerY-managerH, design.Gray)
		if n > 1 {
			addLine(s, startX+boxW/2, busY-stroke/2, (n-1)*(boxW+gap), stroke, design.Gray)
		}

		for i, r := range reports {
			x := startX + int64(i)*(boxW+gap)
			addLine(s, x+boxW/2-stroke/2, busY, stroke, reportY-busY, design.Gray)

			card := addRoundedRectangle(s, x, reportY, boxW, reportH, design.CardBackground, design.LightGray)
			label := shapeText(s, card, textStyle{size: 14, color: design.Navy, bold: true}, r.Name)
			if r.Title != "" {
				addShapeLine(label, textStyle{size: 12, color: design.Gray}, r.Title)
			}
			addRectangle(s, x, reportY, boxW, pptx.Inches(0.06), design.Orange)
		}
	}

	addSpeakerNotes(s, notes)
	return s, nil
}

// AddFunnelSlide adds centered bars narrowing from the first stage to the
// last, a downward tip, and the stage values in a column on the right.
// When two consecutive values are numeric the conversion rate between them
// is shown under the second one.
func AddFunnelSlide(p *ppt.Presentation, title string, stages []Stage, notes string) (*ppt.Slide, error) {
	n := int64(len(stages))
	if n == 0 {
		return nil, fmt.Errorf("funnel: %w", ErrNoItems)
	}
	if n > design.MaxGridItems {
		return nil, fmt.Errorf("funnel: %d stages, max %d: %w", n, design.MaxGridItems, ErrTooManyItems)
	}

	s := addBlankSlide(p, design.White)
	addHeader(s, title)

	top := pptx.Inches(1.9)
	stageH := pptx.Inches(4.6) / n
	gap := pptx.Inches(0.06)
	maxW, minW := pptx.Inches(9.0), pptx.Inches(3.0)
	centerX := design.MarginLeft + pptx.Inches(4.9)
	valueX := pptx.Inches(10.5)
	valueW := design.SlideWidth - design.MarginRight - valueX

	var last pptx.Color
	for i, st := range stages {
		w := maxW
		if n > 1 {
			w = maxW - (maxW-minW)*int64(i)/(n-1)
		}
		y := top + int64(i)*stageH
		last = design.ProcessColors[i%len(design.ProcessColors)]

		bar := addRoundedRectangle(s, centerX-w/2, y, w, stageH-gap, last, pptx.Color{})
		shapeText(s, bar, textStyle{size: 16, color: design.White, bold: true}, st.Label)

		tb := addTextbox(s, valueX, y, valueW, stageH-gap, st.Value, textStyle{
			size:   20,
			color:  design.Orange,
			bold:   true,
			anchor: ppt.TextAnchorMiddle,
		})
		if i > 0 {
			if rate, ok := conversionRate(stages[i-1].Value, st.Value); ok {
				para := tb.CreateParagraph()
				align(para, ppt.HorizontalLeft)
				textStyle{size: 12, color: design.Gray}.apply(para.CreateTextRun(rate).GetFont())
			}
		}
	}

	tipW := minW / 2
	addTriangle(s, centerX-tipW/2, top+n*stageH, tipW, pptx.Inches(0.4), last, true)

	addSpeakerNotes(s, notes)
	return s, nil
}

// parseStageValue reads values like "1 250", "62,5" or "80%".
func parseStageValue(v string) (float64, bool) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '%' {
			return -1
		}
		if r == ',' {
			return '.'
		}
		return r
	}, v)
	if clean == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func conversionRate(prev, cur string) (string, bool) {
	a, ok := parseStageValue(prev)
	if !ok || a <= 0 {
		return "", false
	}
	b, ok := parseStageValue(cur)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%.0f%%", b/a*100), true
}

// AddTeamGridSlide adds one card per member with an initials avatar, name,
// role and optional description, using the same grid as icon cards.
func AddTeamGridSlide(p *ppt.Presentation, title string, members []Member, notes string) (*ppt.Slide, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("team grid: %w", ErrNoItems)
	}
	if len(members) > design.MaxGridItems {
		return nil, fmt.Errorf("team grid: %d members, max %d: %w", len(members), design.MaxGridItems, ErrTooManyItems)
	}

	s := addBlankSlide(p, design.White)
	addHeader(s, title)

	cols, rows := gridShape(len(members))
	gap := pptx.Inches(0.3)
	cardW := (design.ContentWidth - gap*int64(cols-1)) / int64(cols)
	cardH, startY, avatar := pptx.Inches(4.2), pptx.Inches(2.0), pptx.Inches(1.2)
	nameSize, roleSize, descSize := 18, 14, 12
	if rows > 1 {
		cardH, startY, avatar = pptx.Inches(2.35), pptx.Inches(1.95), pptx.Inches(0.6)
		nameSize, roleSize, descSize = 14, 12, 10
	}
	pad := pptx.Inches(0.1)

	for i, m := range members {
		x := design.MarginLeft + int64(i%cols)*(cardW+gap)
		y := startY + int64(i/cols)*(cardH+gap)
		color := design.ProcessColors[i%len(design.ProcessColors)]

		addRoundedRectangle(s, x, y, cardW, cardH, design.CardBackground, design.LightGray)
		addOval(s, x+(cardW-avatar)/2, y+pptx.Inches(0.2), avatar, avatar, color, Initials(m.Name), textStyle{
			size:  nameSize,
			color: design.White,
			bold:  true,
		})

		ty := y + pptx.Inches(0.3) + avatar
		lineH := pptx.Inches(0.4)
		addTextbox(s, x+pad, ty, cardW-2*pad, lineH, m.Name, textStyle{
			size:  nameSize,
			color: design.Navy,
			bold:  true,
			align: ppt.HorizontalCenter,
		})
		addTextbox(s, x+pad, ty+lineH, cardW-2*pad, lineH, m.Role, textStyle{
			size:  roleSize,
			color: design.Orange,
			align: ppt.HorizontalCenter,
		})
		if m.Description != "" {
			descY := ty + 2*lineH
			descH := max(y+cardH-descY-pad, pptx.Inches(0.3))
			addTextbox(s, x+pad, descY, cardW-2*pad, descH, m.Description, textStyle{
				size:  descSize,
				color: design.Gray,
				align: ppt.HorizontalCenter,
			})
		}
	}

	addSpeakerNotes(s, notes)
	return s, nil
}

// Initials returns up to two uppercase initials: the first letters of the
// first and last words of name.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	first := func(w string) string {
		for _, r := range w {
			return string(unicode.ToUpper(r))
		}
		return ""
	}
	if len(words) == 1 {
		return first(words[0])
	}
	return first(words[0]) + first(words[len(words)-1])
}
