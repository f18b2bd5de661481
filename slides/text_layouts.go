package slides

import (
	"fmt"

	"hrslides/design"
	"hrslides/pptx"

	ppt "github.com/VantageDataChat/GoPPT"
)

// AddTitleSlide adds the opening slide: navy background, centered white title.
func AddTitleSlide(p *ppt.Presentation, title, subtitle, notes string) *ppt.Slide {
	s := addBlankSlide(p, design.Navy)

	addTextbox(s, design.MarginLeft, pptx.Inches(2.2), design.ContentWidth, pptx.Inches(1.5), title, textStyle{
		size:   36,
		color:  design.White,
		bold:   true,
		align:  ppt.HorizontalCenter,
		anchor: ppt.TextAnchorBottom,
	})

	lineWidth := pptx.Inches(3)
	addLine(s, (design.SlideWidth-lineWidth)/2, pptx.Inches(3.8), lineWidth, pptx.Pt(3), design.Orange)

	if subtitle != "" {
		addTextbox(s, design.MarginLeft, pptx.Inches(4.1), design.ContentWidth, pptx.Inches(1.0), subtitle, textStyle{
			size:   design.SubtitleSize,
			color:  design.LightGray,
			align:  ppt.HorizontalCenter,
			anchor: ppt.TextAnchorTop,
		})
	}

	addSpeakerNotes(s, notes)
	return s
}

// AddAgendaSlide adds a numbered agenda. Numbers are two digits, in orange.
func AddAgendaSlide(p *ppt.Presentation, items []string, title, notes string) *ppt.Slide {
	s := addBlankSlide(p, design.White)
	addHeader(s, title)

	yStart := pptx.Inches(2.0)
	itemHeight := pptx.Inches(0.6)
	for i, item := range items {
		y := yStart + int64(i)*itemHeight
		addTextbox(s, design.MarginLeft, y, pptx.Inches(0.6), itemHeight, fmt.Sprintf("%02d", i+1), textStyle{
			size:  22,
			color: design.Orange,
			bold:  true,
		})
		addTextbox(s, design.MarginLeft+pptx.Inches(0.7), y, design.ContentWidth-pptx.Inches(0.7), itemHeight, item, textStyle{
			size:  design.BodySize,
			color: design.DarkText,
		})
	}

	addSpeakerNotes(s, notes)
	return s
}

// AddSectionSlide adds a section divider with a navy bar on the left.
func AddSectionSlide(p *ppt.Presentation, title, subtitle, notes string) *ppt.Slide {
	s := addBlankSlide(p, design.White)

	addRectangle(s, pptx.Inches(0.4), pptx.Inches(1.5), design.SectionBarWidth, pptx.Inches(4.5), design.Navy)

	addTextbox(s, pptx.Inches(1.0), pptx.Inches(2.5), pptx.Inches(10.5), pptx.Inches(1.5), title, textStyle{
		size:   32,
		color:  design.Navy,
		bold:   true,
		anchor: ppt.TextAnchorBottom,
	})

	if subtitle != "" {
		addTextbox(s, pptx.Inches(1.0), pptx.Inches(4.2), pptx.Inches(10.5), pptx.Inches(0.8), subtitle, textStyle{
			size:  design.SubtitleSize,
			color: design.Gray,
		})
	}

	addSpeakerNotes(s, notes)
	return s
}

// AddBulletsSlide adds a bulleted list with orange bullets.
func AddBulletsSlide(p *ppt.Presentation, title string, bullets []string, notes string) *ppt.Slide {
	s := addBlankSlide(p, design.White)
	addHeader(s, title)

	addMultilineTextbox(s,
		design.MarginLeft+pptx.Inches(0.3), pptx.Inches(2.0),
		design.ContentWidth-pptx.Inches(0.3), pptx.Inches(4.5),
		bullets,
		textStyle{size: design.BodySize, color: design.Gray},
		listStyle{bullet: design.BulletChar, bulletColor: design.Orange, spaceAfter: design.ParagraphSpacing},
	)

	addSpeakerNotes(s, notes)
	return s
}

// AddTwoColumnsSlide adds two titled bullet columns split by a thin separator.
func AddTwoColumnsSlide(p *ppt.Presentation, title string, left, right Column, notes string) *ppt.Slide {
	s := addBlankSlide(p, design.White)
	addHeader(s, title)

	colWidth := (design.ContentWidth - design.ColumnGap) / 2
	leftX := design.MarginLeft
	rightX := design.MarginLeft + colWidth + design.ColumnGap

	sepX := design.MarginLeft + colWidth + design.ColumnGap/2
	addLine(s, sepX, pptx.Inches(2.0), pptx.Pt(1), pptx.Inches(4.5), design.LightGray)

	for _, col := range []struct {
		x   int64
		col Column
	}{{leftX, left}, {rightX, right}} {
		addTextbox(s, col.x, pptx.Inches(2.0), colWidth, pptx.Inches(0.6), col.col.Title, textStyle{
			size:  22,
			color: design.Navy,
			bold:  true,
		})
		addMultilineTextbox(s,
			col.x+pptx.Inches(0.2), pptx.Inches(2.7),
			colWidth-pptx.Inches(0.2), pptx.Inches(3.8),
			col.col.Items,
			textStyle{size: 18, color: design.Gray},
			listStyle{bullet: design.BulletChar, bulletColor: design.Orange, spaceAfter: design.LineSpacing},
		)
	}

	addSpeakerNotes(s, notes)
	return s
}

// AddKeyStatSlide adds one large orange statistic with a description below.
func AddKeyStatSlide(p *ppt.Presentation, stat, description, notes string) *ppt.Slide {
	s := addBlankSlide(p, design.White)

	addTextbox(s, design.MarginLeft, pptx.Inches(1.8), design.ContentWidth, pptx.Inches(2.5), stat, textStyle{
		size:   design.StatSize,
		color:  design.Orange,
		bold:   true,
		align:  ppt.HorizontalCenter,
		anchor: ppt.TextAnchorBottom,
	})
	addTextbox(s, design.MarginLeft, pptx.Inches(4.5), design.ContentWidth, pptx.Inches(1.5), description, textStyle{
		size:   design.BodySize,
		color:  design.Gray,
		align:  ppt.HorizontalCenter,
		anchor: ppt.TextAnchorTop,
	})

	addSpeakerNotes(s, notes)
	return s
}

// AddQuoteSlide adds a quotation on a light gray background.
func AddQuoteSlide(p *ppt.Presentation, quote, author, notes string) *ppt.Slide {
	s := addBlankSlide(p, design.LightGray)

	addTextbox(s, pptx.Inches(1.0), pptx.Inches(1.0), pptx.Inches(2.0), pptx.Inches(2.0), design.QuoteChar, textStyle{
		size:  120,
		color: design.Orange,
	})
	addTextbox(s, pptx.Inches(2.0), pptx.Inches(2.5), pptx.Inches(9.0), pptx.Inches(2.5), quote, textStyle{
		size:   design.QuoteSize,
		color:  design.Navy,
		anchor: ppt.TextAnchorMiddle,
	})

	if author != "" {
		addTextbox(s, pptx.Inches(2.0), pptx.Inches(5.3), pptx.Inches(9.0), pptx.Inches(0.6), design.Dash+" "+author, textStyle{
			size:  design.SubtitleSize,
			color: design.Gray,
		})
	}

	addSpeakerNotes(s, notes)
	return s
}

// AddConclusionSlide adds a navy banner title over a checkmark list.
func AddConclusionSlide(p *ppt.Presentation, title string, points []string, notes string) *ppt.Slide {
	s := addBlankSlide(p, design.White)

	addRectangle(s, 0, 0, design.SlideWidth, pptx.Inches(1.8), design.Navy)
	addTextbox(s, design.MarginLeft, pptx.Inches(0.4), design.ContentWidth, pptx.Inches(1.0), title, textStyle{
		size:   design.TitleSize,
		color:  design.White,
		bold:   true,
		anchor: ppt.TextAnchorMiddle,
	})

	addMultilineTextbox(s,
		design.MarginLeft+pptx.Inches(0.3), pptx.Inches(2.3),
		design.ContentWidth-pptx.Inches(0.3), pptx.Inches(4.5),
		points,
		textStyle{size: design.BodySize, color: design.DarkText},
		listStyle{bullet: design.CheckmarkChar, bulletColor: design.Orange, spaceAfter: design.ParagraphSpacing},
	)

	addSpeakerNotes(s, notes)
	return s
}
