// Package design holds the design system shared by every slide layout:
// slide size, palette, typography and spacing.
package design

import "hrslides/pptx"

// Slide dimensions (16:9).
var (
	SlideWidth  = pptx.Inches(13.333)
	SlideHeight = pptx.Inches(7.5)
)

// Palette.
var (
	Navy           = pptx.RGB(0x1B, 0x2A, 0x4A)
	Gray           = pptx.RGB(0x6B, 0x72, 0x80)
	Orange         = pptx.RGB(0xE8, 0x7C, 0x3E)
	White          = pptx.RGB(0xFF, 0xFF, 0xFF)
	LightGray      = pptx.RGB(0xF3, 0xF4, 0xF6)
	DarkText       = pptx.RGB(0x1F, 0x2A, 0x37)
	CardBackground = pptx.RGB(0xFA, 0xFA, 0xFB)

	Teal  = pptx.RGB(0x2A, 0x9D, 0x8F)
	Slate = pptx.RGB(0x4A, 0x55, 0x68)
	Gold  = pptx.RGB(0xE9, 0xC4, 0x6A)
	Steel = pptx.RGB(0x3D, 0x5A, 0x80)
)

// ProcessColors cycle across process steps, chart slices and avatars.
var ProcessColors = []pptx.Color{Navy, Orange, Teal, Slate, Gold, Steel}

// MatrixColors fill the quadrants: top-left, top-right, bottom-left, bottom-right.
var MatrixColors = [4]pptx.Color{
	pptx.RGB(0xE8, 0xEC, 0xF4),
	pptx.RGB(0xFD, 0xEB, 0xDD),
	pptx.RGB(0xE6, 0xF4, 0xF1),
	LightGray,
}

// PyramidColors go from the top level down.
var PyramidColors = []pptx.Color{
	Navy,
	pptx.RGB(0x2C, 0x3E, 0x66),
	Steel,
	Orange,
	pptx.RGB(0xF0, 0xA0, 0x70),
}

// Typography, sizes in points.
const (
	FontFamily = "Calibri"

	TitleSize     = 28
	BodySize      = 20
	SubtitleSize  = 16
	NotesSize     = 11
	StatSize      = 72
	QuoteSize     = 24
	CardTitleSize = 32
)

// Margins.
var (
	MarginLeft   = pptx.Inches(0.8)
	MarginTop    = pptx.Inches(0.6)
	MarginRight  = pptx.Inches(0.8)
	MarginBottom = pptx.Inches(0.5)

	ContentWidth  = SlideWidth - MarginLeft - MarginRight
	ContentHeight = SlideHeight - MarginTop - MarginBottom
)

// Spacing. LineSpacing and ParagraphSpacing are points.
const (
	LineSpacing      = 6
	ParagraphSpacing = 12
)

var (
	SectionBarWidth = pptx.Inches(0.15)
	ColumnGap       = pptx.Inches(0.5)
)

// Glyphs.
const (
	BulletChar    = "•"
	CheckmarkChar = "✓"
	QuoteChar     = "“"
	Dash          = "—"
	Ellipsis      = "…"
)

// ChartLabelMax is the longest chart category label, in runes.
const ChartLabelMax = 24

// MaxGridItems bounds the card-style grids (cards, members, reports) and funnels.
const MaxGridItems = 8
