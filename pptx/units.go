package pptx

import (
	"fmt"
	"strconv"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

const (
	EMUPerInch = 914400
	EMUPerPt   = 12700
)

// Inches converts inches to EMU.
func Inches(in float64) int64 {
	return int64(in * EMUPerInch)
}

// Pt converts points to EMU.
func Pt(pt float64) int64 {
	return int64(pt * EMUPerPt)
}

// ToInches converts EMU back to inches.
func ToInches(emu int64) float64 {
	return float64(emu) / EMUPerInch
}

// Color is an opaque RGB color. The zero value means "unset".
type Color struct {
	rgb string
}

// RGB builds a color from its components.
func RGB(r, g, b uint8) Color {
	return Color{rgb: fmt.Sprintf("%02X%02X%02X", r, g, b)}
}

// NewColor accepts "RRGGBB" or GoPPT-style "AARRGGBB"; alpha is ignored.
// Invalid input yields the zero Color.
func NewColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		return Color{}
	}
	return c
}

// ParseColor parses "#RRGGBB", "RRGGBB" or "AARRGGBB".
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 8 {
		h = h[2:]
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	return Color{rgb: strings.ToUpper(h)}, nil
}

// Hex returns the color as "RRGGBB", or "" for the zero Color.
func (c Color) Hex() string {
	return c.rgb
}

// IsZero reports whether the color is unset.
func (c Color) IsZero() bool {
	return c.rgb == ""
}

func (c Color) String() string {
	if c.rgb == "" {
		return "none"
	}
	return "#" + c.rgb
}

// Or returns c, or fallback when c is unset.
func (c Color) Or(fallback Color) Color {
	if c.IsZero() {
		return fallback
	}
	return c
}

var (
	ColorBlack = Color{rgb: "000000"}
	ColorWhite = Color{rgb: "FFFFFF"}
)

// PPT converts c to an opaque GoPPT color. The zero Color becomes black,
// matching GoPPT's own fallback.
func (c Color) PPT() ppt.Color {
	if c.IsZero() {
		return ppt.ColorBlack
	}
	return ppt.NewColor("FF" + c.rgb)
}

// FromPPT converts a GoPPT color back, dropping alpha.
func FromPPT(c ppt.Color) Color {
	return NewColor(c.ARGB)
}

// SolidFill returns a GoPPT solid fill of c.
func SolidFill(c Color) *ppt.Fill {
	return ppt.NewFill().SetSolid(c.PPT())
}

// FillColor returns the color of a solid fill, or the zero Color for nil and
// non-solid fills.
func FillColor(f *ppt.Fill) Color {
	if f == nil || f.Type != ppt.FillSolid {
		return Color{}
	}
	return FromPPT(f.Color)
}
