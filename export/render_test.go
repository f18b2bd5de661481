package export

import (
	"image"
	"image/color"
	"testing"

	ppt "github.com/VantageDataChat/GoPPT"

	"hrslides/pptx"
)

func rgbaAt(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func newTestRenderer(t *testing.T) *slideRenderer {
	t.Helper()
	fonts, err := newFontSet()
	if err != nil {
		t.Fatalf("newFontSet: %v", err)
	}
	t.Cleanup(fonts.Close)
	// one pixel per 0.01 inch
	return newSlideRenderer(pptx.Inches(10), pptx.Inches(5), 1000, fonts)
}

func TestRender_AutoShapeGeometry(t *testing.T) {
	r := newTestRenderer(t)
	s := pptx.NextSlide(pptx.New(pptx.Inches(10), pptx.Inches(5)))
	orange := pptx.NewColor("E87C3E")
	tri := s.CreateAutoShape()
	tri.SetGeometry(ppt.AutoShapeTriangle).SetSolidFill(orange.PPT())
	tri.SetPosition(pptx.Inches(1), pptx.Inches(1)).SetSize(pptx.Inches(2), pptx.Inches(2))
	tri.SetFlipVertical(true)

	img := r.render(s)
	// flipped: wide at the top, pointed at the bottom
	if got := rgbaAt(img, 110, 105); got != toRGBA(orange) {
		t.Errorf("top left of the flipped triangle = %v", got)
	}
	if got := rgbaAt(img, 110, 290); got != white {
		t.Errorf("bottom left of the flipped triangle = %v, want background", got)
	}
	if got := rgbaAt(img, 200, 280); got != toRGBA(orange) {
		t.Errorf("apex = %v", got)
	}
}

func TestRender_UnfilledShapeIsOutlined(t *testing.T) {
	r := newTestRenderer(t)
	s := pptx.NextSlide(pptx.New(pptx.Inches(10), pptx.Inches(5)))
	shape := s.CreateAutoShape()
	shape.SetGeometry(ppt.AutoShapeChevron)
	shape.SetPosition(pptx.Inches(1), pptx.Inches(1)).SetSize(pptx.Inches(4), pptx.Inches(2))

	img := r.render(s)
	if got := rgbaAt(img, 300, 100); got == white {
		t.Error("top edge of an unfilled chevron not drawn")
	}
	if got := rgbaAt(img, 300, 200); got != white {
		t.Errorf("inside of an unfilled chevron = %v, want background", got)
	}
}

func TestRender_TextFrame(t *testing.T) {
	r := newTestRenderer(t)
	s := pptx.NextSlide(pptx.New(pptx.Inches(10), pptx.Inches(5)))
	s.SetBackground(pptx.SolidFill(pptx.NewColor("1B2A4A")))
	tb := s.CreateRichTextShape()
	tb.SetOffsetX(0).SetOffsetY(0)
	tb.SetWidth(pptx.Inches(10)).SetHeight(pptx.Inches(5))
	tb.SetTextAnchor(ppt.TextAnchorMiddle)
	tb.CreateTextRun("HHHHHHHH").GetFont().SetSize(60).SetBold(true).SetColor(ppt.ColorWhite)
	tb.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))

	img := r.render(s)
	var lit int
	for x := 0; x < 1000; x++ {
		if rgbaAt(img, x, 250) == white {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("no text pixels on the middle row")
	}
	if got := rgbaAt(img, 5, 250); got == white {
		t.Error("centered text reaches the left edge")
	}
}

func TestLayoutParagraph_Wraps(t *testing.T) {
	r := newTestRenderer(t)
	p := ppt.NewParagraph()
	p.CreateTextRun("Gestion prévisionnelle des emplois et des compétences").GetFont().SetSize(20)
	p.SetSpaceAfter(1200)

	lines := r.layoutParagraph(p, 150)
	if len(lines) < 2 {
		t.Fatalf("got %d lines, want wrapping", len(lines))
	}
	for _, l := range lines[:len(lines)-1] {
		if l.advance > 150 && len(l.text) > 0 && indexSpace(l.text) >= 0 {
			t.Errorf("line %q is %.0fpx wide", l.text, l.advance)
		}
	}
	if last, first := lines[len(lines)-1], lines[0]; last.height <= first.height {
		t.Error("space after not added to the last line")
	}
}

func indexSpace(s string) int {
	for i, c := range s {
		if c == ' ' {
			return i
		}
	}
	return -1
}
