package pptx

import "testing"

func TestNextSlide_ReusesInitialBlankSlide(t *testing.T) {
	p := New(Inches(13.333), Inches(7.5))
	if SlideCount(p) != 0 || len(Slides(p)) != 0 {
		t.Fatalf("new presentation counts %d slides", SlideCount(p))
	}

	first := NextSlide(p)
	if got := p.GetSlideCount(); got != 1 {
		t.Fatalf("GoPPT slide count = %d after first NextSlide", got)
	}
	if SlideCount(p) != 0 {
		t.Error("blank slide counted before anything is placed on it")
	}

	first.SetNotes("intro")
	if SlideCount(p) != 1 {
		t.Errorf("SlideCount = %d, want 1", SlideCount(p))
	}

	second := NextSlide(p)
	if second == first {
		t.Fatal("NextSlide returned a slide with content")
	}
	if SlideCount(p) != 2 || len(Slides(p)) != 2 {
		t.Errorf("SlideCount = %d, want 2", SlideCount(p))
	}
}

func TestNew_Layout(t *testing.T) {
	p := New(Inches(13.333), Inches(7.5))
	l := p.GetLayout()
	if l.CX != Inches(13.333) || l.CY != Inches(7.5) {
		t.Errorf("layout = %dx%d", l.CX, l.CY)
	}
	if c := p.GetDocumentProperties().Creator; c != "" {
		t.Errorf("creator = %q, want empty", c)
	}
}
