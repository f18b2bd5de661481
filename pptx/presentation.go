package pptx

import (
	ppt "github.com/VantageDataChat/GoPPT"
)

// New creates a presentation of cx by cy EMU with its document properties
// cleared of GoPPT's defaults.
//
// GoPPT always starts a presentation with one blank slide and refuses to
// remove the last one. NextSlide hands that slide out first, and SlideCount
// does not count it while it stays blank.
func New(cx, cy int64) *ppt.Presentation {
	p := ppt.New()
	p.GetLayout().SetCustomLayout(cx, cy)
	props := p.GetDocumentProperties()
	props.Creator = ""
	props.LastModifiedBy = ""
	return p
}

// NextSlide returns the initial blank slide when nothing was placed on it
// yet, and a new slide otherwise.
func NextSlide(p *ppt.Presentation) *ppt.Slide {
	all := p.GetAllSlides()
	if len(all) == 1 && isBlank(all[0]) {
		return all[0]
	}
	return p.CreateSlide()
}

// SlideCount is the number of slides that carry content. The initial blank
// slide is not counted until something is placed on it.
func SlideCount(p *ppt.Presentation) int {
	all := p.GetAllSlides()
	if len(all) == 1 && isBlank(all[0]) {
		return 0
	}
	return len(all)
}

// Slides returns the slides SlideCount counts.
func Slides(p *ppt.Presentation) []*ppt.Slide {
	if SlideCount(p) == 0 {
		return nil
	}
	return p.GetAllSlides()
}

func isBlank(s *ppt.Slide) bool {
	return len(s.GetShapes()) == 0 && s.GetBackground() == nil && s.GetNotes() == ""
}
