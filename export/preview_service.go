package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	ppt "github.com/VantageDataChat/GoPPT"

	"hrslides/pptx"
)

// PreviewService renders slides to PNG thumbnails.
type PreviewService struct {
	logger func(string)
}

// NewPreviewService creates a preview service.
func NewPreviewService(logger func(string)) *PreviewService {
	return &PreviewService{logger: logger}
}

func (s *PreviewService) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}

// RenderPNG renders a saved deck. GoPPT's reader keeps text, backgrounds,
// geometry and lines but not shape fills or charts, so the images are
// wireframes of the slides.
func (s *PreviewService) RenderPNG(path, dir string, width int) ([]string, error) {
	pres, err := ppt.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PPT file: %w", err)
	}
	return s.Render(pres, dir, width)
}

// Render writes slide-NN.png for every slide of p into dir and returns the
// paths written. width is the image width in pixels; zero means 960.
func (s *PreviewService) Render(p *ppt.Presentation, dir string, width int) ([]string, error) {
	all := pptx.Slides(p)
	if len(all) == 0 {
		return nil, fmt.Errorf("PPT file has no slides")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create preview directory: %w", err)
	}

	fonts, err := newFontSet()
	if err != nil {
		return nil, fmt.Errorf("failed to load preview fonts: %w", err)
	}
	defer fonts.Close()

	layout := p.GetLayout()
	var written []string
	for i, slide := range all {
		img := newSlideRenderer(layout.CX, layout.CY, width, fonts).render(slide)
		name := filepath.Join(dir, fmt.Sprintf("slide-%02d.png", i+1))
		if err := writePNG(name, img); err != nil {
			return written, err
		}
		written = append(written, name)
	}
	s.log(fmt.Sprintf("[PREVIEW] %d slides rendered to %s", len(written), dir))
	return written, nil
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return f.Close()
}
