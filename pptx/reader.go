package pptx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

var ErrNotPresentation = errors.New("not a presentation package")

// ChartKind names the chart types the layouts produce.
type ChartKind string

const (
	ChartBar ChartKind = "bar"
	ChartPie ChartKind = "pie"
)

// Document is a read-only view of a saved deck, enough to check what a
// layout produced without a presentation application.
type Document struct {
	Title       string
	Creator     string
	SlideWidth  int64
	SlideHeight int64
	Slides      []SlideContent
}

// SlideContent is what one slide carries.
type SlideContent struct {
	Number     int
	Background string
	Shapes     []ShapeInfo
	Charts     []ChartInfo
	Notes      string
}

// Texts returns the non-empty text of every shape, in z-order.
func (s SlideContent) Texts() []string {
	var out []string
	for _, sh := range s.Shapes {
		if sh.Text != "" {
			out = append(out, sh.Text)
		}
	}
	return out
}

// ShapeInfo describes one shape on a slide. Geometry is the preset name:
// "rect" for text boxes, the preset of auto shapes, "line" for lines.
type ShapeInfo struct {
	Name     string
	Geometry string
	X, Y     int64
	Width    int64
	Height   int64
	Text     string
}

// ChartInfo is the cached data of a chart part.
type ChartInfo struct {
	Kind       ChartKind
	Series     string
	Categories []string
	Values     []float64
}

// Open reads a .pptx file from disk.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(data), int64(len(data)))
}

// Read parses a presentation package with GoPPT's reader, then adds the
// chart data GoPPT leaves out.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	pres, err := ppt.ReadFrom(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPresentation, err)
	}
	charts, err := readCharts(r, size)
	if err != nil {
		return nil, err
	}

	props := pres.GetDocumentProperties()
	layout := pres.GetLayout()
	doc := &Document{
		Title:       props.Title,
		Creator:     props.Creator,
		SlideWidth:  layout.CX,
		SlideHeight: layout.CY,
	}
	for i, s := range pres.GetAllSlides() {
		sc := SlideContent{
			Number:     i + 1,
			Background: FillColor(s.GetBackground()).Hex(),
			Notes:      s.GetNotes(),
		}
		for _, shape := range s.GetShapes() {
			if info, ok := shapeInfo(shape); ok {
				sc.Shapes = append(sc.Shapes, info)
			}
		}
		if i < len(charts) {
			sc.Charts = charts[i]
		}
		doc.Slides = append(doc.Slides, sc)
	}
	return doc, nil
}

func shapeInfo(shape ppt.Shape) (ShapeInfo, bool) {
	info := ShapeInfo{
		Name:   shape.GetName(),
		X:      shape.GetOffsetX(),
		Y:      shape.GetOffsetY(),
		Width:  shape.GetWidth(),
		Height: shape.GetHeight(),
	}
	switch sh := shape.(type) {
	case *ppt.RichTextShape:
		info.Geometry = string(ppt.AutoShapeRectangle)
		info.Text = ParagraphsText(sh.GetParagraphs())
	case *ppt.AutoShape:
		info.Geometry = string(sh.GetAutoShapeType())
		info.Text = strings.TrimSpace(sh.GetText())
	case *ppt.LineShape:
		info.Geometry = "line"
	default:
		return info, false
	}
	return info, true
}

// ParagraphsText joins the runs of each paragraph and the paragraphs with
// newlines. Whitespace-only text reads as empty.
func ParagraphsText(paras []*ppt.Paragraph) string {
	lines := make([]string, len(paras))
	for i, p := range paras {
		var b strings.Builder
		for _, elem := range p.GetElements() {
			if run, ok := elem.(*ppt.TextRun); ok {
				b.WriteString(run.GetText())
			}
		}
		lines[i] = b.String()
	}
	s := strings.Join(lines, "\n")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
