package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"hrslides/i18n"
	"hrslides/pptx"
)

var (
	handoutNavy  = &props.Color{Red: 0x1B, Green: 0x2A, Blue: 0x4A}
	handoutGray  = &props.Color{Red: 0x6B, Green: 0x72, Blue: 0x80}
	handoutLight = &props.Color{Red: 0x94, Green: 0xA3, Blue: 0xB8}
)

// HandoutService renders a printable handout of a deck: each slide's text
// followed by its speaker notes.
type HandoutService struct {
	tr     *i18n.Translator
	logger func(string)
	now    func() time.Time
}

// NewHandoutService creates a handout service. A nil translator uses the
// global one.
func NewHandoutService(tr *i18n.Translator, logger func(string)) *HandoutService {
	if tr == nil {
		tr = i18n.GetTranslator()
	}
	return &HandoutService{tr: tr, logger: logger, now: time.Now}
}

func (s *HandoutService) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}

// Generate returns the handout PDF for doc.
func (s *HandoutService) Generate(doc *pptx.Document, title string) ([]byte, error) {
	if title == "" {
		title = doc.Title
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithDefaultFont(&props.Font{
			Family: fontfamily.Helvetica,
			Size:   10,
		}).
		Build()

	m := maroto.New(cfg)
	s.addHeader(m, title)
	for _, sl := range doc.Slides {
		s.addSlide(m, sl)
	}

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate handout: %w", err)
	}
	out := document.GetBytes()
	s.log(fmt.Sprintf("[HANDOUT] %d slides, %d bytes", len(doc.Slides), len(out)))
	return out, nil
}

func (s *HandoutService) addHeader(m core.Maroto, title string) {
	m.AddRow(16,
		col.New(12).Add(
			text.New(s.tr.T("handout.title", title), props.Text{
				Size:  18,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: handoutNavy,
			}),
		),
	)
	m.AddRow(8,
		col.New(12).Add(
			text.New(s.tr.T("handout.generated", s.now().Format("2006-01-02 15:04")), props.Text{
				Size:  9,
				Align: align.Center,
				Color: handoutGray,
			}),
		),
	)
	m.AddRow(6)
}

func (s *HandoutService) addSlide(m core.Maroto, sl pptx.SlideContent) {
	m.AddRow(9,
		col.New(12).Add(
			text.New(s.tr.T("handout.slide", sl.Number), props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Color: handoutNavy,
			}),
		),
	)

	texts := sl.Texts()
	if len(texts) == 0 && len(sl.Charts) == 0 {
		m.AddRow(6, col.New(12).Add(text.New(s.tr.T("handout.no_text"), props.Text{
			Size:  9,
			Style: fontstyle.Italic,
			Color: handoutLight,
		})))
	}
	for _, t := range texts {
		for _, ln := range strings.Split(t, "\n") {
			if strings.TrimSpace(ln) == "" {
				continue
			}
			m.AddAutoRow(col.New(12).Add(text.New(ln, props.Text{
				Size:   10,
				Left:   4,
				Bottom: 1,
			})))
		}
	}
	for _, c := range sl.Charts {
		m.AddAutoRow(col.New(12).Add(text.New(s.tr.T("handout.chart", chartSummary(c)), props.Text{
			Size:   9,
			Left:   4,
			Style:  fontstyle.Italic,
			Color:  handoutGray,
			Bottom: 1,
		})))
	}

	m.AddRow(7,
		col.New(12).Add(
			text.New(s.tr.T("handout.notes"), props.Text{
				Top:   2,
				Size:  10,
				Style: fontstyle.Bold,
				Color: handoutGray,
			}),
		),
	)
	notes := sl.Notes
	if notes == "" {
		notes = s.tr.T("handout.no_notes")
	}
	m.AddAutoRow(col.New(12).Add(text.New(notes, props.Text{
		Size:   9,
		Left:   4,
		Color:  handoutGray,
		Bottom: 2,
	})))
	m.AddRow(4, col.New(12).Add(line.New(props.Line{Color: handoutLight, Thickness: 0.3})))
}

func chartSummary(c pptx.ChartInfo) string {
	parts := make([]string, 0, len(c.Categories))
	for i, cat := range c.Categories {
		if i < len(c.Values) {
			parts = append(parts, fmt.Sprintf("%s %g", cat, c.Values[i]))
		}
	}
	return strings.Join(parts, ", ")
}
