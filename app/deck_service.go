package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hrslides/config"
	"hrslides/database"
	"hrslides/export"
	"hrslides/i18n"
	"hrslides/plan"
	"hrslides/pptx"
	"hrslides/slides"
)

// BuildOptions tune a single deck build.
type BuildOptions struct {
	// Output is the deck file name. Empty derives it from the plan name,
	// inside the configured output directory.
	Output string
	// Handout also writes a PDF handout next to the deck.
	Handout bool
	// PreviewDir, when set, receives one PNG per slide.
	PreviewDir string
	// PreviewWidth overrides the configured preview width in pixels.
	PreviewWidth int
}

// BuildResult summarizes a finished build.
type BuildResult struct {
	ID       string // history id, empty when history is off
	Warnings []string
	Output   string
	Handout  string
	Previews []string
	Title    string
	Slides   int
	Layouts  []string // distinct, in order of first use
	Bytes    int64
	Duration time.Duration
}

// DeckService turns plan files into decks.
type DeckService struct {
	cfg      *config.Config
	history  *HistoryService
	services statusSource
	logger   func(string)
	now      func() time.Time
}

// NewDeckService creates a deck service. history may be nil.
func NewDeckService(cfg *config.Config, history *HistoryService, logger func(string)) *DeckService {
	return &DeckService{
		cfg:     cfg,
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *DeckService) Name() string {
	return "deck"
}

func (s *DeckService) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}

// Initialize makes sure the output directory exists.
func (s *DeckService) Initialize(ctx context.Context) error {
	if s.cfg.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		return WrapError("deck", "Initialize", WrapOperationError("create output dir", err))
	}
	return nil
}

func (s *DeckService) Shutdown() error {
	return nil
}

// Build loads, validates and renders the plan at planPath, then writes the
// optional handout and previews and records the build in history.
func (s *DeckService) Build(ctx context.Context, planPath string, opts BuildOptions) (*BuildResult, error) {
	start := s.now()

	pl, err := plan.Load(planPath)
	if err != nil {
		return nil, WrapError("deck", "Build", err)
	}
	if pl.Language == "" {
		pl.Language = s.cfg.Language
	}
	if err := pl.Validate(); err != nil {
		return nil, WrapError("deck", "Build", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, WrapError("deck", "Build", err)
	}

	lang := i18n.ParseLanguage(pl.Language)
	tr := i18n.New(lang)
	s.log(tr.T("build.start", planPath))

	title := pl.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(planPath), filepath.Ext(planPath))
	}

	p := slides.NewPresentation()
	props := p.GetDocumentProperties()
	props.Title = title
	props.Subject = pl.Subtitle
	props.Creator = pl.Author
	if props.Creator == "" {
		props.Creator = s.cfg.Author
	}
	props.Created = start

	if err := plan.Build(p, pl); err != nil {
		return nil, WrapError("deck", "Build", err)
	}

	written, err := slides.Save(p, s.outputPath(planPath, opts.Output))
	if err != nil {
		return nil, WrapError("deck", "Build", err)
	}
	info, err := os.Stat(written)
	if err != nil {
		return nil, WrapError("deck", "Build", WrapOperationError("stat deck", err))
	}

	res := &BuildResult{
		Output:  written,
		Title:   title,
		Slides:  pptx.SlideCount(p),
		Layouts: distinctLayouts(pl),
		Bytes:   info.Size(),
	}

	if opts.Handout {
		res.Handout, err = s.writeHandout(written, title, tr)
		if err != nil {
			return nil, WrapError("deck", "Build", err)
		}
		s.log(tr.T("build.handout", res.Handout))
	}

	if opts.PreviewDir != "" {
		width := opts.PreviewWidth
		if width <= 0 {
			width = s.cfg.PreviewWidth
		}
		res.Previews, err = export.NewPreviewService(s.logger).Render(p, opts.PreviewDir, width)
		if err != nil {
			return nil, WrapError("deck", "Build", err)
		}
		s.log(tr.T("build.preview", len(res.Previews), opts.PreviewDir))
	}

	res.Duration = s.now().Sub(start)
	s.record(ctx, planPath, pl.Language, opts, res, tr)

	s.log(tr.T("build.done", res.Output, res.Slides, res.Bytes, res.Duration.Round(time.Millisecond)))
	return res, nil
}

// historyState reports whether builds can be recorded. Without a registry
// the history service is trusted as is.
func (s *DeckService) historyState() ServiceStatus {
	if s.history == nil {
		return ServiceStatus{Name: "history", State: StateDisabled}
	}
	if s.services == nil {
		return ServiceStatus{Name: s.history.Name(), State: StateReady}
	}
	st, ok := s.services.Status(s.history.Name())
	if !ok {
		return ServiceStatus{Name: s.history.Name(), State: StateDisabled}
	}
	return st
}

// record stores the build in history. The deck already exists on disk, so a
// failure here becomes a warning on the result rather than an error.
func (s *DeckService) record(ctx context.Context, planPath, lang string, opts BuildOptions, res *BuildResult, tr *i18n.Translator) {
	switch st := s.historyState(); st.State {
	case StateReady:
	case StateDegraded:
		res.Warnings = append(res.Warnings, tr.T("history.degraded", st.Err))
		return
	default:
		return
	}

	b := &database.Build{
		PlanPath:   planPath,
		Output:     res.Output,
		Title:      res.Title,
		Slides:     res.Slides,
		Layouts:    res.Layouts,
		Bytes:      res.Bytes,
		Duration:   res.Duration,
		Language:   string(i18n.ParseLanguage(lang)),
		Handout:    res.Handout,
		PreviewDir: opts.PreviewDir,
	}
	if err := s.history.Record(ctx, b); err != nil {
		s.log(fmt.Sprintf("[HISTORY] Failed to record build: %v", err))
		res.Warnings = append(res.Warnings, tr.T("history.failed", err))
		return
	}
	res.ID = b.ID
}

func (s *DeckService) outputPath(planPath, output string) string {
	if output != "" {
		return output
	}
	name := strings.TrimSuffix(filepath.Base(planPath), filepath.Ext(planPath)) + ".pptx"
	if s.cfg.OutputDir != "" {
		return filepath.Join(s.cfg.OutputDir, name)
	}
	return filepath.Join(filepath.Dir(planPath), name)
}

func (s *DeckService) writeHandout(deckPath, title string, tr *i18n.Translator) (string, error) {
	doc, err := pptx.Open(deckPath)
	if err != nil {
		return "", WrapOperationError("read deck", err)
	}
	pdf, err := export.NewHandoutService(tr, s.logger).Generate(doc, title)
	if err != nil {
		return "", err
	}
	name := strings.TrimSuffix(deckPath, filepath.Ext(deckPath)) + ".pdf"
	if err := os.WriteFile(name, pdf, 0644); err != nil {
		return "", WrapOperationError("write handout", err)
	}
	return name, nil
}

// Inspect reads a saved deck back.
func (s *DeckService) Inspect(path string) (*pptx.Document, error) {
	doc, err := pptx.Open(path)
	if err != nil {
		return nil, WrapError("deck", "Inspect", err)
	}
	return doc, nil
}

// Workbook exports the slide texts, notes and chart data of a saved deck to
// an Excel workbook at out.
func (s *DeckService) Workbook(path, out string) error {
	doc, err := pptx.Open(path)
	if err != nil {
		return WrapError("deck", "Workbook", err)
	}
	tr := i18n.New(i18n.ParseLanguage(s.cfg.Language))
	data, err := export.NewWorkbookService(tr, s.logger).Generate(doc, doc.Title)
	if err != nil {
		return WrapError("deck", "Workbook", err)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return WrapError("deck", "Workbook", WrapOperationError("write workbook", err))
	}
	return nil
}

// Preview renders every slide of a saved deck to PNG files in dir.
func (s *DeckService) Preview(path, dir string, width int) ([]string, error) {
	if width <= 0 {
		width = s.cfg.PreviewWidth
	}
	files, err := export.NewPreviewService(s.logger).RenderPNG(path, dir, width)
	if err != nil {
		return nil, WrapError("deck", "Preview", err)
	}
	return files, nil
}

func distinctLayouts(pl *plan.Plan) []string {
	seen := make(map[string]bool, len(pl.Slides))
	var out []string
	for _, s := range pl.Slides {
		if !seen[s.Layout] {
			seen[s.Layout] = true
			out = append(out, s.Layout)
		}
	}
	return out
}
