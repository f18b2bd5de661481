package app

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"hrslides/config"
	"hrslides/plan"
)

const samplePlan = `{
  "title": "Onboarding 2026",
  "author": "DRH",
  "slides": [
    {"layout": "title", "title": "Onboarding 2026", "subtitle": "Bilan"},
    {"layout": "agenda", "items": ["Contexte", "Chiffres"]},
    {"layout": "bullets", "title": "Contexte", "bullets": ["Arrivées en hausse", "Nouveau parcours"],
     "notes": "Insister sur le parcours."},
    {"layout": "bar_chart", "title": "Arrivées", "categories": ["T1", "T2"], "values": [12, 18]},
    {"layout": "bullets", "title": "Suite", "bullets": ["Mesurer"]}
  ]
}`

func writePlan(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write plan: %v", err)
	}
	return path
}

func newTestApp(t *testing.T, history bool) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		OutputDir:    filepath.Join(dir, "out"),
		Language:     "fr",
		Author:       "Config Author",
		PreviewWidth: 320,
		History: config.HistoryConfig{
			Enabled: history,
			Engine:  "sqlite",
			DSN:     filepath.Join(dir, "history.db"),
		},
	}
	a, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(a.Close)
	return a, dir
}

func TestDeckService_Build(t *testing.T) {
	a, dir := newTestApp(t, true)
	planPath := writePlan(t, dir, "onboarding.json", samplePlan)

	res, err := a.Deck.Build(context.Background(), planPath, BuildOptions{Handout: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	wantOut := filepath.Join(dir, "out", "onboarding.pptx")
	if res.Output != wantOut {
		t.Errorf("Output = %q, want %q", res.Output, wantOut)
	}
	if res.Slides != 5 {
		t.Errorf("Slides = %d, want 5", res.Slides)
	}
	if want := []string{"title", "agenda", "bullets", "bar_chart"}; !reflect.DeepEqual(res.Layouts, want) {
		t.Errorf("Layouts = %v, want %v", res.Layouts, want)
	}
	info, err := os.Stat(res.Output)
	if err != nil || info.Size() != res.Bytes {
		t.Errorf("deck size mismatch: stat %v, result %d", err, res.Bytes)
	}

	pdf, err := os.ReadFile(res.Handout)
	if err != nil {
		t.Fatalf("handout not written: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("handout is not a PDF")
	}

	if res.ID == "" {
		t.Fatal("expected a history id")
	}
	b, err := a.History.Get(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("history Get failed: %v", err)
	}
	if b.Slides != 5 || b.Language != "fr" || b.Handout != res.Handout {
		t.Errorf("unexpected history row: %+v", b)
	}
}

func TestDeckService_BuildDocumentProperties(t *testing.T) {
	a, dir := newTestApp(t, false)
	planPath := writePlan(t, dir, "p.json", samplePlan)
	out := filepath.Join(dir, "custom")

	res, err := a.Deck.Build(context.Background(), planPath, BuildOptions{Output: out})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if res.Output != out+".pptx" {
		t.Errorf("Output = %q, want suffix appended", res.Output)
	}
	if res.ID != "" {
		t.Errorf("history is off, got id %q", res.ID)
	}

	doc, err := a.Deck.Inspect(res.Output)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if doc.Title != "Onboarding 2026" || doc.Creator != "DRH" {
		t.Errorf("unexpected properties: title %q, creator %q", doc.Title, doc.Creator)
	}
	if len(doc.Slides) != 5 {
		t.Fatalf("expected 5 slides, got %d", len(doc.Slides))
	}
	if doc.Slides[2].Notes != "Insister sur le parcours." {
		t.Errorf("notes = %q", doc.Slides[2].Notes)
	}
	if len(doc.Slides[3].Charts) != 1 {
		t.Errorf("expected one chart on slide 4, got %d", len(doc.Slides[3].Charts))
	}
}

func TestDeckService_BuildFallsBackToConfigLanguage(t *testing.T) {
	a, dir := newTestApp(t, false)
	planPath := writePlan(t, dir, "agenda.yaml", "slides:\n  - layout: agenda\n    items: [Un, Deux]\n")

	res, err := a.Deck.Build(context.Background(), planPath, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	doc, err := a.Deck.Inspect(res.Output)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	found := false
	for _, txt := range doc.Slides[0].Texts() {
		if strings.Contains(txt, "Sommaire") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected French agenda title, got %v", doc.Slides[0].Texts())
	}
	if res.Title != "agenda" {
		t.Errorf("untitled plan should use its file name, got %q", res.Title)
	}
}

func TestDeckService_BuildErrors(t *testing.T) {
	a, dir := newTestApp(t, false)

	bad := writePlan(t, dir, "bad.json", `{"slides":[{"layout":"hologram"}]}`)
	_, err := a.Deck.Build(context.Background(), bad, BuildOptions{})
	if !errors.Is(err, plan.ErrUnknownLayout) {
		t.Errorf("expected ErrUnknownLayout, got %v", err)
	}
	var se *ServiceError
	if !errors.As(err, &se) || se.Service != "deck" || se.Operation != "Build" {
		t.Errorf("expected deck.Build service error, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out", "bad.pptx")); statErr == nil {
		t.Error("invalid plan must not write a deck")
	}

	_, err = a.Deck.Build(context.Background(), filepath.Join(dir, "plan.txt"), BuildOptions{})
	if !errors.Is(err, plan.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	good := writePlan(t, dir, "good.json", samplePlan)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Deck.Build(ctx, good, BuildOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestHistoryService_Disabled(t *testing.T) {
	a, _ := newTestApp(t, false)

	if a.History.Enabled() {
		t.Fatal("history should be disabled")
	}
	if _, err := a.History.List(context.Background(), 10); !errors.Is(err, ErrHistoryDisabled) {
		t.Errorf("expected ErrHistoryDisabled, got %v", err)
	}
	if err := a.History.Delete(context.Background(), "x"); !errors.Is(err, ErrHistoryDisabled) {
		t.Errorf("expected ErrHistoryDisabled, got %v", err)
	}
}

func TestHistoryService_BadEngineDegrades(t *testing.T) {
	var logs []string
	cfg := &config.Config{
		PreviewWidth: 320,
		History:      config.HistoryConfig{Enabled: true, Engine: "oracle", DSN: "x"},
	}
	a, err := New(context.Background(), cfg, func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if err := a.Start(); err != nil {
		t.Fatalf("history failure should not stop startup: %v", err)
	}
	if a.History.Enabled() {
		t.Error("history should stay disabled after a failed open")
	}
	if len(logs) == 0 || !strings.Contains(logs[0], "degraded") {
		t.Errorf("expected a degraded log line, got %v", logs)
	}
	degraded := a.Degraded()
	if len(degraded) != 1 || degraded[0].Name != "history" || degraded[0].Err == nil {
		t.Errorf("Degraded = %+v", degraded)
	}
}

func TestDeckService_BuildWarnsWhenHistoryDegraded(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		OutputDir:    filepath.Join(dir, "out"),
		Language:     "en",
		PreviewWidth: 320,
		History:      config.HistoryConfig{Enabled: true, Engine: "oracle", DSN: "x"},
	}
	a, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()
	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	planPath := writePlan(t, dir, "p.json", samplePlan)
	res, err := a.Deck.Build(context.Background(), planPath, BuildOptions{})
	if err != nil {
		t.Fatalf("a degraded history must not fail the build: %v", err)
	}
	if res.ID != "" {
		t.Errorf("got history id %q from a degraded history", res.ID)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "oracle") {
		t.Errorf("Warnings = %q", res.Warnings)
	}
	if _, err := os.Stat(res.Output); err != nil {
		t.Errorf("deck not written: %v", err)
	}
}

func TestDeckService_DisabledHistoryIsSilent(t *testing.T) {
	a, dir := newTestApp(t, false)
	if st, _ := a.Status("history"); st.State != StateDisabled {
		t.Fatalf("history state = %s, want disabled", st.State)
	}
	res, err := a.Deck.Build(context.Background(), writePlan(t, dir, "p.json", samplePlan), BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %q", res.Warnings)
	}
}

func TestDeckService_BuildPreviews(t *testing.T) {
	a, dir := newTestApp(t, false)
	planPath := writePlan(t, dir, "p.json", samplePlan)
	previews := filepath.Join(dir, "png")

	res, err := a.Deck.Build(context.Background(), planPath, BuildOptions{PreviewDir: previews})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(res.Previews) != res.Slides {
		t.Fatalf("got %d previews for %d slides", len(res.Previews), res.Slides)
	}
	f, err := os.Open(res.Previews[3])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 320 {
		t.Errorf("width = %d, want the configured 320", cfg.Width)
	}
}
