package slides

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"hrslides/design"
	"hrslides/pptx"

	ppt "github.com/VantageDataChat/GoPPT"
	"pgregory.net/rapid"
)

func readBack(t *testing.T, p *ppt.Presentation) *pptx.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := pptx.WriteTo(p, &buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	doc, err := pptx.Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return doc
}

func TestSave_AppendsExtension(t *testing.T) {
	dir := t.TempDir()
	p := NewPresentation()
	AddTitleSlide(p, "Bilan social", "", "")

	tests := []struct{ in, want string }{
		{"deck", "deck.pptx"},
		{"deck2.pptx", "deck2.pptx"},
		{"DECK3.PPTX", "DECK3.PPTX"},
	}
	for _, tt := range tests {
		got, err := Save(p, filepath.Join(dir, tt.in))
		if err != nil {
			t.Fatalf("Save(%q): %v", tt.in, err)
		}
		if got != filepath.Join(dir, tt.want) {
			t.Errorf("Save(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if _, err := os.Stat(got); err != nil {
			t.Errorf("saved file missing: %v", err)
		}
	}
}

func TestSave_MissingDirectory(t *testing.T) {
	p := NewPresentation()
	AddTitleSlide(p, "x", "", "")
	_, err := Save(p, filepath.Join(t.TempDir(), "missing", "deck"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !strings.Contains(err.Error(), "failed to save presentation") {
		t.Errorf("error not wrapped: %v", err)
	}
}

func TestSave_EmptyPresentationKeepsFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "deck.pptx")
	if err := os.WriteFile(name, []byte("previous deck"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Save(NewPresentation(), name); !errors.Is(err, pptx.ErrNoSlides) {
		t.Fatalf("err = %v, want ErrNoSlides", err)
	}
	data, err := os.ReadFile(name)
	if err != nil || string(data) != "previous deck" {
		t.Errorf("existing file changed: %q, %v", data, err)
	}
}

func TestNewPresentation_WideFormat(t *testing.T) {
	layout := NewPresentation().GetLayout()
	if layout.CX != pptx.Inches(13.333) || layout.CY != pptx.Inches(7.5) {
		t.Errorf("slide size = %dx%d", layout.CX, layout.CY)
	}
}

func TestSpeakerNotes_RoundTrip(t *testing.T) {
	long := strings.Repeat("La GPEC permet d'anticiper les besoins en compétences. ", 60)
	tests := []struct {
		name  string
		notes string
	}{
		{"plain", "Présenter le contexte en deux minutes."},
		{"multiline", "Point 1 : effectifs\nPoint 2 : mobilité\nPoint 3 : formation"},
		{"symbols", "Budget < 5 % & hausse > 2 %, « guillemets »"},
		{"long", long},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPresentation()
			AddBulletsSlide(p, "Titre", []string{"a"}, tt.notes)
			doc := readBack(t, p)
			if got := doc.Slides[0].Notes; got != tt.notes {
				t.Errorf("notes = %q, want %q", got, tt.notes)
			}
		})
	}
}

func TestSpeakerNotes_EmptyMeansNone(t *testing.T) {
	p := NewPresentation()
	s := AddSectionSlide(p, "Partie 2", "", "")
	if s.GetNotes() != "" {
		t.Fatalf("notes = %q", s.GetNotes())
	}
	doc := readBack(t, p)
	if doc.Slides[0].Notes != "" {
		t.Errorf("notes = %q", doc.Slides[0].Notes)
	}
}

func TestCharts_SurviveRoundTrip(t *testing.T) {
	p := NewPresentation()
	if _, err := AddBarChartSlide(p, "Effectifs", []string{"2022", "2023", "2024"}, []float64{110, 120, 135}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := AddPieChartSlide(p, "Contrats", []string{"CDI", "CDD", "Alternance"}, []float64{70, 20, 10}, ""); err != nil {
		t.Fatal(err)
	}
	doc := readBack(t, p)
	if len(doc.Slides) != 2 {
		t.Fatalf("got %d slides", len(doc.Slides))
	}
	bar := doc.Slides[0].Charts
	if len(bar) != 1 || bar[0].Kind != "bar" || len(bar[0].Values) != 3 || bar[0].Values[2] != 135 {
		t.Errorf("bar chart = %+v", bar)
	}
	pie := doc.Slides[1].Charts
	if len(pie) != 1 || pie[0].Kind != "pie" || pie[0].Categories[2] != "Alternance" {
		t.Errorf("pie chart = %+v", pie)
	}
}

func TestShapeLabels_SurviveRoundTrip(t *testing.T) {
	p := NewPresentation()
	if _, err := AddPyramidSlide(p, "Pyramide des âges", []string{"55 ans et +", "35-54 ans", "- de 35 ans"}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := AddProcessFlowSlide(p, "Recrutement", []Step{{Label: "Sourcing"}, {Label: "Entretiens"}, {Label: "Offre"}}, ""); err != nil {
		t.Fatal(err)
	}
	doc := readBack(t, p)
	for i, want := range [][]string{
		{"55 ans et +", "35-54 ans", "- de 35 ans"},
		{"Sourcing", "Entretiens", "Offre"},
	} {
		texts := strings.Join(doc.Slides[i].Texts(), "\n")
		for _, w := range want {
			if !strings.Contains(texts, w) {
				t.Errorf("slide %d: %q missing from %q", i+1, w, texts)
			}
		}
	}
	var chevrons int
	for _, sh := range doc.Slides[1].Shapes {
		if sh.Geometry == string(ppt.AutoShapeChevron) {
			chevrons++
		}
	}
	if chevrons != 3 {
		t.Errorf("read back %d chevrons, want 3", chevrons)
	}
}

func TestProperty_EachLayoutAddsOneSlide(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := NewPresentation()
		n := rapid.IntRange(1, 12).Draw(t, "slides")
		for i := 0; i < n; i++ {
			items := rapid.SliceOfN(rapid.StringMatching(`[A-Za-zéè ]{1,20}`), 1, 8).Draw(t, "items")
			switch rapid.IntRange(0, 3).Draw(t, "layout") {
			case 0:
				AddBulletsSlide(p, "t", items, "")
			case 1:
				AddAgendaSlide(p, items, "Agenda", "")
			case 2:
				if _, err := AddPyramidSlide(p, "t", items, ""); err != nil {
					t.Fatalf("pyramid: %v", err)
				}
			case 3:
				if _, err := AddFunnelSlide(p, "t", stagesOf(items), ""); err != nil {
					t.Fatalf("funnel: %v", err)
				}
			}
			if got := pptx.SlideCount(p); got != i+1 {
				t.Fatalf("slide count = %d after %d layouts", got, i+1)
			}
		}
	})
}

func stagesOf(labels []string) []Stage {
	out := make([]Stage, len(labels))
	for i, l := range labels {
		out[i] = Stage{Label: l}
	}
	return out
}

func TestProperty_GridHoldsEveryItem(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		cols, rows := gridShape(n)
		if cols*rows < n {
			t.Fatalf("gridShape(%d) = %dx%d too small", n, cols, rows)
		}
		if rows > 2 || cols > 4 {
			t.Fatalf("gridShape(%d) = %dx%d exceeds 4x2", n, cols, rows)
		}
	})
}

func TestProperty_ClampLabelBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "label")
		got := clampLabel(s)
		n := utf8.RuneCountInString(s)
		if n <= design.ChartLabelMax {
			if got != s {
				t.Fatalf("short label changed: %q -> %q", s, got)
			}
			return
		}
		if utf8.RuneCountInString(got) > design.ChartLabelMax {
			t.Fatalf("clampLabel(%q) = %q exceeds %d runes", s, got, design.ChartLabelMax)
		}
		if !strings.HasSuffix(got, design.Ellipsis) {
			t.Fatalf("clamped label %q lacks ellipsis", got)
		}
	})
}
