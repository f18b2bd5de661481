package plan

import (
	"encoding/json"
	"sort"

	"hrslides/i18n"
	"hrslides/slides"

	ppt "github.com/VantageDataChat/GoPPT"
)

type builder func(p *ppt.Presentation) error

type layout struct {
	required []string
	prepare  func(s SlideSpec, tr *i18n.Translator) (builder, error)
}

// LayoutInfo describes a layout for listings.
type LayoutInfo struct {
	Name     string
	Required []string
}

// Layouts lists every layout name with its required keys, sorted by name.
func Layouts() []LayoutInfo {
	out := make([]LayoutInfo, 0, len(layouts))
	for name, l := range layouts {
		out = append(out, LayoutInfo{Name: name, Required: append([]string(nil), l.required...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Build appends one slide per plan entry to p, in order. It stops at the
// first slide that fails and reports its position.
func Build(p *ppt.Presentation, pl *Plan) error {
	if len(pl.Slides) == 0 {
		return ErrNoSlides
	}
	tr := i18n.New(i18n.ParseLanguage(pl.Language))
	for i, s := range pl.Slides {
		l, ok := layouts[s.Layout]
		if !ok {
			return &FieldError{Index: i, Layout: s.Layout, Key: "layout", Err: ErrUnknownLayout}
		}
		for _, key := range l.required {
			if !s.Has(key) {
				return &FieldError{Index: i, Layout: s.Layout, Key: key, Err: ErrMissingKey}
			}
		}
		build, err := l.prepare(s, tr)
		if err != nil {
			return at(i, s.Layout, err)
		}
		if err := build(p); err != nil {
			return at(i, s.Layout, err)
		}
	}
	return nil
}

// fields decodes slide keys, keeping the first error.
type fields struct {
	s   SlideSpec
	err error
}

func (f *fields) decode(key string, v any) {
	if f.err != nil {
		return
	}
	f.err = f.s.Decode(key, v)
}

func (f *fields) str(key string) string {
	var v string
	f.decode(key, &v)
	return v
}

func (f *fields) strOr(key, def string) string {
	if !f.s.Has(key) {
		return def
	}
	return f.str(key)
}

// scalar reads a string that plans often write as a bare number, like a stat.
func (f *fields) scalar(key string) string {
	if f.err != nil || !f.s.Has(key) {
		return ""
	}
	v, err := scalarString(f.s.Fields[key])
	if err != nil {
		f.err = &FieldError{Layout: f.s.Layout, Key: key, Index: -1, Err: err}
	}
	return v
}

// strs reads a list of strings. Bare numbers, common for years in YAML
// plans, are taken as their text.
func (f *fields) strs(key string) []string {
	var raw []json.RawMessage
	f.decode(key, &raw)
	if f.err != nil {
		return nil
	}
	out, err := scalarStrings(raw)
	if err != nil {
		f.err = &FieldError{Layout: f.s.Layout, Key: key, Index: -1, Err: err}
	}
	return out
}

func (f *fields) floats(key string) []float64 {
	var v []float64
	f.decode(key, &v)
	return v
}

func (f *fields) done(b builder) (builder, error) {
	if f.err != nil {
		return nil, f.err
	}
	return b, nil
}

func added(_ *ppt.Slide, err error) error { return err }

var layouts = map[string]layout{
	"title": {
		required: []string{"title"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title, subtitle := f.str("title"), f.str("subtitle")
			return f.done(func(p *ppt.Presentation) error {
				slides.AddTitleSlide(p, title, subtitle, s.Notes())
				return nil
			})
		},
	},
	"agenda": {
		required: []string{"items"},
		prepare: func(s SlideSpec, tr *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			items, title := f.strs("items"), f.strOr("title", tr.T("agenda.title"))
			return f.done(func(p *ppt.Presentation) error {
				slides.AddAgendaSlide(p, items, title, s.Notes())
				return nil
			})
		},
	},
	"section": {
		required: []string{"title"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title, subtitle := f.str("title"), f.str("subtitle")
			return f.done(func(p *ppt.Presentation) error {
				slides.AddSectionSlide(p, title, subtitle, s.Notes())
				return nil
			})
		},
	},
	"bullets": {
		required: []string{"title", "bullets"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title, bullets := f.str("title"), f.strs("bullets")
			return f.done(func(p *ppt.Presentation) error {
				slides.AddBulletsSlide(p, title, bullets, s.Notes())
				return nil
			})
		},
	},
	"two_columns": {
		required: []string{"title", "left_title", "left_items", "right_title", "right_items"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title := f.str("title")
			left := slides.Column{Title: f.str("left_title"), Items: f.strs("left_items")}
			right := slides.Column{Title: f.str("right_title"), Items: f.strs("right_items")}
			return f.done(func(p *ppt.Presentation) error {
				slides.AddTwoColumnsSlide(p, title, left, right, s.Notes())
				return nil
			})
		},
	},
	"key_stat": {
		required: []string{"stat", "description"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			stat, desc := f.scalar("stat"), f.str("description")
			return f.done(func(p *ppt.Presentation) error {
				slides.AddKeyStatSlide(p, stat, desc, s.Notes())
				return nil
			})
		},
	},
	"quote": {
		required: []string{"quote"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			quote, author := f.str("quote"), f.str("author")
			return f.done(func(p *ppt.Presentation) error {
				slides.AddQuoteSlide(p, quote, author, s.Notes())
				return nil
			})
		},
	},
	"conclusion": {
		required: []string{"title", "points"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title, points := f.str("title"), f.strs("points")
			return f.done(func(p *ppt.Presentation) error {
				slides.AddConclusionSlide(p, title, points, s.Notes())
				return nil
			})
		},
	},
	"process_flow": {
		required: []string{"title", "steps"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title := f.str("title")
			var raw []step
			f.decode("steps", &raw)
			steps := convert(raw, func(v step) slides.Step { return slides.Step(v) })
			return f.done(func(p *ppt.Presentation) error {
				return added(slides.AddProcessFlowSlide(p, title, steps, s.Notes()))
			})
		},
	},
	"timeline": {
		required: []string{"title", "milestones"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title := f.str("title")
			var raw []milestone
			f.decode("milestones", &raw)
			ms := convert(raw, func(v milestone) slides.Milestone { return slides.Milestone(v) })
			return f.done(func(p *ppt.Presentation) error {
				return added(slides.AddTimelineSlide(p, title, ms, s.Notes()))
			})
		},
	},
	"matrix": {
		required: []string{"title", "top_left", "top_right", "bottom_left", "bottom_right"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title := f.str("title")
			var m slides.Matrix
			f.decode("top_left", &m.TopLeft)
			f.decode("top_right", &m.TopRight)
			f.decode("bottom_left", &m.BottomLeft)
			f.decode("bottom_right", &m.BottomRight)
			m.XLabel, m.YLabel = f.str("x_label"), f.str("y_label")
			return f.done(func(p *ppt.Presentation) error {
				slides.AddMatrixSlide(p, title, m, s.Notes())
				return nil
			})
		},
	},
	"pyramid": {
		required: []string{"title", "levels"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title, levels := f.str("title"), f.strs("levels")
			return f.done(func(p *ppt.Presentation) error {
				return added(slides.AddPyramidSlide(p, title, levels, s.Notes()))
			})
		},
	},
	"bar_chart": {
		required: []string{"title", "categories", "values"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title, cats, vals := f.str("title"), f.strs("categories"), f.floats("values")
			return f.done(func(p *ppt.Presentation) error {
				return added(slides.AddBarChartSlide(p, title, cats, vals, s.Notes()))
			})
		},
	},
	"pie_chart": {
		required: []string{"title", "categories", "values"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title, cats, vals := f.str("title"), f.strs("categories"), f.floats("values")
			return f.done(func(p *ppt.Presentation) error {
				return added(slides.AddPieChartSlide(p, title, cats, vals, s.Notes()))
			})
		},
	},
	"icon_cards": {
		required: []string{"title", "cards"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title := f.str("title")
			var raw []card
			f.decode("cards", &raw)
			cards := convert(raw, func(v card) slides.Card { return slides.Card(v) })
			return f.done(func(p *ppt.Presentation) error {
				return added(slides.AddIconCardsSlide(p, title, cards, s.Notes()))
			})
		},
	},
	"org_chart": {
		required: []string{"title", "manager"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title := f.str("title")
			var manager slides.Person
			var reports []slides.Person
			f.decode("manager", &manager)
			f.decode("reports", &reports)
			return f.done(func(p *ppt.Presentation) error {
				return added(slides.AddOrgChartSlide(p, title, manager, reports, s.Notes()))
			})
		},
	},
	"funnel": {
		required: []string{"title", "stages"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title := f.str("title")
			var raw []stage
			f.decode("stages", &raw)
			stages := convert(raw, func(v stage) slides.Stage { return slides.Stage(v) })
			return f.done(func(p *ppt.Presentation) error {
				return added(slides.AddFunnelSlide(p, title, stages, s.Notes()))
			})
		},
	},
	"team_grid": {
		required: []string{"title", "members"},
		prepare: func(s SlideSpec, _ *i18n.Translator) (builder, error) {
			f := &fields{s: s}
			title := f.str("title")
			var raw []member
			f.decode("members", &raw)
			members := convert(raw, func(v member) slides.Member { return slides.Member(v) })
			return f.done(func(p *ppt.Presentation) error {
				return added(slides.AddTeamGridSlide(p, title, members, s.Notes()))
			})
		},
	},
}

// LayoutNames returns the sorted layout names.
func LayoutNames() []string {
	infos := Layouts()
	names := make([]string, len(infos))
	for i, l := range infos {
		names[i] = l.Name
	}
	return names
}
