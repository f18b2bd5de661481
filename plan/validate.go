package plan

import (
	"errors"

	"hrslides/i18n"
)

// Validate checks every slide for a known layout, its required keys and
// well-typed values. All problems are reported at once, joined.
func (pl *Plan) Validate() error {
	if len(pl.Slides) == 0 {
		return ErrNoSlides
	}
	tr := i18n.New(i18n.ParseLanguage(pl.Language))

	var errs []error
	for i, s := range pl.Slides {
		l, ok := layouts[s.Layout]
		if !ok {
			errs = append(errs, &FieldError{Index: i, Layout: s.Layout, Key: "layout", Err: ErrUnknownLayout})
			continue
		}
		missing := false
		for _, key := range l.required {
			if !s.Has(key) {
				errs = append(errs, &FieldError{Index: i, Layout: s.Layout, Key: key, Err: ErrMissingKey})
				missing = true
			}
		}
		if missing {
			continue
		}
		if _, err := l.prepare(s, tr); err != nil {
			errs = append(errs, at(i, s.Layout, err))
		}
	}
	return errors.Join(errs...)
}
