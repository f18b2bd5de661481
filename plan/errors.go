package plan

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported plan format")
	ErrNoSlides          = errors.New("plan has no slides")
	ErrUnknownLayout     = errors.New("unknown layout")
	ErrMissingKey        = errors.New("missing required key")
)

// FieldError locates a problem in a plan. Index is the zero-based slide
// position, or -1 when the slide is not known yet.
type FieldError struct {
	Index  int
	Layout string
	Key    string
	Err    error
}

func (e *FieldError) Error() string {
	var where string
	switch {
	case e.Index >= 0 && e.Layout != "":
		where = fmt.Sprintf("slide %d (%s)", e.Index+1, e.Layout)
	case e.Index >= 0:
		where = fmt.Sprintf("slide %d", e.Index+1)
	default:
		where = e.Layout
	}
	if e.Key != "" {
		return fmt.Sprintf("%s: %s: %v", where, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// at returns err located at slide i. FieldErrors from field decoding keep
// their key.
func at(i int, layout string, err error) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		return &FieldError{Index: i, Layout: layout, Key: fe.Key, Err: fe.Err}
	}
	return &FieldError{Index: i, Layout: layout, Err: err}
}
