package slides

import "errors"

var (
	ErrNoItems           = errors.New("layout needs at least one item")
	ErrTooManyItems      = errors.New("too many items for layout")
	ErrLengthMismatch    = errors.New("categories and values differ in length")
	ErrNegativeValue     = errors.New("pie chart values must not be negative")
	ErrInvalidValue      = errors.New("chart values must be finite numbers")
	ErrDuplicateCategory = errors.New("chart categories must be distinct")
)
