// Package pptx holds the deck plumbing shared by the slide layouts and the
// exporters, on top of GoPPT: EMU and color helpers, slide bookkeeping,
// atomic saving, and a read-only view of a saved deck.
//
// Positions and sizes are EMU (English Metric Units). Use Inches and Pt to
// convert.
package pptx
