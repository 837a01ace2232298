// Package dateinput implements the state machine behind a three segment date
// entry widget (month, day, year).
//
// A Widget owns the raw segment text, validates every edit, merges complete
// segments into a canonical MM-DD-YYYY value and writes it into an injected
// Control owned by the containing form. Validation failures never surface as
// Go errors; they accumulate in an ErrorList keyed by Kind so the presentation
// layer decides how to show them.
//
// Minimum and maximum bounds are supplied as a BoundSource: a literal string,
// a linked field read once at construction, or a live stream (see Feed) that
// keeps overwriting the bound until the widget is destroyed.
package dateinput
