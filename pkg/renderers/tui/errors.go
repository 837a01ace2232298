package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidDate is returned when the user gives up on an invalid date.
	ErrInvalidDate = errors.New("tui: no valid date entered")
	// ErrNilWidget is returned by NewSession without a widget.
	ErrNilWidget = errors.New("tui: widget is required")
)
