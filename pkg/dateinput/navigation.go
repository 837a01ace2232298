package dateinput

import "unicode/utf8"

// Move is a relative focus change between segments.
type Move int

const (
	MovePrev Move = -1
	MoveNone Move = 0
	MoveNext Move = 1
)

// Key codes the widget reacts to.
const (
	CodeBackspace = "Backspace"
	CodeTab       = "Tab"
)

// KeyEvent describes a key interaction on one segment input.
type KeyEvent struct {
	Segment Segment
	// Code is the physical key code, e.g. "Backspace", "Tab" or "Digit3".
	Code string
	// Key is the produced character, e.g. "3".
	Key string
	// Value is the input text at the time of the event.
	Value string
}

// Neighbor returns the segment at the relative offset m from seg.
func Neighbor(seg Segment, m Move) (Segment, bool) {
	next := Segment(int(seg) + int(m))
	if m == MoveNone || !seg.valid() || !next.valid() {
		return seg, false
	}
	return next, true
}

// KeyUp decides focus movement after a key was handled by an input.
// Backspace on an empty segment moves back, filling a segment moves forward
// and Tab marks the control touched so required errors show up.
func (w *Widget) KeyUp(ev KeyEvent) Move {
	switch ev.Code {
	case CodeBackspace:
		if ev.Value == "" {
			if _, ok := Neighbor(ev.Segment, MovePrev); ok {
				return MovePrev
			}
		}
	case CodeTab:
		w.touch()
	default:
		if utf8.RuneCountInString(ev.Value) == ev.Segment.MaxLength() {
			if _, ok := Neighbor(ev.Segment, MoveNext); ok {
				return MoveNext
			}
		}
	}
	return MoveNone
}

// AllowKey reports whether a key press may change the input. While the month
// is February the day cannot start with 3.
func (w *Widget) AllowKey(ev KeyEvent) bool {
	if ev.Segment != SegmentDay {
		return true
	}
	w.mu.Lock()
	month := w.segments.Month
	w.mu.Unlock()
	return !(month == "02" && ev.Value == "" && ev.Key == "3")
}

// Paste rejects pasted input on any segment and records the attempt.
func (w *Widget) Paste(Segment) bool {
	w.pasteError.Store(true)
	return false
}

// FocusOut marks the control touched and dirty when seg is left incomplete.
func (w *Widget) FocusOut(seg Segment, value string) {
	if utf8.RuneCountInString(value) < seg.MaxLength() {
		w.touch()
	}
}

func (w *Widget) touch() {
	if w.done() {
		return
	}
	w.control.MarkAsTouched()
	w.control.MarkAsDirty()
}
