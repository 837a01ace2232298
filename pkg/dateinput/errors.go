package dateinput

import (
	"errors"
	"sync"
)

var (
	// ErrNilControl is returned by New when no Control is provided.
	ErrNilControl = errors.New("dateinput: control is required")
	// ErrDestroyed is returned by segment edits after Destroy.
	ErrDestroyed = errors.New("dateinput: widget destroyed")
)

// Kind identifies one validation failure category.
type Kind string

const (
	KindInvalidFeb   Kind = "invalidFeb"
	KindInvalidDay   Kind = "invalidDay"
	KindInvalidMonth Kind = "invalidMonth"
	KindInvalidYear  Kind = "invalidYear"
	KindMinDate      Kind = "minDateError"
	KindMaxDate      Kind = "maxDateError"
)

// Kinds lists every error kind in check order.
var Kinds = []Kind{
	KindInvalidDay,
	KindInvalidMonth,
	KindInvalidYear,
	KindInvalidFeb,
	KindMinDate,
	KindMaxDate,
}

// DefaultMessages holds the messages used when no override is configured.
// Bound errors have no default; their text comes from the widget options.
var DefaultMessages = map[Kind]string{
	KindInvalidFeb:   "Please enter a valid date.",
	KindInvalidDay:   "Please enter a valid day.",
	KindInvalidMonth: "Please enter a valid month.",
	KindInvalidYear:  "Please enter a valid year.",
}

// ErrorEntry is one active validation error.
type ErrorEntry struct {
	Kind    Kind   `json:"name"`
	Message string `json:"message"`
}

// ErrorList is an insertion ordered collection of ErrorEntry values with at
// most one entry per Kind. It is safe for concurrent use.
type ErrorList struct {
	mu      sync.RWMutex
	entries []ErrorEntry
}

// Has reports whether an entry of the given kind is active.
func (l *ErrorList) Has(kind Kind) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.indexOf(kind) >= 0
}

// Add appends an entry unless one with the same kind already exists. It
// reports whether the list changed.
func (l *ErrorList) Add(kind Kind, message string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexOf(kind) >= 0 {
		return false
	}
	l.entries = append(l.entries, ErrorEntry{Kind: kind, Message: message})
	return true
}

// Remove drops the entry of the given kind, if any, and reports whether the
// list changed.
func (l *ErrorList) Remove(kind Kind) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.indexOf(kind)
	if idx < 0 {
		return false
	}
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	return true
}

// Set adds or removes kind depending on active.
func (l *ErrorList) Set(kind Kind, message string, active bool) bool {
	if active {
		return l.Add(kind, message)
	}
	return l.Remove(kind)
}

// Entries returns a copy of the active entries in insertion order.
func (l *ErrorList) Entries() []ErrorEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return nil
	}
	return append([]ErrorEntry(nil), l.entries...)
}

// Len returns the number of active entries.
func (l *ErrorList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *ErrorList) indexOf(kind Kind) int {
	for i, entry := range l.entries {
		if entry.Kind == kind {
			return i
		}
	}
	return -1
}
