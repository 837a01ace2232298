package dateinput

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/robinjoseph08/golib/logger"
	"golang.org/x/sync/errgroup"
)

// Widget is the segment validation and synchronization state machine.
//
// Segment edits are serialized. Every edit runs the checks in a fixed order:
// invalidDay, invalidMonth, invalidYear, the merge gate, invalidFeb (through
// the control listener fired by the merge write), then the min and max bound
// checks. The control only ever keeps a value that passed all of them.
type Widget struct {
	opts    Options
	control Control
	log     logger.Logger

	mu       sync.Mutex
	segments Segments

	errs       ErrorList
	min        bound
	max        bound
	pasteError atomic.Bool
	closed     atomic.Bool

	ctx         context.Context
	cancel      context.CancelFunc
	group       *errgroup.Group
	stopListen  func()
	destroyOnce sync.Once
}

// State is a point in time copy of the widget for presentation layers.
type State struct {
	Name        string       `json:"name,omitempty"`
	ReadOnly    bool         `json:"readOnly"`
	DateOfBirth bool         `json:"dateOfBirth"`
	Segments    Segments     `json:"segments"`
	Value       string       `json:"value"`
	Errors      []ErrorEntry `json:"errors"`
	PasteError  bool         `json:"pasteError"`
	MinDate     string       `json:"minDate,omitempty"`
	MaxDate     string       `json:"maxDate,omitempty"`
}

// Valid reports whether the snapshot holds a merged value and no errors.
func (s State) Valid() bool {
	return s.Value != "" && len(s.Errors) == 0
}

// New builds a widget bound to control. ctx scopes the widget lifetime: live
// bound subscriptions stop when it is cancelled or when Destroy is called.
// The logger is taken from ctx.
func New(ctx context.Context, control Control, fns ...OptionFn) (*Widget, error) {
	if control == nil {
		return nil, ErrNilControl
	}
	if ctx == nil {
		ctx = context.Background()
	}

	opts := NewOptions(fns...)
	scope, cancel := context.WithCancel(ctx)
	group, scope := errgroup.WithContext(scope)

	w := &Widget{
		opts:    opts,
		control: control,
		log: logger.FromContext(ctx).Root(logger.Data{
			"component": "dateinput",
			"name":      opts.Name,
		}),
		ctx:    scope,
		cancel: cancel,
		group:  group,
	}

	w.stopListen = control.OnChange(w.onControlChange)
	w.resolveBound("min", &w.min, opts.MinDate)
	w.resolveBound("max", &w.max, opts.MaxDate)

	return w, nil
}

// Options returns the widget configuration.
func (w *Widget) Options() Options {
	return NewOptions(func(o *Options) { *o = w.opts })
}

// SetDay replaces the day segment and revalidates.
func (w *Widget) SetDay(value string) error {
	return w.SetSegment(SegmentDay, value)
}

// SetMonth replaces the month segment and revalidates.
func (w *Widget) SetMonth(value string) error {
	return w.SetSegment(SegmentMonth, value)
}

// SetYear replaces the year segment and revalidates.
func (w *Widget) SetYear(value string) error {
	return w.SetSegment(SegmentYear, value)
}

// SetSegment replaces one segment and revalidates.
func (w *Widget) SetSegment(seg Segment, value string) error {
	return w.update(func(s Segments) Segments {
		return s.With(seg, value)
	})
}

// SetSegments replaces all three segments as a single edit.
func (w *Widget) SetSegments(segments Segments) error {
	return w.update(func(Segments) Segments {
		return segments
	})
}

// Segments returns the current raw segment text.
func (w *Widget) Segments() Segments {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.segments
}

// Errors returns the active errors in insertion order.
func (w *Widget) Errors() []ErrorEntry {
	return w.errs.Entries()
}

// HasError reports whether kind is active.
func (w *Widget) HasError(kind Kind) bool {
	return w.errs.Has(kind)
}

// PasteError reports whether a paste was ever attempted.
func (w *Widget) PasteError() bool {
	return w.pasteError.Load()
}

// MinDate returns the resolved minimum bound, or "".
func (w *Widget) MinDate() string {
	return w.min.get()
}

// MaxDate returns the resolved maximum bound, or "".
func (w *Widget) MaxDate() string {
	return w.max.get()
}

// Snapshot copies the widget state.
func (w *Widget) Snapshot() State {
	return State{
		Name:        w.opts.Name,
		ReadOnly:    w.opts.ReadOnly,
		DateOfBirth: w.opts.IsDateOfBirth,
		Segments:    w.Segments(),
		Value:       w.control.Value(),
		Errors:      w.errs.Entries(),
		PasteError:  w.pasteError.Load(),
		MinDate:     w.min.get(),
		MaxDate:     w.max.get(),
	}
}

// Destroy tears down every subscription and waits for live bound sources to
// stop. After it returns the widget no longer mutates the control, the error
// list or the bounds. It is safe to call more than once.
func (w *Widget) Destroy() {
	w.destroyOnce.Do(func() {
		w.mu.Lock()
		w.closed.Store(true)
		w.mu.Unlock()

		if w.stopListen != nil {
			w.stopListen()
		}
		w.cancel()
		_ = w.group.Wait()
		w.log.Debug("widget destroyed")
	})
}

func (w *Widget) done() bool {
	return w.closed.Load() || w.ctx.Err() != nil
}

func (w *Widget) update(fn func(Segments) Segments) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done() {
		return ErrDestroyed
	}
	w.segments = fn(w.segments)
	w.validate(w.segments)
	return nil
}

// validate runs with w.mu held.
func (w *Widget) validate(s Segments) {
	w.setError(KindInvalidDay, s.dayInvalid())
	w.setError(KindInvalidMonth, s.monthInvalid())
	w.setError(KindInvalidYear, s.yearInvalid(w.opts.IsDateOfBirth))

	if !s.complete(w.opts.IsDateOfBirth) {
		w.control.SetValue("")
		w.control.MarkAsTouched()
		w.control.MarkAsDirty()
		return
	}

	value := s.Canonical()
	w.control.SetValue(value)
	w.log.Debug("segments merged", logger.Data{"value": value})

	minDate, maxDate := w.min.get(), w.max.get()
	if minDate != "" {
		w.checkBound(KindMinDate, IsBefore(w.control.Value(), minDate))
	}
	if maxDate != "" {
		w.checkBound(KindMaxDate, IsAfter(w.control.Value(), maxDate))
	}
}

func (w *Widget) checkBound(kind Kind, violated bool) {
	if !violated {
		w.setError(kind, false)
		return
	}
	w.setError(kind, true)
	w.control.SetValue("")
}

// onControlChange guards the control against values that are not calendar
// dates, whoever wrote them.
func (w *Widget) onControlChange(value string) {
	if w.done() || value == "" {
		return
	}
	if !ValidValue(value) {
		w.control.SetValue("")
		w.setError(KindInvalidFeb, true)
		return
	}
	w.setError(KindInvalidFeb, false)
}

func (w *Widget) setError(kind Kind, active bool) {
	if !w.errs.Set(kind, w.opts.Message(kind), active) {
		return
	}
	if active {
		w.log.Debug("validation error added", logger.Data{"kind": string(kind)})
		return
	}
	w.log.Debug("validation error removed", logger.Data{"kind": string(kind)})
}

func (w *Widget) resolveBound(label string, dst *bound, src BoundSource) {
	switch src.Kind() {
	case BoundLiteral, BoundLinked:
		dst.set(src.initial())
	case BoundLive:
		updates := src.subscribe(w.ctx)
		// A value already buffered at subscription, such as a Feed replay,
		// is the bound from the first edit on.
		select {
		case value, ok := <-updates:
			if !ok {
				return
			}
			dst.set(value)
		default:
		}
		w.group.Go(func() error {
			for {
				select {
				case <-w.ctx.Done():
					return nil
				case value, ok := <-updates:
					if !ok || w.closed.Load() {
						return nil
					}
					dst.set(value)
					w.log.Debug("bound updated", logger.Data{"bound": label, "value": value})
				}
			}
		})
	}
}
