package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-dateinput/pkg/dateinput"
)

// Session collects a date in the terminal by prompting each segment in focus
// order and feeding the answers through a dateinput.Widget.
type Session struct {
	widget       *dateinput.Widget
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	labels       map[dateinput.Segment]string
}

// NewSession wraps w. The survey driver is used unless WithPromptDriver is
// given.
func NewSession(w *dateinput.Widget, options ...Option) (*Session, error) {
	if w == nil {
		return nil, ErrNilWidget
	}
	s := &Session{
		widget:       w,
		outputFormat: OutputFormatJSON,
		labels: map[dateinput.Segment]string{
			dateinput.SegmentMonth: "Month",
			dateinput.SegmentDay:   "Day",
			dateinput.SegmentYear:  "Year",
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Run prompts until the widget holds a valid date or the user declines to
// retry, and returns the canonical value.
func (s *Session) Run(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", errors.New("tui: context is required")
	}
	name := s.widget.Options().Name
	if name != "" {
		if err := s.info(ctx, name); err != nil {
			return "", err
		}
	}

	for {
		for _, seg := range dateinput.SegmentOrder {
			if err := s.askSegment(ctx, seg); err != nil {
				return "", err
			}
		}

		state := s.widget.Snapshot()
		if state.Valid() {
			return state.Value, nil
		}

		if err := s.report(ctx, state); err != nil {
			return "", err
		}
		retry, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: "Try again?",
			Default: true,
		})
		if err != nil {
			return "", err
		}
		if !retry {
			return "", ErrInvalidDate
		}
	}
}

// Encode serializes state in the configured output format.
func (s *Session) Encode(state dateinput.State) ([]byte, error) {
	switch s.outputFormat {
	case OutputFormatValue:
		return []byte(state.Value), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		if state.Name != "" {
			fmt.Fprintf(&b, "%s: ", state.Name)
		}
		if state.Value != "" {
			b.WriteString(state.Value)
		} else {
			b.WriteString("(empty)")
		}
		for _, entry := range state.Errors {
			fmt.Fprintf(&b, "\n  - %s", entry.Message)
		}
		return []byte(b.String()), nil
	default:
		data, err := json.Marshal(state)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return data, nil
	}
}

func (s *Session) askSegment(ctx context.Context, seg dateinput.Segment) error {
	answer, err := s.driver.Input(ctx, InputConfig{
		Message:   fmt.Sprintf("%s (%s)", s.labels[seg], seg.Placeholder()),
		Default:   s.widget.Segments().Get(seg),
		Help:      fmt.Sprintf("%d digits, pasting is not supported", seg.MaxLength()),
		Validator: s.segmentValidator(seg),
	})
	if err != nil {
		return err
	}
	answer = strings.TrimSpace(answer)
	s.widget.FocusOut(seg, answer)
	return s.widget.SetSegment(seg, answer)
}

// segmentValidator applies the same guards the keyboard handlers do: digits
// only, no longer than the segment and no day starting with 3 in February.
func (s *Session) segmentValidator(seg dateinput.Segment) func(string) error {
	return func(raw string) error {
		value := strings.TrimSpace(raw)
		if utf8.RuneCountInString(value) > seg.MaxLength() {
			return fmt.Errorf("%s must be at most %d digits", seg, seg.MaxLength())
		}
		for _, r := range value {
			if r < '0' || r > '9' {
				return fmt.Errorf("%s must contain digits only", seg)
			}
		}
		if value == "" {
			return nil
		}
		first, _ := utf8.DecodeRuneInString(value)
		if !s.widget.AllowKey(dateinput.KeyEvent{Segment: seg, Key: string(first)}) {
			return fmt.Errorf("February has no day starting with %c", first)
		}
		return nil
	}
}

func (s *Session) report(ctx context.Context, state dateinput.State) error {
	if len(state.Errors) == 0 {
		return s.driver.Info(ctx, s.theme.ErrorPrefix+"Please complete the date.")
	}
	for _, entry := range state.Errors {
		message := entry.Message
		if message == "" {
			message = string(entry.Kind)
		}
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}
