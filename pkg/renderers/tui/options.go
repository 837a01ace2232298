package tui

import "github.com/goliatone/go-dateinput/pkg/dateinput"

// OutputFormat controls how Encode serializes the final state.
type OutputFormat string

const (
	// OutputFormatJSON emits the widget snapshot as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatValue emits only the canonical MM-DD-YYYY value.
	OutputFormatValue OutputFormat = "value"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes the session applies when printing
// messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLabels overrides the prompt label of each segment.
func WithLabels(labels map[dateinput.Segment]string) Option {
	return func(s *Session) {
		for seg, label := range labels {
			s.labels[seg] = label
		}
	}
}
