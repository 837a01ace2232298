package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-dateinput/pkg/dateinput"
)

// DefaultPasteMessage is shown after a paste attempt.
const DefaultPasteMessage = "Pasting is not supported. Please type the date."

type Option func(*config)

type config struct {
	templateFS   fs.FS
	fieldName    string
	pasteMessage string
	inlineStyles bool
	labels       map[dateinput.Segment]string
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// TemplateName.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithFieldName sets the form field name of the hidden canonical input.
func WithFieldName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.fieldName = name
		}
	}
}

func WithPasteMessage(message string) Option {
	return func(cfg *config) {
		if message != "" {
			cfg.pasteMessage = message
		}
	}
}

// WithInlineStyles embeds the default stylesheet in the output.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// WithLabels overrides the visible segment labels.
func WithLabels(labels map[dateinput.Segment]string) Option {
	return func(cfg *config) {
		for seg, label := range labels {
			cfg.labels[seg] = label
		}
	}
}

type Renderer struct {
	template *pongo2.Template
	cfg      config
}

// New constructs the renderer and parses its template.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		fieldName:    "date",
		pasteMessage: DefaultPasteMessage,
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
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	set := pongo2.NewSet("dateinput", pongo2.NewFSLoader(cfg.templateFS))
	tmpl, err := set.FromFile(TemplateName)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: parse template: %w", err)
	}
	return &Renderer{template: tmpl, cfg: cfg}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the HTML fragment for a widget snapshot.
func (r *Renderer) Render(ctx context.Context, state dateinput.State) ([]byte, error) {
	if r == nil || r.template == nil {
		return nil, fmt.Errorf("vanilla renderer: template is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := pongo2.Context{
		"widget":       r.widgetContext(state),
		"pasteMessage": r.cfg.pasteMessage,
	}
	if r.cfg.inlineStyles {
		data["stylesheet"] = defaultStylesheet()
	}

	var buf bytes.Buffer
	if err := r.template.ExecuteWriter(data, &buf); err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) widgetContext(state dateinput.State) map[string]any {
	segments := make([]map[string]any, 0, len(dateinput.SegmentOrder))
	for _, seg := range dateinput.SegmentOrder {
		segments = append(segments, map[string]any{
			"name":        seg.String(),
			"label":       r.cfg.labels[seg],
			"value":       state.Segments.Get(seg),
			"maxLength":   seg.MaxLength(),
			"placeholder": seg.Placeholder(),
		})
	}

	errs := make([]map[string]any, 0, len(state.Errors))
	for _, entry := range state.Errors {
		errs = append(errs, map[string]any{
			"name":    string(entry.Kind),
			"message": SanitizeMessage(entry.Message),
		})
	}

	name := state.Name
	if name == "" {
		name = "Date"
	}

	return map[string]any{
		"name":       name,
		"field":      r.cfg.fieldName,
		"readOnly":   state.ReadOnly,
		"value":      state.Value,
		"segments":   segments,
		"errors":     errs,
		"invalid":    len(errs) > 0,
		"pasteError": state.PasteError,
	}
}
