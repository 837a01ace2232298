package dateinput

import (
	"context"
	"net/http"

	core "github.com/goliatone/go-dateinput/pkg/dateinput"
	"github.com/goliatone/go-dateinput/pkg/formcontrol"
)

// Component bundles the validation endpoint with the widget configuration it
// validates against. Every request gets its own widget, so one Component
// serves any number of concurrent forms.
type Component struct {
	opts Options
}

func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Validate runs segments through a throwaway widget built from the component
// options and returns its final state. Live bounds are read at that moment.
func (c *Component) Validate(ctx context.Context, segments core.Segments) (core.State, error) {
	return validateSegments(ctx, c.Options(), segments)
}

func (c *Component) Handler() http.Handler {
	return HandlerWithOptions(c.Options())
}

// RegisterRoutes mounts the validate route, plus the assets route when
// assets are configured, under basePath.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (Routes, error) {
	return RegisterRoutesWithOptions(mux, basePath, c.Options())
}

func validateSegments(ctx context.Context, opts Options, segments core.Segments) (core.State, error) {
	widget, err := core.New(ctx, formcontrol.New(""), opts.Widget...)
	if err != nil {
		return core.State{}, err
	}
	defer widget.Destroy()

	if err := widget.SetSegments(segments); err != nil {
		return core.State{}, err
	}
	return widget.Snapshot(), nil
}
