package dateinput

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/robinjoseph08/golib/logger"

	core "github.com/goliatone/go-dateinput/pkg/dateinput"
)

const (
	defaultRoutePath  = "/api/date-input/validate"
	defaultAssetsPath = "/assets/date-input/"
)

type GuardFunc func(r *http.Request) error

// Renderer turns a widget snapshot into a response body.
type Renderer interface {
	Render(ctx context.Context, state core.State) ([]byte, error)
	ContentType() string
}

type Options struct {
	RoutePath string
	Guard     GuardFunc
	// Widget is applied to every per-request widget.
	Widget   []core.OptionFn
	Renderer Renderer
	// Assets is served under AssetsPath when set.
	Assets     fs.FS
	AssetsPath string
	// Logger is attached to the request context when set. Otherwise the
	// logger already carried by the request context is used.
	Logger *logger.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:  defaultRoutePath,
		AssetsPath: defaultAssetsPath,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.AssetsPath == "" {
		opts.AssetsPath = defaultAssetsPath
	}
	if opts.Widget != nil {
		opts.Widget = append([]core.OptionFn{}, opts.Widget...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithWidgetOptions appends widget options used for every request.
func WithWidgetOptions(fns ...core.OptionFn) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Widget = append(o.Widget, fns...)
	}
}

func WithRenderer(renderer Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

// WithAssets serves files, typically vanilla.AssetsFS(), next to the
// validation route.
func WithAssets(files fs.FS) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Assets = files
	}
}

func WithAssetsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AssetsPath = path
	}
}

func WithLogger(log logger.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = &log
	}
}
