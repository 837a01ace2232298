package dateinput

import (
	"fmt"
	"net/http"
	"path"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes lists the patterns registered on a Mux. Assets is empty when no
// asset bundle was configured.
type Routes struct {
	Validate string
	Assets   string
}

// MountPath returns the full validation route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the component handlers under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers the validation handler and, when
// opts.Assets is set, a static file handler for the widget stylesheet.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("dateinput: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	routes := Routes{Validate: mountPath(basePath, opts.RoutePath)}
	mux.Handle(routes.Validate, HandlerWithOptions(opts))

	if opts.Assets != nil {
		routes.Assets = mountPath(basePath, opts.AssetsPath)
		if !strings.HasSuffix(routes.Assets, "/") {
			routes.Assets += "/"
		}
		mux.Handle(routes.Assets, http.StripPrefix(routes.Assets, http.FileServer(http.FS(opts.Assets))))
	}
	return routes, nil
}

func mountPath(basePath, routePath string) string {
	return path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(routePath))
}
