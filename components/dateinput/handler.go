package dateinput

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/robinjoseph08/golib/logger"

	core "github.com/goliatone/go-dateinput/pkg/dateinput"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Request holds the decoded segment parameters.
type Request struct {
	Day    string `schema:"day" mod:"trim" validate:"omitempty,number,max=2"`
	Month  string `schema:"month" mod:"trim" validate:"omitempty,number,max=2"`
	Year   string `schema:"year" mod:"trim" validate:"omitempty,number,max=4"`
	Format string `schema:"format" mod:"trim,lcase" validate:"omitempty,oneof=json html"`
}

// Response is the JSON body written by the handler.
type Response struct {
	Value  string            `json:"value"`
	Valid  bool              `json:"valid"`
	Errors []core.ErrorEntry `json:"errors"`
}

type binder struct {
	decoder  *schema.Decoder
	conform  *mold.Transformer
	validate *validator.Validate
}

var (
	binderOnce    sync.Once
	defaultBinder *binder
)

func requestBinder() *binder {
	binderOnce.Do(func() {
		decoder := schema.NewDecoder()
		decoder.SetAliasTag("schema")
		decoder.IgnoreUnknownKeys(true)
		defaultBinder = &binder{
			decoder:  decoder,
			conform:  modifiers.New(),
			validate: validator.New(),
		}
	})
	return defaultBinder
}

func (b *binder) bind(r *http.Request) (Request, error) {
	var req Request
	if err := r.ParseForm(); err != nil {
		return req, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("parse form: %w", err)}
	}
	if err := b.decoder.Decode(&req, r.Form); err != nil {
		return req, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("decode: %w", err)}
	}
	if err := b.conform.Struct(r.Context(), &req); err != nil {
		return req, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("normalize: %w", err)}
	}
	if err := b.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			err = fmt.Errorf("%s failed %q", fe.Field(), fe.Tag())
		}
		return req, StatusError{Code: http.StatusBadRequest, Err: err}
	}
	return req, nil
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		if opts.Logger != nil {
			ctx = opts.Logger.WithContext(ctx)
		}
		log := logger.FromContext(ctx)

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		req, err := requestBinder().bind(r.WithContext(ctx))
		if err != nil {
			log.Err(err).Warn("invalid date input request")
			writeError(w, err)
			return
		}

		state, err := validateSegments(ctx, opts, core.Segments{Day: req.Day, Month: req.Month, Year: req.Year})
		if errors.Is(err, core.ErrDestroyed) {
			log.Err(err).Warn("date input closed before validation")
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		if err != nil {
			log.Err(err).Error("failed to build date input")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		if !state.Valid() {
			status = http.StatusUnprocessableEntity
		}
		log.Debug("date input validated", logger.Data{"value": state.Value, "errors": len(state.Errors)})

		if req.Format == "html" && opts.Renderer != nil {
			body, err := opts.Renderer.Render(ctx, state)
			if err != nil {
				log.Err(err).Error("failed to render date input")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", opts.Renderer.ContentType())
			w.WriteHeader(status)
			_, _ = w.Write(body)
			return
		}

		errs := state.Errors
		if errs == nil {
			errs = []core.ErrorEntry{}
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(Response{Value: state.Value, Valid: state.Valid(), Errors: errs})
	})
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, err.Error(), code)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
