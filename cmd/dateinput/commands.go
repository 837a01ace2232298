package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	component "github.com/goliatone/go-dateinput/components/dateinput"
	"github.com/goliatone/go-dateinput/pkg/dateinput"
	"github.com/goliatone/go-dateinput/pkg/formcontrol"
	"github.com/goliatone/go-dateinput/pkg/openapi"
	"github.com/goliatone/go-dateinput/pkg/renderers/tui"
	"github.com/goliatone/go-dateinput/pkg/renderers/vanilla"
)

func segmentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "day", Usage: "day segment (DD)"},
		&cli.StringFlag{Name: "month", Usage: "month segment (MM)"},
		&cli.StringFlag{Name: "year", Usage: "year segment (YYYY)"},
	}
}

func formatFlag(value string) cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: "output format: json, value or pretty",
		Value: value,
	}
}

// evaluate runs the segments from c through a fresh widget.
func (rt *runtime) evaluate(ctx context.Context, c *cli.Context) (*dateinput.Widget, dateinput.State, error) {
	w, err := dateinput.New(ctx, formcontrol.New(""), rt.cfg.Widget.Options()...)
	if err != nil {
		return nil, dateinput.State{}, err
	}
	err = w.SetSegments(dateinput.Segments{
		Day:   c.String("day"),
		Month: c.String("month"),
		Year:  c.String("year"),
	})
	if err != nil {
		w.Destroy()
		return nil, dateinput.State{}, err
	}
	return w, w.Snapshot(), nil
}

func promptCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "prompt",
		Usage: "ask for a date in the terminal",
		Flags: []cli.Flag{formatFlag(string(tui.OutputFormatValue))},
		Action: func(c *cli.Context) error {
			ctx := rt.context(c)
			w, err := dateinput.New(ctx, formcontrol.New(""), rt.cfg.Widget.Options()...)
			if err != nil {
				return err
			}
			defer w.Destroy()

			session, err := tui.NewSession(w,
				tui.WithPromptDriver(tui.NewSurveyDriver(rt.out)),
				tui.WithOutputFormat(tui.OutputFormat(c.String("format"))),
				tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
			)
			if err != nil {
				return err
			}
			if _, err := session.Run(ctx); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					return cli.Exit("aborted", 130)
				}
				if errors.Is(err, tui.ErrInvalidDate) {
					return cli.Exit(err.Error(), 1)
				}
				return err
			}
			return rt.write(session, w.Snapshot())
		},
	}
}

func checkCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "validate a date given as segments, exits 1 when invalid",
		Flags: append(segmentFlags(), formatFlag(string(tui.OutputFormatPrettyText))),
		Action: func(c *cli.Context) error {
			ctx := rt.context(c)
			w, state, err := rt.evaluate(ctx, c)
			if err != nil {
				return err
			}
			defer w.Destroy()

			session, err := tui.NewSession(w, tui.WithOutputFormat(tui.OutputFormat(c.String("format"))))
			if err != nil {
				return err
			}
			if err := rt.write(session, state); err != nil {
				return err
			}
			if !state.Valid() {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func renderCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render the widget as an HTML fragment",
		Flags: append(segmentFlags(),
			&cli.StringFlag{Name: "field", Usage: "form field name", Value: "date"},
			&cli.BoolFlag{Name: "inline-styles", Usage: "embed the default stylesheet"},
			&cli.StringFlag{Name: "templates", Usage: "directory with an alternate templates/dateinput.tpl"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (stdout if empty)"},
		),
		Action: func(c *cli.Context) error {
			ctx := rt.context(c)
			w, state, err := rt.evaluate(ctx, c)
			if err != nil {
				return err
			}
			defer w.Destroy()

			renderer, err := vanilla.New(
				vanilla.WithFieldName(c.String("field")),
				vanilla.WithInlineStyles(c.Bool("inline-styles")),
				vanilla.WithTemplatesDir(c.String("templates")),
			)
			if err != nil {
				return err
			}
			html, err := renderer.Render(ctx, state)
			if err != nil {
				return err
			}

			if output := c.String("output"); output != "" {
				if err := os.WriteFile(output, html, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				logger.FromContext(ctx).Info("widget written", logger.Data{"path": output})
				return nil
			}
			_, err = rt.out.Write(html)
			return err
		},
	}
}

func serveCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the validation endpoint over HTTP",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(rt.context(c), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log := logger.FromContext(ctx)

			renderer, err := vanilla.New()
			if err != nil {
				return err
			}
			mux := http.NewServeMux()
			routes, err := component.RegisterRoutes(mux, rt.cfg.Server.BasePath,
				component.WithWidgetOptions(rt.cfg.Widget.Options()...),
				component.WithRenderer(renderer),
				component.WithAssets(vanilla.AssetsFS()),
				component.WithLogger(rt.log),
			)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:         rt.cfg.Server.Addr,
				Handler:      mux,
				ReadTimeout:  rt.cfg.Server.ReadTimeout,
				WriteTimeout: rt.cfg.Server.WriteTimeout,
			}

			group, ctx := errgroup.WithContext(ctx)
			group.Go(func() error {
				log.Info("server started", logger.Data{
					"addr":     server.Addr,
					"validate": routes.Validate,
					"assets":   routes.Assets,
				})
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			group.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				log.Info("server stopping")
				return server.Shutdown(shutdownCtx)
			})
			return group.Wait()
		},
	}
}

func openapiCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "openapi",
		Usage:     "list date widgets declared in an OpenAPI document",
		ArgsUsage: "<file or URL>",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "timeout", Usage: "timeout for remote documents", Value: 10 * time.Second},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected one document source", 2)
			}
			ctx := rt.context(c)

			src, err := openapi.ParseSource(c.Args().First())
			if err != nil {
				return err
			}
			raw, err := openapi.Load(ctx, src, openapi.WithHTTPFallback(c.Duration("timeout")))
			if err != nil {
				return err
			}
			widgets, err := openapi.WidgetsFromDocument(ctx, raw)
			if err != nil {
				return err
			}
			logger.FromContext(ctx).Debug("widgets discovered", logger.Data{"count": len(widgets)})

			enc := yaml.NewEncoder(rt.out)
			enc.SetIndent(2)
			if err := enc.Encode(widgets); err != nil {
				return fmt.Errorf("encode widgets: %w", err)
			}
			return enc.Close()
		},
	}
}

func (rt *runtime) write(session *tui.Session, state dateinput.State) error {
	data, err := session.Encode(state)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(rt.out, string(data))
	return err
}
