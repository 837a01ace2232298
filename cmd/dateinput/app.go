package main

import (
	"context"
	"io"

	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-dateinput/pkg/config"
)

// runtime carries what the Before hook resolved for the command actions.
type runtime struct {
	cfg *config.Config
	log logger.Logger
	out io.Writer
}

func (rt *runtime) context(c *cli.Context) context.Context {
	return rt.log.WithContext(c.Context)
}

func newApp(out io.Writer) *cli.App {
	rt := &runtime{out: out}

	return &cli.App{
		Name:        "dateinput",
		Usage:       "validate, prompt for and render segmented dates",
		Description: "Day, month and year entry with calendar and bound checks",
		Writer:      out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"DATEINPUT_CONFIG"},
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv file to load before reading the environment (repeatable)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override log level (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(config.LoadOptions{
				Path:     c.String("config"),
				EnvFiles: c.StringSlice("env-file"),
			})
			if err != nil {
				return err
			}
			if level := c.String("log-level"); level != "" {
				cfg.Log.Level = level
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			rt.cfg = cfg
			rt.log = logger.NewWithLevel(cfg.Log.Level)
			return nil
		},
		Commands: []*cli.Command{
			promptCommand(rt),
			checkCommand(rt),
			renderCommand(rt),
			serveCommand(rt),
			openapiCommand(rt),
		},
	}
}
