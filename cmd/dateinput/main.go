package main

import (
	"os"

	"github.com/robinjoseph08/golib/logger"
)

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		logger.New().Err(err).Fatal("dateinput error")
	}
}
