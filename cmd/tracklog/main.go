package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tracklog/app"
	"github.com/ayoisaiah/tracklog/internal/pathutil"
	"github.com/ayoisaiah/tracklog/internal/static"
)

func run(args []string) error {
	if err := pathutil.Initialize(); err != nil {
		return err
	}

	// the icon is optional, notifications work without it
	if err := static.Install(); err != nil {
		pterm.Warning.Printfln("unable to install static files: %v", err)
	}

	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
