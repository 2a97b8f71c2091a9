package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tracklog/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the tracklog app instance.
func Get() *cli.App {
	tracklogApp := &cli.App{
		Name: "tracklog",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		tracklog records GPS tracks from the command-line. Points are written to
		two redundant temporary logs while recording and exported to GPX when
		the recording stops. Logs left behind by a crash are recovered on the
		next start.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "record",
				Usage:  "Start recording a track (default command)",
				Flags:  recordFlags,
				Action: recordAction,
			},
			{
				Name:   "recover",
				Usage:  "Export the unsaved logs left behind by an unclean shutdown",
				Flags:  []cli.Flag{categoryFlag},
				Action: recoverAction,
			},
			{
				Name:  "list",
				Usage: "List saved tracks. Defaults to all tracks",
				Flags: []cli.Flag{
					sinceFlag,
					untilFlag,
					periodFlag,
					jsonFlag,
					filesFlag,
					categoryFlag,
				},
				Action: listAction,
			},
			{
				Name:      "show",
				Usage:     "Show the details of a saved track",
				ArgsUsage: "<name or id>",
				Flags:     []cli.Flag{jsonFlag},
				Action:    showAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete one or more saved tracks from the index",
				ArgsUsage: "<name or id>...",
				Flags:     []cli.Flag{removeFilesFlag},
				Action:    deleteAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the running recording",
				Action: statusAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: append([]cli.Flag{
			noColorFlag,
			debugFlag,
		}, recordFlags...),
		Action: recordAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return tracklogApp
}
