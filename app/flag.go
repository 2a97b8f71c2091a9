package app

import "github.com/urfave/cli/v2"

var (
	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only include tracks started after this time (e.g. '2 days ago' or '2024-03-09')",
	}

	untilFlag = &cli.StringFlag{
		Name:  "until",
		Usage: "Only include tracks started before this time",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Reporting period: all-time, today, yesterday, 7days, 30days or 365days",
		Value:   "all-time",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	filesFlag = &cli.BoolFlag{
		Name:  "files",
		Usage: "List the exported GPX files found in the track folder instead of the index",
	}

	removeFilesFlag = &cli.BoolFlag{
		Name:  "remove-files",
		Usage: "Also delete the exported GPX files",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Write debug output to the log file",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a track is saved",
	}

	cmdFlag = &cli.StringFlag{
		Name:  "cmd",
		Usage: "Execute an arbitrary command after each saved track. The file is passed in TRACKLOG_GPX",
	}

	logIntervalFlag = &cli.StringFlag{
		Name:    "log-interval",
		Aliases: []string{"i"},
		Usage:   "How often a point is recorded, e.g. 1s or 500ms (default: 1s)",
	}

	saveIntervalFlag = &cli.StringFlag{
		Name:  "save-interval",
		Usage: "How often the temporary logs are flushed to disk (default: 10s)",
	}

	categoryFlag = &cli.StringFlag{
		Name:    "category",
		Aliases: []string{"c"},
		Usage:   "Sub-folder the tracks are saved in (default: logs)",
	}

	nameFlag = &cli.StringFlag{
		Name:    "name",
		Aliases: []string{"n"},
		Usage:   "Prefix of the track name (default: log)",
	}

	askNameFlag = &cli.BoolFlag{
		Name:  "ask-name",
		Usage: "Prompt for the track name before recording",
	}

	unitsFlag = &cli.StringFlag{
		Name:  "units",
		Usage: "Display units: metric or imperial",
	}

	zoomFlag = &cli.IntFlag{
		Name:    "zoom",
		Aliases: []string{"z"},
		Usage:   "Initial zoom level of the trace view (0-20)",
	}

	replayFlag = &cli.StringFlag{
		Name:    "replay",
		Aliases: []string{"r"},
		Usage:   "Record positions replayed from a GPX file",
	}

	loopFlag = &cli.BoolFlag{
		Name:  "loop",
		Usage: "Start the replay over once it reaches the end",
	}

	fixedFlag = &cli.StringFlag{
		Name:  "fixed",
		Usage: "Record a fixed position given as lat,lon",
	}
)

// recordFlags are accepted by the default record action and the record
// command.
var recordFlags = []cli.Flag{
	logIntervalFlag,
	saveIntervalFlag,
	categoryFlag,
	nameFlag,
	askNameFlag,
	unitsFlag,
	zoomFlag,
	replayFlag,
	loopFlag,
	fixedFlag,
	cmdFlag,
	disableNotificationFlag,
}
