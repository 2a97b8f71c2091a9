package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/tracklog/dashboard"
	"github.com/ayoisaiah/tracklog/internal/config"
	"github.com/ayoisaiah/tracklog/internal/location"
	"github.com/ayoisaiah/tracklog/internal/notify"
	"github.com/ayoisaiah/tracklog/internal/osutil"
	"github.com/ayoisaiah/tracklog/internal/pathutil"
	"github.com/ayoisaiah/tracklog/internal/projection"
	"github.com/ayoisaiah/tracklog/internal/tracklog"
	"github.com/ayoisaiah/tracklog/internal/ui"
	"github.com/ayoisaiah/tracklog/report"
	"github.com/ayoisaiah/tracklog/store"
)

const (
	envNoColor         = "NO_COLOR"
	envTracklogNoColor = "TRACKLOG_NO_COLOR"

	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

var errNoPositionSource = errors.New(
	"no position source: pass --fixed lat,lon or --replay <file.gpx>",
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// loadConfig builds the configuration from the config file and the
// command-line, prompting for the basics on first run.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	configPath := pathutil.ConfigFilePath()

	cfg, err := config.New(
		config.WithPromptConfig(configPath),
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme
	ui.Imperial = cfg.Settings.Units == config.UnitsImperial

	if cfg.CLI.Debug {
		slog.Debug("config loaded", slog.String("config", spew.Sdump(cfg)))
	}

	return cfg, nil
}

// positionSource returns the location provider selected on the
// command-line. done reports when a replay has run out of points.
func positionSource(
	cfg *config.Config,
) (provider tracklog.LocationProvider, done func() bool, err error) {
	if cfg.CLI.Replay != "" {
		r, err := location.ReplayFile(cfg.CLI.Replay, cfg.CLI.Loop)
		if err != nil {
			return nil, nil, err
		}

		return r, r.Done, nil
	}

	if len(cfg.CLI.Fixed) == 2 {
		return location.Fixed{Lat: cfg.CLI.Fixed[0], Lon: cfg.CLI.Fixed[1]}, nil, nil
	}

	return nil, nil, errNoPositionSource
}

// observers wires the listeners that act on finished exports.
type observers struct {
	indexer *indexer
	desktop *notify.Desktop
	hook    *notify.Hook
}

func registerObservers(
	hub *tracklog.Hub,
	db store.DB,
	cfg *config.Config,
) (*observers, error) {
	o := &observers{
		indexer: newIndexer(db, cfg.Settings.Category),
	}

	hub.Register(o.indexer)

	if cfg.Notifications.Enabled {
		o.desktop = notify.NewDesktop()
		hub.Register(o.desktop)
	}

	hook, err := notify.NewHook(cfg.Settings.Cmd)
	if err != nil {
		return nil, err
	}

	if hook != nil {
		o.hook = hook
		hub.Register(hook)
	}

	return o, nil
}

// wait blocks until every observer has finished its pending work.
func (o *observers) wait() {
	o.indexer.Wait()

	if o.desktop != nil {
		o.desktop.Wait()
	}

	if o.hook != nil {
		o.hook.Wait()
	}
}

// recordAction recovers unsaved logs, then records a new track until the
// user stops it.
func recordAction(ctx *cli.Context) (err error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	provider, done, err := positionSource(cfg)
	if err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	proj := projection.NewMercator(cfg.Display.Zoom)

	rec, err := tracklog.NewRecorder(tracklog.Options{
		Location:       provider,
		Projector:      proj,
		Folder:         cfg.TrackFolder(pathutil.TracksDir()),
		NamePrefix:     cfg.Settings.NamePrefix,
		UpdateInterval: cfg.Settings.LogInterval,
		SaveInterval:   cfg.Settings.SaveInterval,
	})
	if err != nil {
		return err
	}

	obs, err := registerObservers(rec.Hub(), db, cfg)
	if err != nil {
		return err
	}

	defer obs.wait()

	rep, err := rec.Recover()
	report.Recovery(rep)

	if err != nil {
		return err
	}

	prefix := cfg.Settings.NamePrefix
	if cfg.CLI.AskName {
		prefix, err = config.AskName(prefix)
		if err != nil {
			return err
		}
	}

	cfg.Intervals.OnChange(func(kind config.IntervalKind, d time.Duration) {
		if kind == config.SaveInterval {
			rec.SetSaveInterval(d)
			return
		}

		rec.SetUpdateInterval(d)
	})

	config.WatchIntervals(cfg.CLI.ConfigPath, cfg.Intervals)

	name, err := rec.Start(prefix)
	if err != nil {
		return err
	}

	slog.Info("recording started", slog.String("name", name))

	sigCtx, stop := signal.NotifyContext(
		ctx.Context,
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	d := dashboard.New(dashboard.Options{
		Recorder:   rec,
		Projection: proj,
		Done:       done,
		Style:      dashboard.NewStyle(cfg.Display.DarkTheme),
		StatusPath: pathutil.StatusFilePath(),
		Prefix:     prefix,
	})

	_, runErr := tea.NewProgram(d, tea.WithContext(sigCtx)).Run()
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		slog.Error("dashboard exited", slog.Any("error", runErr))
	}

	// a signal ends the program before the dashboard stops the recording
	exported, closeErr := rec.Close()
	if exported == nil {
		exported = d.Exported
	}

	report.Exported(exported)

	if d.StopErr != nil {
		return d.StopErr
	}

	return closeErr
}

// recoverAction exports orphaned logs without starting a new recording.
func recoverAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	rec, err := tracklog.NewRecorder(tracklog.Options{
		Location: location.Fixed{},
		Folder:   cfg.TrackFolder(pathutil.TracksDir()),
	})
	if err != nil {
		return err
	}

	defer rec.Close()

	obs, err := registerObservers(rec.Hub(), db, cfg)
	if err != nil {
		return err
	}

	defer obs.wait()

	rep, err := rec.Recover()
	if err != nil {
		return err
	}

	if len(rep.Results) == 0 {
		pterm.Info.Printfln("no unsaved tracklogs in %s", rep.Folder)
		return nil
	}

	report.Recovery(rep)

	return nil
}

// editConfigAction handles the edit-config command which opens the tracklog
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// setupLogger sends structured logs to a rotated file so that they never
// interfere with the dashboard.
func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	w := &lumberjack.Logger{
		Filename:   pathutil.LogFilePath(),
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/tracklog/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if TRACKLOG_NO_COLOR is set
	if _, exists := os.LookupEnv(envTracklogNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	setupLogger(ctx.Bool("debug"))

	slog.Debug("tracklog starting", slog.String("args", fmt.Sprint(os.Args)))

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting tracklog")

	return nil
}
