package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/cli/backups"
	"github.com/julianstephens/habitual/internal/cli/data"
	"github.com/julianstephens/habitual/internal/cli/habits"
	"github.com/julianstephens/habitual/internal/cli/insights"
	"github.com/julianstephens/habitual/internal/cli/system"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml and logs." type:"path" default:"${config_dir}"`
	Storage   string `help:"Storage target overriding the config: a .db or .json path, a PostgreSQL connection string without password, or 'keyring'."`
	Debug     bool   `help:"Log debug output to stderr."`

	Init   system.InitCmd   `cmd:"" help:"Initialize habitual storage and config."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve  system.ServeCmd  `cmd:"" help:"Serve the JSON API."`
	Remind system.RemindCmd `cmd:"" help:"Deliver reminders due this minute."`

	Habit   habits.HabitCmd     `cmd:"" help:"Manage habits."`
	Toggle  habits.ToggleCmd    `cmd:"" help:"Mark or unmark a habit for a day."`
	Today   habits.TodayCmd     `cmd:"" help:"Show habits due today."`
	Stats   insights.StatsCmd   `cmd:"" help:"Show completion rates and streaks."`
	Week    insights.WeekCmd    `cmd:"" help:"Show this week's summary."`
	Heatmap insights.HeatmapCmd `cmd:"" help:"Show the completion heatmap."`

	Export  data.ExportCmd  `cmd:"" help:"Export habits and logs as JSON."`
	Import  data.ImportCmd  `cmd:"" help:"Replace all data with an export."`
	Example data.ExampleCmd `cmd:"" help:"Manage sample habits."`
	Clear   data.ClearCmd   `cmd:"" help:"Delete every habit."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, stats and reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"config_dir": constants.DefaultConfigDir,
		},
	)

	configDir, err := storage.ExpandPath(CLI.ConfigDir)
	if err != nil {
		errors.Fatal(err)
	}
	cfg, err := config.Load(configDir)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug || cfg.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatal(fmt.Errorf("failed to initialize logger: %w", err))
	}

	target := cfg.Storage
	if CLI.Storage != "" {
		target = CLI.Storage
	}
	store, err := storage.New(target)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	loc, err := cfg.Location()
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:    store,
		Config:   cfg,
		Sink:     notifier.LogSink{},
		Location: loc,
	}
	logger.Debug("Running command", "command", ctx.Command(), "storage", store.GetConfigPath())

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
