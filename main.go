package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskpad/internal/commands"
	"github.com/colonyops/taskpad/internal/core/config"
	"github.com/colonyops/taskpad/internal/core/kv"
	"github.com/colonyops/taskpad/internal/core/logging"
	"github.com/colonyops/taskpad/internal/core/styles"
	"github.com/colonyops/taskpad/internal/core/task"
	"github.com/colonyops/taskpad/internal/store/jsonfile"
	"github.com/colonyops/taskpad/internal/store/sqlite"
	"github.com/colonyops/taskpad/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		taskApp   = &commands.App{}
		dbCloser  func() error
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "taskpad",
		Usage:     "A single-screen to-do list for your terminal",
		UsageText: "taskpad [global options] command [command options]",
		Description: `Taskpad keeps a short list of tasks in a single screen. Every change
is written back to local storage, so the list survives restarts.

Run 'taskpad' with no arguments to open the interactive list.
Run 'taskpad add <text>' to capture a task without leaving your shell.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKPAD_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/taskpad.log)",
				Sources:     cli.EnvVars("TASKPAD_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKPAD_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASKPAD_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/taskpad.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "taskpad.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			var backend kv.KV
			switch cfg.Storage.Backend {
			case config.BackendSQLite:
				db, err := sqlite.Open(cfg.DataDir)
				if err != nil {
					return ctx, fmt.Errorf("open database: %w", err)
				}
				dbCloser = db.Close
				backend = db
			default:
				if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
					return ctx, fmt.Errorf("create data dir: %w", err)
				}
				backend = jsonfile.New(cfg.DataDir)
			}

			store := task.NewStore(backend, logging.Component("store"))
			store.Load(ctx)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			taskApp.Config = cfg
			taskApp.Tasks = store

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Wait for pending write-backs before tearing down storage
			if taskApp.Tasks != nil {
				taskApp.Tasks.Close()
			}

			if dbCloser != nil {
				if err := dbCloser(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, taskApp)

	app = commands.NewTaskCmd(flags, taskApp).Register(app)

	// Open the TUI when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'taskpad --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
