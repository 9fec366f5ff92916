package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/actionlog"
	"github.com/aretw0/actionlog/internal/platform"
	"github.com/aretw0/actionlog/pkg/core"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	verbose    bool
	configFile string
	logFile    string
	locking    bool

	logger *slog.Logger
	cfg    platform.Config
	svc    *core.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "actionlog",
		Short: "A personal log of timestamped actions",
		Long: `actionlog records short notes about what you did, when, and under which tags.
Entries live in a single JSON Lines file and are addressed by their line number.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
			slog.SetDefault(a.logger)

			cfg, err := platform.LoadConfig(a.configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("file") {
				cfg.LogFile = a.logFile
			}
			if cmd.Flags().Changed("lock") {
				cfg.Locking = a.locking
			}
			a.cfg = cfg

			if cfg.Source == "" {
				a.logger.Debug("no config file found, using defaults")
			} else {
				a.logger.Debug("loaded config", "file", cfg.Source)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&a.configFile, "config", "", "Config file (default <user config dir>/actionlog/config.toml)")
	flags.StringVarP(&a.logFile, "file", "f", "", "Log file (overrides config and ACTIONLOG_LOG_FILE)")
	flags.BoolVar(&a.locking, "lock", false, "Guard writes with an advisory lock file")

	cmd.AddCommand(
		newLogCmd(a),
		newListCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newCopyCmd(a),
		newArchiveCmd(a),
		newTagsCmd(a),
		newCountCmd(a),
		newWatchCmd(a),
		newStatusCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)

	return cmd
}

// service opens the log configured for this invocation.
func (a *app) service() (*core.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	opts := append(a.cfg.Options(), actionlog.WithLogger(a.logger))
	svc, err := actionlog.New(a.cfg.LogFile, opts...)
	if err != nil {
		return nil, err
	}
	a.svc = svc
	return svc, nil
}
