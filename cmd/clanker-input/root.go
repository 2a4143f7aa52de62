package main

import (
	"github.com/spf13/cobra"
	"github.com/ziggle-dev/clanker-input/internal/ask"
	"github.com/ziggle-dev/clanker-input/internal/color"
	"github.com/ziggle-dev/clanker-input/internal/config"
	"github.com/ziggle-dev/clanker-input/internal/logging"
	"github.com/ziggle-dev/clanker-input/internal/metrics"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "clanker-input",
		Short: "Ask the user for input through native dialogs",
		Long: `clanker-input asks a person for one answer, or several in a row, using the
best native dialog on the host: AppleScript on macOS, PowerShell on Windows,
zenity or kdialog on Linux, and the terminal when nothing graphical is there.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := color.Validate(a.colorMode); err != nil {
				return err
			}
			color.ConfigureColorProfile(a.colorMode)
			return nil
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/clanker-input/config.yaml)")
	root.PersistentFlags().StringVar(&a.colorMode, "color", color.Auto, "Control color output (auto, always, never)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level written to stderr (debug, info, warn, error)")

	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			defaultHelp(cmd, args)
			return
		}
		color.ConfigureColorProfile(a.colorMode)
		printHelp(cmd.OutOrStdout(), a.colorMode)
	})

	root.AddCommand(
		newAskCmd(a),
		newMCPCmd(a),
		newSchemaCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger, metrics and service.
func (a *app) setup() (*ask.Service, config.Config, *logging.Logger, *metrics.Metrics, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, config.Config{}, nil, nil, err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, config.Config{}, nil, nil, err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	log, err := logging.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, config.Config{}, nil, nil, err
	}
	if cfg.Path != "" {
		log.Debug("loaded config", "path", cfg.Path)
	}

	m := metrics.New()
	svc, err := ask.Build(ask.Options{
		Config:   cfg,
		Log:      log,
		Metrics:  m,
		Runner:   a.runner,
		Console:  a.console,
		Platform: a.platform,
	})
	if err != nil {
		return nil, config.Config{}, nil, nil, err
	}
	return svc, cfg, log, m, nil
}
