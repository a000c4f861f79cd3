package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"clientdesk/internal/app"
	"clientdesk/internal/config"
	"clientdesk/internal/logging"
)

var (
	home     string
	cfgPath  string
	apiURL   string
	logLevel string

	settings  *config.Config
	wire      *app.Wire
	logCloser io.Closer
)

// Execute runs the CLI.
func Execute() error {
	err := newRootCmd().Execute()
	return errors.Join(err, closeAll())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "clientdesk",
		Short:        "Manage clients and your shortlist of selected clients",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := config.DefaultHome()
				if err != nil {
					return err
				}
				home = dir
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			if err := config.LoadDotEnv(""); err != nil {
				return err
			}

			path := cfgPath
			if path == "" {
				path = filepath.Join(home, "config.toml")
			} else if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("config file: %w", err)
			}
			cfg, err := config.Load(path, home)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("home") {
				cfg.SetHome(home)
			}
			if apiURL != "" {
				cfg.API.BaseURL = apiURL
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			settings = cfg

			log, closer, err := logging.New(logging.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: cfg.Log.Output,
				File:   cfg.Log.File,
			})
			if err != nil {
				return err
			}
			logCloser = closer

			w, err := app.NewWire(cmd.Context(), app.Config{Settings: cfg, Log: log})
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default $CLIENTDESK_HOME or ~/.clientdesk)")
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default <home>/config.toml)")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "backend base URL")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		loginCmd(), logoutCmd(), whoamiCmd(),
		listCmd(), createCmd(), updateCmd(), deleteCmd(),
		selectCmd(), unselectCmd(), selectedCmd(), clearSelectedCmd(),
		tuiCmd(),
	)
	return root
}

func closeAll() error {
	var errs []error
	if wire != nil {
		errs = append(errs, wire.Close())
		wire = nil
	}
	if logCloser != nil {
		errs = append(errs, logCloser.Close())
		logCloser = nil
	}
	return errors.Join(errs...)
}
