// Package main provides memo, a terminal memo pad. Without a subcommand it
// opens the interactive widget; the subcommands make it scriptable.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/entrhq/memo/pkg/config"
	"github.com/entrhq/memo/pkg/executor/cli"
	"github.com/entrhq/memo/pkg/executor/tui"
	"github.com/entrhq/memo/pkg/logging"
	"github.com/entrhq/memo/pkg/memo"
	"github.com/entrhq/memo/pkg/slot"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

// newLogger opens the session logger under dataDir. Tests replace it.
var newLogger = func(dataDir string) *logging.Logger {
	logging.SetLogDirectory(filepath.Join(dataDir, "logs"))
	l, err := logging.NewLogger("memo")
	if err != nil {
		// l is the stderr fallback
		l.Warnf("Session log unavailable: %v", err)
	}
	return l
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

// app holds what every command shares: the flags and, once opened, the
// resolved settings and the store.
type app struct {
	over  config.Overrides
	plain bool

	settings config.Settings
	slot     slot.Slot
	store    *memo.Store
	log      *logging.Logger
}

// NewRootCmd constructs the root command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "memo",
		Short:         "Write, edit and delete short memos in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func() error {
				if a.plain {
					return cli.NewExecutor(a.store,
						cli.WithReader(cmd.InOrStdin()),
						cli.WithWriter(cmd.OutOrStdout()),
						cli.WithLogger(a.log),
						cli.WithTitle(a.settings.Title),
						cli.WithConfirmDelete(a.settings.ConfirmDelete),
						cli.WithDateFormat(a.settings.DateFormat),
					).Run(cmd.Context())
				}

				return tui.NewExecutor(a.store, a.log, tui.Options{
					Title:         a.settings.Title,
					Version:       a.settings.Version,
					ConfirmDelete: a.settings.ConfirmDelete,
					DateFormat:    a.settings.DateFormat,
				}).Run(cmd.Context())
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.over.Backend, "backend", "", "Storage backend: memory, file or sqlite (env MEMO_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&a.over.DataDir, "data-dir", "", "Directory for settings, logs and memo files (env MEMO_DATA_DIR, default ~/.memo)")
	rootCmd.PersistentFlags().StringVar(&a.over.Key, "key", "", "Slot key memos are stored under (env MEMO_STORAGE_KEY)")
	rootCmd.Flags().BoolVar(&a.plain, "plain", false, "Use the line-oriented prompt instead of the full-screen widget")

	// Sub-commands
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newClearCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// withStore opens the settings, logger, slot and store, runs fn and
// releases them again. Failures to release are reported on the command's
// error stream.
func (a *app) withStore(cmd *cobra.Command, fn func() error) error {
	defer func() {
		if err := a.close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}()
	if err := a.open(); err != nil {
		return err
	}
	return fn()
}

func (a *app) open() error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	dataDir, err := config.ResolveDataDir(a.over, env)
	if err != nil {
		return err
	}
	if err := config.Initialize(filepath.Join(dataDir, "config.yaml")); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings, err := config.Resolve(a.over, env, version)
	if err != nil {
		return err
	}
	a.settings = settings
	a.log = newLogger(settings.DataDir)
	a.log.Infof("Opening %s slot %q under key %q", settings.Backend, settings.SlotPath, settings.Key)

	s, err := slot.Open(settings.Backend, settings.SlotPath)
	if err != nil {
		a.log.Errorf("Failed to open slot: %v", err)
		return err
	}
	a.slot = s

	store, err := memo.Open(s, settings.Key, memo.WithLogger(a.log))
	if err != nil {
		return err
	}
	a.store = store
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.slot != nil {
		if err := slot.Close(a.slot); err != nil {
			a.log.Warnf("Failed to close slot: %v", err)
			errs = append(errs, fmt.Errorf("failed to close slot: %w", err))
		}
	}
	if a.log != nil {
		if err := a.log.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close session log: %w", err))
		}
	}
	a.slot, a.store, a.log = nil, nil, nil
	return errors.Join(errs...)
}
