// Package tui provides the interactive terminal widget for memo.
//
// The code is split into:
// - executor.go: program lifecycle
// - model.go: state
// - update.go: key handling and store calls
// - view.go: rendering
// - keys.go: key bindings and help
// - styles.go: colors and styles
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/memo/pkg/logging"
	"github.com/entrhq/memo/pkg/memo"
)

// Options configure what the widget shows.
type Options struct {
	Title         string
	Version       string
	ConfirmDelete bool
	DateFormat    string // Go reference layout for memo timestamps
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Memo"
	}
	if o.DateFormat == "" {
		o.DateFormat = "2006-01-02 15:04"
	}
	return o
}

// Executor runs the memo widget over a store.
type Executor struct {
	store   *memo.Store
	log     *logging.Logger
	opts    Options
	program *tea.Program
}

// NewExecutor creates a TUI executor for store.
func NewExecutor(store *memo.Store, log *logging.Logger, opts Options) *Executor {
	if log == nil {
		log = logging.Discard()
	}
	return &Executor{
		store: store,
		log:   log,
		opts:  opts,
	}
}

// Run starts the widget and blocks until the user exits or ctx is done.
func (e *Executor) Run(ctx context.Context) error {
	e.log.Infof("TUI starting with %d memos", e.store.Len())

	m := newModel(e.store, e.log, e.opts)

	e.program = tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := e.program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			e.log.Infof("TUI stopped: %v", ctx.Err())
			return nil
		}
		return fmt.Errorf("failed to run TUI program: %w", err)
	}

	e.log.Infof("TUI exited with %d memos", e.store.Len())
	return nil
}
