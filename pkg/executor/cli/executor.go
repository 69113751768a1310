// Package cli provides a line-oriented executor for memo, for terminals
// where the full-screen widget is unwanted.
//
// Example usage:
//
//	store, _ := memo.Open(slot.NewMemory(), "memos")
//	executor := cli.NewExecutor(store,
//	    cli.WithConfirmDelete(true),
//	)
//	if err := executor.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/entrhq/memo/pkg/logging"
	"github.com/entrhq/memo/pkg/memo"
)

const helpText = `Commands:
  add <text>         add a memo
  list               show all memos, newest first
  find <glob>        show memos matching a glob, e.g. *milk*
  edit <id> <text>   replace the content of a memo
  rm <id>            delete a memo
  clear              delete every memo
  help               show this help
  quit               exit`

// Executor reads commands from a reader and applies them to a store.
type Executor struct {
	store  *memo.Store
	log    *logging.Logger
	reader *bufio.Reader
	writer io.Writer

	// Display options
	title         string
	confirmDelete bool
	dateFormat    string
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithWriter sets a custom output writer (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithReader sets a custom input reader (default is os.Stdin).
func WithReader(r io.Reader) ExecutorOption {
	return func(e *Executor) {
		e.reader = bufio.NewReader(r)
	}
}

// WithLogger sets the logger for store failures.
func WithLogger(l *logging.Logger) ExecutorOption {
	return func(e *Executor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTitle sets the banner printed on start.
func WithTitle(title string) ExecutorOption {
	return func(e *Executor) {
		if title != "" {
			e.title = title
		}
	}
}

// WithConfirmDelete makes rm and clear ask before deleting.
func WithConfirmDelete(confirm bool) ExecutorOption {
	return func(e *Executor) {
		e.confirmDelete = confirm
	}
}

// WithDateFormat sets the layout memo timestamps are printed with.
func WithDateFormat(layout string) ExecutorOption {
	return func(e *Executor) {
		if layout != "" {
			e.dateFormat = layout
		}
	}
}

// NewExecutor creates a new line executor for store.
func NewExecutor(store *memo.Store, opts ...ExecutorOption) *Executor {
	e := &Executor{
		store:      store,
		log:        logging.Discard(),
		reader:     bufio.NewReader(os.Stdin),
		writer:     os.Stdout,
		title:      "Memo",
		dateFormat: DefaultDateFormat,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run reads commands until quit, end of input or ctx is done.
func (e *Executor) Run(ctx context.Context) error {
	fmt.Fprintln(e.writer, e.title)
	fmt.Fprintln(e.writer, "Type 'help' for commands, 'quit' to exit.")
	fmt.Fprintln(e.writer)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(e.writer, "> ")
		line, err := e.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(e.writer)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if line == "" {
			continue
		}

		cmd, args := splitCommand(line)
		if cmd == "quit" || cmd == "exit" {
			return nil
		}

		if err := e.dispatch(cmd, args); err != nil {
			fmt.Fprintf(e.writer, "❌ Error: %v\n", err)
		}
	}
}

func (e *Executor) dispatch(cmd, args string) error {
	switch cmd {
	case "add":
		return e.handleAdd(args)
	case "list", "ls":
		e.printMemos(e.store.Memos())
		return nil
	case "find":
		return e.handleFind(args)
	case "edit":
		return e.handleEdit(args)
	case "rm", "delete":
		return e.handleDelete(args)
	case "clear":
		return e.handleClear()
	case "help", "?":
		fmt.Fprintln(e.writer, helpText)
		return nil
	default:
		return fmt.Errorf("unknown command %q (type 'help')", cmd)
	}
}

func (e *Executor) handleAdd(content string) error {
	m, err := e.store.Add(content)
	if err != nil {
		return e.storeError(err)
	}
	fmt.Fprintf(e.writer, "✅ Added memo %d\n", m.ID)
	return nil
}

func (e *Executor) handleFind(pattern string) error {
	memos, err := memo.Filter{Match: pattern}.Apply(e.store.Memos())
	if err != nil {
		return err
	}
	e.printMemos(memos)
	return nil
}

func (e *Executor) handleEdit(args string) error {
	idArg, content := splitCommand(args)
	id, err := ParseID(idArg)
	if err != nil {
		return err
	}

	updated, err := e.store.Update(id, content)
	if err != nil {
		return e.storeError(err)
	}
	if !updated {
		return fmt.Errorf("memo %d not found", id)
	}
	fmt.Fprintf(e.writer, "✅ Updated memo %d\n", id)
	return nil
}

func (e *Executor) handleDelete(args string) error {
	id, err := ParseID(args)
	if err != nil {
		return err
	}
	if _, ok := e.store.Get(id); !ok {
		return fmt.Errorf("memo %d not found", id)
	}

	if e.confirmDelete {
		ok, err := e.confirm("Delete this memo? (y/n) ")
		if err != nil || !ok {
			return err
		}
	}

	deleted, err := e.store.Delete(id)
	if err != nil {
		return e.storeError(err)
	}
	if !deleted {
		return fmt.Errorf("memo %d not found", id)
	}
	fmt.Fprintf(e.writer, "🗑  Deleted memo %d\n", id)
	return nil
}

func (e *Executor) handleClear() error {
	n := e.store.Len()
	if n == 0 {
		fmt.Fprintln(e.writer, "Nothing to clear.")
		return nil
	}

	if e.confirmDelete {
		ok, err := e.confirm(fmt.Sprintf("Delete all %d memos? (y/n) ", n))
		if err != nil || !ok {
			return err
		}
	}

	if err := e.store.ClearAll(); err != nil {
		return e.storeError(err)
	}
	fmt.Fprintf(e.writer, "🗑  Deleted %d memos\n", n)
	return nil
}

func (e *Executor) printMemos(memos []memo.Memo) {
	if len(memos) == 0 {
		fmt.Fprintln(e.writer, "No memos.")
		return
	}
	for _, m := range memos {
		fmt.Fprintln(e.writer, FormatMemo(m, e.dateFormat))
	}
}

// confirm asks a yes/no question on the executor's streams.
func (e *Executor) confirm(prompt string) (bool, error) {
	fmt.Fprint(e.writer, prompt)
	answer, err := e.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	return isYes(answer), nil
}

func (e *Executor) readLine() (string, error) {
	line, err := e.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// storeError logs slot failures; validation errors are returned as is.
func (e *Executor) storeError(err error) error {
	if !errors.Is(err, memo.ErrEmptyContent) && !errors.Is(err, memo.ErrContentTooLong) {
		e.log.Errorf("Store operation failed: %v", err)
	}
	return err
}

func splitCommand(line string) (cmd, rest string) {
	line = strings.TrimSpace(line)
	cmd, rest, _ = strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(rest)
}

// ParseID parses a memo id argument.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("memo id is required")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid memo id %q", s)
	}
	return id, nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
