package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/entrhq/memo/pkg/logging"
	"github.com/entrhq/memo/pkg/memo"
)

// focusArea is the part of the browse screen that receives keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// mode is the interaction the widget is in.
type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeConfirmDelete
	modeConfirmClear
	modeFilter
)

const toastDuration = 4 * time.Second

// model represents the state of the memo widget.
type model struct {
	// Bubble Tea components
	input       textinput.Model
	editor      textarea.Model
	filterInput textinput.Model
	help        help.Model
	keys        keyMap

	// Core
	store *memo.Store
	log   *logging.Logger

	// Rows currently rendered; a filtered view of the store
	rows     []memo.Memo
	filter   memo.Filter
	selected int

	// UI state
	focus         focusArea
	mode          mode
	editingID     int64
	pendingDelete int64
	toast         *toastNotification

	// Settings
	title         string
	version       string
	confirmDelete bool
	dateFormat    string

	// Window dimensions
	width  int
	height int

	copyToClipboard func(string) error
	now             func() time.Time
}

// toastNotification represents a temporary notification message
type toastNotification struct {
	message   string
	isError   bool
	showUntil time.Time
}

func newModel(store *memo.Store, log *logging.Logger, opts Options) *model {
	opts = opts.withDefaults()

	input := textinput.New()
	input.Placeholder = "Write a memo and press Enter"
	input.CharLimit = memo.MaxContentLength
	input.Prompt = "› "
	input.Focus()

	editor := textarea.New()
	editor.CharLimit = memo.MaxContentLength
	editor.ShowLineNumbers = false
	editor.SetHeight(5)

	filterInput := textinput.New()
	filterInput.Placeholder = "glob, e.g. *milk*"
	filterInput.Prompt = "/ "

	if log == nil {
		log = logging.Discard()
	}

	m := &model{
		input:           input,
		editor:          editor,
		filterInput:     filterInput,
		help:            help.New(),
		keys:            defaultKeyMap(),
		store:           store,
		log:             log,
		title:           opts.Title,
		version:         opts.Version,
		confirmDelete:   opts.ConfirmDelete,
		dateFormat:      opts.DateFormat,
		width:           80,
		height:          24,
		copyToClipboard: clipboard.WriteAll,
		now:             time.Now,
	}
	m.refresh()
	return m
}

// refresh rebuilds the rendered rows from the store and keeps the
// selection in range.
func (m *model) refresh() {
	all := m.store.Memos()

	rows, err := m.filter.Apply(all)
	if err != nil {
		m.showToast("Invalid filter: "+err.Error(), true)
		m.filter = memo.Filter{}
		rows = all
	}
	m.rows = rows

	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// current returns the selected row.
func (m *model) current() (memo.Memo, bool) {
	if len(m.rows) == 0 || m.selected < 0 || m.selected >= len(m.rows) {
		return memo.Memo{}, false
	}
	return m.rows[m.selected], true
}

func (m *model) showToast(message string, isError bool) {
	m.toast = &toastNotification{
		message:   message,
		isError:   isError,
		showUntil: m.now().Add(toastDuration),
	}
}

func (m *model) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}
