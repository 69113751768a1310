package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/memo/pkg/memo"
)

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return m.input.Focus()
}

// Update handles all state updates for the widget.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 8
		m.filterInput.Width = msg.Width - 8
		m.editor.SetWidth(msg.Width - 6)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.expireToast()

		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmDelete, modeConfirmClear:
			return m.updateConfirm(msg)
		case modeFilter:
			return m.updateFilter(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m.forward(msg)
}

// forward passes non-key messages such as cursor blinks to the active widget.
func (m *model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeEdit:
		m.editor, cmd = m.editor.Update(msg)
	case modeFilter:
		m.filterInput, cmd = m.filterInput.Update(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ClearAll) {
		return m.requestClearAll()
	}
	if key.Matches(msg, m.keys.Focus) {
		if m.focus == focusInput && len(m.rows) > 0 {
			m.setFocus(focusList)
		} else {
			m.setFocus(focusInput)
		}
		return m, nil
	}

	if m.focus == focusInput {
		switch {
		case key.Matches(msg, m.keys.Add):
			m.addFromInput()
			return m, nil
		case key.Matches(msg, m.keys.Down) && msg.Type == tea.KeyDown && len(m.rows) > 0:
			m.setFocus(focusList)
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		} else {
			m.setFocus(focusInput)
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.rows)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()
	case key.Matches(msg, m.keys.Delete):
		return m.requestDelete()
	case key.Matches(msg, m.keys.Copy):
		m.copySelected()
	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.filterInput.SetValue(m.filter.Match)
		m.filterInput.CursorEnd()
		return m, m.filterInput.Focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Cancel):
		if !m.filter.IsZero() {
			m.filter = memo.Filter{}
			m.refresh()
		}
		m.setFocus(focusInput)
	}
	return m, nil
}

// addFromInput adds the trimmed input as a memo. Empty input is ignored.
func (m *model) addFromInput() {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return
	}

	created, err := m.store.Add(content)
	if err != nil {
		m.reportError("Could not add memo", err)
		return
	}

	m.log.Debugf("Added memo %d", created.ID)
	m.input.Reset()
	m.selected = 0
	m.refresh()
}

func (m *model) startEdit() (tea.Model, tea.Cmd) {
	current, ok := m.current()
	if !ok {
		return m, nil
	}

	m.mode = modeEdit
	m.editingID = current.ID
	m.editor.SetValue(current.Content)
	m.editor.CursorEnd()
	return m, m.editor.Focus()
}

func (m *model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.saveEdit()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.endEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// saveEdit writes the editor content back. On a validation error the
// editor stays open.
func (m *model) saveEdit() {
	updated, err := m.store.Update(m.editingID, m.editor.Value())
	if err != nil {
		m.reportError("Could not save memo", err)
		return
	}
	if !updated {
		m.log.Warnf("Memo %d disappeared while editing", m.editingID)
	}
	m.endEdit()
	m.refresh()
}

func (m *model) endEdit() {
	m.mode = modeBrowse
	m.editingID = 0
	m.editor.Reset()
	m.editor.Blur()
}

func (m *model) requestDelete() (tea.Model, tea.Cmd) {
	current, ok := m.current()
	if !ok {
		return m, nil
	}

	if !m.confirmDelete {
		m.deleteMemo(current.ID)
		return m, nil
	}

	m.pendingDelete = current.ID
	m.mode = modeConfirmDelete
	return m, nil
}

func (m *model) deleteMemo(id int64) {
	if _, err := m.store.Delete(id); err != nil {
		m.reportError("Could not delete memo", err)
		return
	}
	m.log.Debugf("Deleted memo %d", id)
	m.refresh()
	if len(m.rows) == 0 {
		m.setFocus(focusInput)
	}
}

// requestClearAll asks for confirmation; it does nothing when there is
// nothing to clear.
func (m *model) requestClearAll() (tea.Model, tea.Cmd) {
	if m.store.Len() == 0 {
		return m, nil
	}
	m.mode = modeConfirmClear
	return m, nil
}

func (m *model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if m.mode == modeConfirmDelete {
			m.deleteMemo(m.pendingDelete)
		} else {
			m.clearAll()
		}
		m.mode = modeBrowse
		m.pendingDelete = 0
	case key.Matches(msg, m.keys.Deny):
		m.mode = modeBrowse
		m.pendingDelete = 0
	}
	return m, nil
}

func (m *model) clearAll() {
	if err := m.store.ClearAll(); err != nil {
		m.reportError("Could not clear memos", err)
		return
	}
	m.log.Infof("Cleared all memos")
	m.filter = memo.Filter{}
	m.refresh()
	m.setFocus(focusInput)
	m.showToast("All memos cleared", false)
}

func (m *model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filter = memo.Filter{Match: strings.TrimSpace(m.filterInput.Value())}
		m.selected = 0
		m.refresh()
		m.mode = modeBrowse
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *model) copySelected() {
	current, ok := m.current()
	if !ok {
		return
	}
	if err := m.copyToClipboard(current.Content); err != nil {
		m.reportError("Could not copy memo", err)
		return
	}
	m.showToast("Copied to clipboard", false)
}

// reportError shows a toast. Only failures of the slot are logged.
func (m *model) reportError(title string, err error) {
	switch {
	case errors.Is(err, memo.ErrEmptyContent):
		m.showToast("Memo cannot be empty", true)
	case errors.Is(err, memo.ErrContentTooLong):
		m.showToast(fmt.Sprintf("Memo is longer than %d characters", memo.MaxContentLength), true)
	default:
		m.log.Errorf("%s: %v", title, err)
		m.showToast(fmt.Sprintf("%s: %v", title, err), true)
	}
}

func (m *model) expireToast() {
	if m.toast != nil && m.now().After(m.toast.showUntil) {
		m.toast = nil
	}
}
