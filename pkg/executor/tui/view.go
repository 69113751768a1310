package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/memo/pkg/memo"
)

const (
	emptyMessage      = "No memos yet. Write one above and press Enter."
	noMatchMessage    = "No memos match the filter."
	deletePrompt      = "Delete this memo? (y/n)"
	clearAllPrompt    = "Delete all %d memos? (y/n)"
	editedMarker      = "(edited)"
	filterIndicatorFm = "filter: %s (esc to clear)"
)

// View renders the widget.
func (m *model) View() string {
	sections := []string{
		m.buildHeader(),
		m.buildInputBox(),
		m.buildList(),
	}

	if prompt := m.buildConfirm(); prompt != "" {
		sections = append(sections, prompt)
	}
	if toast := m.buildToast(); toast != "" {
		sections = append(sections, toast)
	}
	sections = append(sections, m.buildFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// buildHeader renders the configured title
func (m *model) buildHeader() string {
	header := headerStyle.Render("  " + m.title)
	if !m.filter.IsZero() {
		header += "  " + tipsStyle.Render(fmt.Sprintf(filterIndicatorFm, m.filter.Match))
	}
	return header
}

// buildInputBox renders the add field, or the filter field while filtering
func (m *model) buildInputBox() string {
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	if m.mode == modeFilter {
		return inputBoxStyle.Width(width).Render(m.filterInput.View())
	}
	return inputBoxStyle.Width(width).Render(m.input.View())
}

// buildList renders memos newest first, with the editor in place of the
// memo being edited
func (m *model) buildList() string {
	if len(m.rows) == 0 {
		if !m.filter.IsZero() {
			return emptyStyle.Render(noMatchMessage)
		}
		return emptyStyle.Render(emptyMessage)
	}

	var b strings.Builder
	for i, row := range m.rows {
		if m.mode == modeEdit && row.ID == m.editingID {
			b.WriteString(editorBoxStyle.Render(m.editor.View()))
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.renderRow(row, i == m.selected && m.focus == focusList))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) renderRow(row memo.Memo, selected bool) string {
	cursor := "  "
	style := contentStyle
	if selected {
		cursor = selectedStyle.Render("› ")
		style = selectedStyle
	}

	width := m.width - 6
	if width < 20 {
		width = 20
	}
	content := style.Width(width).Render(row.Content)

	meta := row.CreatedAt.Local().Format(m.dateFormat)
	if row.Edited() {
		meta += " " + editedMarker
	}

	lines := strings.Split(content, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = cursor + lines[i]
		} else {
			lines[i] = "  " + lines[i]
		}
	}
	return strings.Join(lines, "\n") + "\n  " + metaStyle.Render(meta)
}

// buildConfirm renders the pending confirmation prompt, if any
func (m *model) buildConfirm() string {
	switch m.mode {
	case modeConfirmDelete:
		return confirmStyle.Render(deletePrompt)
	case modeConfirmClear:
		return confirmStyle.Render(fmt.Sprintf(clearAllPrompt, m.store.Len()))
	}
	return ""
}

// buildToast renders the notification until it expires
func (m *model) buildToast() string {
	if m.toast == nil || m.now().After(m.toast.showUntil) {
		return ""
	}
	if m.toast.isError {
		return errorStyle.Render("  ✗ " + m.toast.message)
	}
	return successStyle.Render("  ✓ " + m.toast.message)
}

// buildFooter renders the memo count, version and key help
func (m *model) buildFooter() string {
	status := countLabel(m.store.Len())
	if m.version != "" {
		status += " · v" + strings.TrimPrefix(m.version, "v")
	}

	var helpView string
	switch {
	case m.mode == modeEdit:
		helpView = m.help.View(editHelp{m.keys})
	case m.focus == focusList:
		helpView = m.help.View(listHelp{m.keys})
	default:
		helpView = m.help.View(inputHelp{m.keys})
	}

	return statusBarStyle.Render(status) + "\n" + statusBarStyle.Render(helpView)
}

func countLabel(n int) string {
	if n == 1 {
		return "1 memo"
	}
	return fmt.Sprintf("%d memos", n)
}
