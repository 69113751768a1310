package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/memo/pkg/memo"
	"github.com/entrhq/memo/pkg/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

// brokenSlot accepts reads and fails every write.
type brokenSlot struct{ slot.Slot }

func (brokenSlot) Set(string, string) error { return errors.New("disk full") }

func newTestModel(t *testing.T, opts Options, s slot.Slot) *model {
	t.Helper()
	if s == nil {
		s = slot.NewMemory()
	}

	store, err := memo.Open(s, "memos", memo.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	m := newModel(store, nil, opts)
	m.now = func() time.Time { return testNow }
	m.copyToClipboard = func(string) error { return errors.New("no clipboard in tests") }
	return m
}

func typeText(m *model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func press(m *model, kt tea.KeyType) {
	m.Update(tea.KeyMsg{Type: kt})
}

func pressRune(m *model, r rune) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func addMemo(t *testing.T, m *model, content string) {
	t.Helper()
	m.setFocus(focusInput)
	typeText(m, content)
	press(m, tea.KeyEnter)
}

func TestAdd_TrimsAndClearsInput(t *testing.T) {
	m := newTestModel(t, Options{}, nil)

	typeText(m, "  buy milk  ")
	press(m, tea.KeyEnter)

	memos := m.store.Memos()
	require.Len(t, memos, 1)
	assert.Equal(t, "buy milk", memos[0].Content)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "buy milk")
}

func TestAdd_IgnoresBlankInput(t *testing.T) {
	m := newTestModel(t, Options{}, nil)

	typeText(m, "   ")
	press(m, tea.KeyEnter)

	assert.Equal(t, 0, m.store.Len())
	assert.Nil(t, m.toast)
}

func TestAdd_NewestFirst(t *testing.T) {
	m := newTestModel(t, Options{}, nil)

	addMemo(t, m, "buy milk")
	addMemo(t, m, "call mom")

	require.Len(t, m.rows, 2)
	assert.Equal(t, "call mom", m.rows[0].Content)
	assert.Equal(t, "buy milk", m.rows[1].Content)
}

func TestAdd_FailedWriteShowsError(t *testing.T) {
	m := newTestModel(t, Options{}, brokenSlot{slot.NewMemory()})

	typeText(m, "buy milk")
	press(m, tea.KeyEnter)

	assert.Equal(t, 0, m.store.Len())
	require.NotNil(t, m.toast)
	assert.True(t, m.toast.isError)
	assert.Equal(t, "buy milk", m.input.Value(), "input is kept so the memo can be retried")
}

func TestEdit_SaveWithCtrlS(t *testing.T) {
	m := newTestModel(t, Options{}, nil)
	addMemo(t, m, "buy milk")

	press(m, tea.KeyTab)
	require.Equal(t, focusList, m.focus)

	pressRune(m, 'e')
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "buy milk", m.editor.Value())

	m.editor.SetValue("buy oat milk")
	press(m, tea.KeyCtrlS)

	assert.Equal(t, modeBrowse, m.mode)
	memos := m.store.Memos()
	require.Len(t, memos, 1)
	assert.Equal(t, "buy oat milk", memos[0].Content)
	assert.True(t, memos[0].UpdatedAt.After(memos[0].CreatedAt))
	assert.Contains(t, m.View(), editedMarker)
}

func TestEdit_EmptyContentStaysInEditMode(t *testing.T) {
	m := newTestModel(t, Options{}, nil)
	addMemo(t, m, "buy milk")

	press(m, tea.KeyTab)
	press(m, tea.KeyEnter)
	require.Equal(t, modeEdit, m.mode)

	m.editor.SetValue("   ")
	press(m, tea.KeyCtrlS)

	assert.Equal(t, modeEdit, m.mode)
	require.NotNil(t, m.toast)
	assert.True(t, m.toast.isError)
	assert.Equal(t, "Memo cannot be empty", m.toast.message)
	assert.Equal(t, "buy milk", m.store.Memos()[0].Content)
}

func TestEdit_EscCancels(t *testing.T) {
	m := newTestModel(t, Options{}, nil)
	addMemo(t, m, "buy milk")

	press(m, tea.KeyTab)
	pressRune(m, 'e')
	m.editor.SetValue("something else")
	press(m, tea.KeyEsc)

	assert.Equal(t, modeBrowse, m.mode)
	memos := m.store.Memos()
	assert.Equal(t, "buy milk", memos[0].Content)
	assert.False(t, memos[0].Edited())
	assert.NotContains(t, m.View(), editedMarker)
}

func TestDelete_AsksForConfirmation(t *testing.T) {
	m := newTestModel(t, Options{ConfirmDelete: true}, nil)
	addMemo(t, m, "buy milk")
	press(m, tea.KeyTab)

	pressRune(m, 'd')
	require.Equal(t, modeConfirmDelete, m.mode)
	assert.Contains(t, m.View(), deletePrompt)

	pressRune(m, 'n')
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, 1, m.store.Len())

	pressRune(m, 'd')
	pressRune(m, 'y')
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, 0, m.store.Len())
	assert.Equal(t, focusInput, m.focus)
}

func TestDelete_WithoutConfirmation(t *testing.T) {
	m := newTestModel(t, Options{ConfirmDelete: false}, nil)
	addMemo(t, m, "buy milk")
	addMemo(t, m, "call mom")
	press(m, tea.KeyTab)

	pressRune(m, 'j')
	pressRune(m, 'd')

	memos := m.store.Memos()
	require.Len(t, memos, 1)
	assert.Equal(t, "call mom", memos[0].Content)
}

func TestClearAll(t *testing.T) {
	m := newTestModel(t, Options{}, nil)

	press(m, tea.KeyCtrlX)
	assert.Equal(t, modeBrowse, m.mode, "clear-all is ignored on an empty list")

	addMemo(t, m, "buy milk")
	addMemo(t, m, "call mom")

	press(m, tea.KeyCtrlX)
	require.Equal(t, modeConfirmClear, m.mode)
	assert.Contains(t, m.View(), "Delete all 2 memos? (y/n)")

	press(m, tea.KeyEsc)
	assert.Equal(t, 2, m.store.Len())

	press(m, tea.KeyCtrlX)
	pressRune(m, 'y')
	assert.Equal(t, 0, m.store.Len())
	assert.Contains(t, m.View(), emptyMessage)
}

func TestView_EmptyStateAndFooter(t *testing.T) {
	m := newTestModel(t, Options{Title: "Scratchpad", Version: "1.2.3"}, nil)

	view := m.View()
	assert.Contains(t, view, "Scratchpad")
	assert.Contains(t, view, emptyMessage)
	assert.Contains(t, view, "0 memos · v1.2.3")

	addMemo(t, m, "buy milk")
	assert.Contains(t, m.View(), "1 memo · v1.2.3")
	assert.NotContains(t, m.View(), emptyMessage)
}

func TestCopy(t *testing.T) {
	m := newTestModel(t, Options{}, nil)
	var copied string
	m.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	addMemo(t, m, "buy milk")
	press(m, tea.KeyTab)
	pressRune(m, 'c')

	assert.Equal(t, "buy milk", copied)
	require.NotNil(t, m.toast)
	assert.False(t, m.toast.isError)
}

func TestFilter(t *testing.T) {
	m := newTestModel(t, Options{}, nil)
	addMemo(t, m, "buy milk")
	addMemo(t, m, "call mom")
	press(m, tea.KeyTab)

	pressRune(m, '/')
	require.Equal(t, modeFilter, m.mode)
	typeText(m, "*MILK*")
	press(m, tea.KeyEnter)

	assert.Equal(t, modeBrowse, m.mode)
	require.Len(t, m.rows, 1)
	assert.Equal(t, "buy milk", m.rows[0].Content)
	assert.Equal(t, 2, m.store.Len(), "filtering never touches the store")

	press(m, tea.KeyEsc)
	assert.Len(t, m.rows, 2)
}

func TestFilter_InvalidPatternResets(t *testing.T) {
	m := newTestModel(t, Options{}, nil)
	addMemo(t, m, "buy milk")
	press(m, tea.KeyTab)

	pressRune(m, '/')
	typeText(m, "[unclosed")
	press(m, tea.KeyEnter)

	assert.True(t, m.filter.IsZero())
	assert.Len(t, m.rows, 1)
	require.NotNil(t, m.toast)
	assert.True(t, m.toast.isError)
}

func TestToastExpires(t *testing.T) {
	m := newTestModel(t, Options{}, nil)
	m.showToast("hello", false)
	assert.Contains(t, m.View(), "hello")

	m.now = func() time.Time { return testNow.Add(toastDuration + time.Second) }
	assert.NotContains(t, m.View(), "hello")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Options{}, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, Options{}, nil)
	addMemo(t, m, "buy milk")
	press(m, tea.KeyTab)

	assert.NotContains(t, m.View(), "clear all")
	pressRune(m, '?')
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "clear all")
}
