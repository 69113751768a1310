package cli

import (
	"fmt"
	"strings"

	"github.com/entrhq/memo/pkg/memo"
)

// DefaultDateFormat is the layout used when none is configured.
const DefaultDateFormat = "2006-01-02 15:04"

// FormatMemo renders a memo on one line as
// "[id] content (created, edited)". Newlines in the content are folded.
func FormatMemo(m memo.Memo, layout string) string {
	if layout == "" {
		layout = DefaultDateFormat
	}

	content := strings.Join(strings.Fields(m.Content), " ")
	meta := m.CreatedAt.Local().Format(layout)
	if m.Edited() {
		meta += ", edited"
	}
	return fmt.Sprintf("[%d] %s (%s)", m.ID, content, meta)
}
