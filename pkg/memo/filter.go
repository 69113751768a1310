package memo

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Filter selects memos by content. Both conditions are case-insensitive and
// must hold when set.
type Filter struct {
	// Match is a glob pattern the whole content must match, e.g. "*milk*".
	Match string

	// Query is a substring the content must contain.
	Query string
}

// IsZero reports whether the filter selects everything.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Match) == "" && strings.TrimSpace(f.Query) == ""
}

// Apply returns the memos matching the filter, in their original order.
func (f Filter) Apply(memos []Memo) ([]Memo, error) {
	if f.IsZero() {
		return memos, nil
	}

	var g glob.Glob
	if pattern := strings.TrimSpace(f.Match); pattern != "" {
		compiled, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid match pattern %q: %w", pattern, err)
		}
		g = compiled
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))

	result := make([]Memo, 0, len(memos))
	for _, m := range memos {
		content := strings.ToLower(m.Content)
		if g != nil && !g.Match(content) {
			continue
		}
		if query != "" && !strings.Contains(content, query) {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}
