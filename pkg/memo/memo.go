// Package memo implements the memo list and its persistence contract.
//
// A Store owns an ordered, newest-first sequence of memos and mirrors it to a
// durable slot after every mutation. Loading tolerates corrupt data: a
// payload that cannot be decoded is logged and replaced with an empty list.
package memo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxContentLength is the maximum number of characters in memo content
	MaxContentLength = 2000

	// TimeFormat is the wire format of memo timestamps (ISO-8601, millisecond
	// precision, UTC).
	TimeFormat = "2006-01-02T15:04:05.000Z07:00"
)

var (
	// ErrEmptyContent is returned when content is empty after trimming.
	ErrEmptyContent = errors.New("memo: content cannot be empty")

	// ErrContentTooLong is returned when content exceeds MaxContentLength.
	ErrContentTooLong = errors.New("memo: content too long")
)

// Memo is a single persisted note.
type Memo struct {
	ID        int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// wireMemo is the serialized shape of a Memo. Field names are the storage
// contract shared with existing data.
type wireMemo struct {
	ID        int64  `json:"id" yaml:"id"`
	Content   string `json:"content" yaml:"content"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt string `json:"updatedAt" yaml:"updatedAt"`
}

func (m Memo) wire() wireMemo {
	return wireMemo{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC().Format(TimeFormat),
		UpdatedAt: m.UpdatedAt.UTC().Format(TimeFormat),
	}
}

// MarshalJSON implements json.Marshaler.
func (m Memo) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

// UnmarshalJSON implements json.Unmarshaler. Timestamps may be any RFC 3339
// value, with or without fractional seconds. Content is trimmed.
func (m *Memo) UnmarshalJSON(data []byte) error {
	var w wireMemo
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	createdAt, err := parseTime(w.CreatedAt)
	if err != nil {
		return fmt.Errorf("memo %d: invalid createdAt: %w", w.ID, err)
	}
	updatedAt, err := parseTime(w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("memo %d: invalid updatedAt: %w", w.ID, err)
	}

	*m = Memo{
		ID:        w.ID,
		Content:   strings.TrimSpace(w.Content),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	return nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Edited reports whether the memo was changed after it was created.
func (m Memo) Edited() bool {
	return !m.UpdatedAt.Equal(m.CreatedAt)
}

// Equal reports whether two memos hold the same id, content and instants.
func (m Memo) Equal(other Memo) bool {
	return m.ID == other.ID &&
		m.Content == other.Content &&
		m.CreatedAt.Equal(other.CreatedAt) &&
		m.UpdatedAt.Equal(other.UpdatedAt)
}

// NormalizeContent trims content and checks it can be stored.
func NormalizeContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmptyContent
	}

	if n := utf8.RuneCountInString(trimmed); n > MaxContentLength {
		return "", fmt.Errorf("%w: %d characters (max %d)", ErrContentTooLong, n, MaxContentLength)
	}

	return trimmed, nil
}

// validate checks a decoded memo holds the invariants of a stored memo.
func (m Memo) validate() error {
	if m.ID <= 0 {
		return fmt.Errorf("memo has invalid id %d", m.ID)
	}
	if strings.TrimSpace(m.Content) == "" {
		return fmt.Errorf("memo %d: %w", m.ID, ErrEmptyContent)
	}
	if m.UpdatedAt.Before(m.CreatedAt) {
		return fmt.Errorf("memo %d: updatedAt precedes createdAt", m.ID)
	}
	return nil
}

// Encode serializes a memo sequence into its stored JSON form.
// A nil sequence encodes as an empty array.
func Encode(memos []Memo) ([]byte, error) {
	if memos == nil {
		memos = []Memo{}
	}
	return json.Marshal(memos)
}

// Decode parses a stored memo sequence and checks every element and the
// uniqueness of ids. A JSON null decodes to an empty sequence.
func Decode(data []byte) ([]Memo, error) {
	memos, dropped, err := Recover(data)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		return nil, dropped[0]
	}

	seen := make(map[int64]bool, len(memos))
	for _, m := range memos {
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate memo id %d", m.ID)
		}
		seen[m.ID] = true
	}
	return memos, nil
}

// Recover parses a stored memo sequence element by element. Elements that
// cannot be decoded or break a stored-memo rule are left out and reported
// in dropped. Duplicate ids are kept. err is set only when data is not a
// JSON array at all.
func Recover(data []byte) (memos []Memo, dropped []error, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}

	memos = make([]Memo, 0, len(raw))
	for i, element := range raw {
		var m Memo
		if err := json.Unmarshal(element, &m); err != nil {
			dropped = append(dropped, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		if err := m.validate(); err != nil {
			dropped = append(dropped, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		memos = append(memos, m)
	}
	return memos, dropped, nil
}
