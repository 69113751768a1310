package memo

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/entrhq/memo/pkg/logging"
	"github.com/entrhq/memo/pkg/slot"
)

// BackupSuffix is appended to the store key to name the slot entry that
// keeps a payload Load could not fully read.
const BackupSuffix = ".corrupt"

// Store owns the memo sequence and keeps it mirrored to a slot.
//
// Every mutation writes the full sequence under the store's key before it
// is applied in memory. When the write fails the store is left unchanged
// and the error is returned.
type Store struct {
	slot  slot.Slot
	key   string
	memos []Memo // newest first
	ids   IDGenerator
	now   func() time.Time
	log   *logging.Logger
	mu    sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger that receives load and persist diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now as the source of ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open creates a store over s under key and loads the persisted sequence.
// Only a failure to read the slot is returned; malformed data loads as an
// empty sequence.
func Open(s slot.Slot, key string, opts ...Option) (*Store, error) {
	if s == nil {
		return nil, fmt.Errorf("memo: slot is required")
	}
	if key == "" {
		return nil, fmt.Errorf("memo: storage key is required")
	}

	store := &Store{
		slot: s,
		key:  key,
		now:  time.Now,
		log:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(store)
	}

	if _, err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

// Load replaces the in-memory sequence with the one persisted under the
// store's key and returns a copy of it. An absent key yields an empty
// sequence. Persisted data that cannot be read as memos never fails the
// load:
//   - a corrupt slot document or a payload that is not a memo array loads
//     as an empty sequence;
//   - unreadable elements are dropped and the rest are kept;
//   - memos sharing an id are given fresh ids.
//
// Before a repaired sequence replaces the payload, the original payload is
// copied to key+BackupSuffix. Only a failure to read the slot is returned.
func (s *Store) Load() ([]Memo, error) {
	raw, ok, err := s.slot.Get(s.key)
	if errors.Is(err, slot.ErrCorrupt) {
		s.log.Warnf("Slot holding %q is corrupt, starting empty: %v", s.key, err)
		raw, ok, err = "", false, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read memos from slot: %w", err)
	}

	memos := []Memo{}
	repaired := false
	if ok {
		decoded, dropped, err := Recover([]byte(raw))
		if err != nil {
			s.log.Warnf("Failed to load saved memos under %q, starting empty: %v", s.key, err)
			s.backup(raw)
		} else {
			for _, d := range dropped {
				s.log.Warnf("Dropped unreadable memo under %q: %v", s.key, d)
			}
			memos = decoded
			repaired = len(dropped) > 0
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range memos {
		s.ids.Seed(m.ID)
	}

	seen := make(map[int64]bool, len(memos))
	for i := range memos {
		if seen[memos[i].ID] {
			id := s.ids.Next(s.clock())
			s.log.Warnf("Memo %d under %q shares its id, renumbered to %d", memos[i].ID, s.key, id)
			memos[i].ID = id
			repaired = true
		}
		seen[memos[i].ID] = true
	}

	// A repaired sequence is written back only once the original is kept
	if repaired && s.backup(raw) {
		if err := s.persist(memos); err != nil {
			s.log.Warnf("Keeping repaired memos in memory only: %v", err)
		}
	}

	s.memos = memos
	s.log.Debugf("Loaded %d memos from %q", len(memos), s.key)

	return cloneMemos(memos), nil
}

// backup copies a payload that is about to be replaced by a repaired one to
// key+BackupSuffix. It reports whether the copy was written.
func (s *Store) backup(raw string) bool {
	if err := s.slot.Set(s.key+BackupSuffix, raw); err != nil {
		s.log.Errorf("Failed to back up memos under %q: %v", s.key, err)
		return false
	}
	s.log.Infof("Backed up unreadable memos to %q", s.key+BackupSuffix)
	return true
}

// Add creates a memo from content and puts it at the head of the sequence.
// Content is trimmed; empty or oversized content is rejected and nothing
// changes.
func (s *Store) Add(content string) (Memo, error) {
	content, err := NormalizeContent(content)
	if err != nil {
		return Memo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	m := Memo{
		ID:        s.ids.Next(now),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := make([]Memo, 0, len(s.memos)+1)
	next = append(next, m)
	next = append(next, s.memos...)

	if err := s.persist(next); err != nil {
		return Memo{}, err
	}
	s.memos = next
	return m, nil
}

// Update replaces the content of the memo with id and bumps its UpdatedAt.
// Its id, CreatedAt and position stay the same. It reports false, without
// writing, when no memo has that id.
func (s *Store) Update(id int64, content string) (bool, error) {
	content, err := NormalizeContent(content)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := cloneMemos(s.memos)
	next[idx].Content = content
	next[idx].UpdatedAt = s.editTime(next[idx].UpdatedAt)

	if err := s.persist(next); err != nil {
		return false, err
	}
	s.memos = next
	return true, nil
}

// Delete removes the memo with id. It reports false, without writing, when
// no memo has that id.
func (s *Store) Delete(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := make([]Memo, 0, len(s.memos)-1)
	next = append(next, s.memos[:idx]...)
	next = append(next, s.memos[idx+1:]...)

	if err := s.persist(next); err != nil {
		return false, err
	}
	s.memos = next
	return true, nil
}

// ClearAll removes every memo.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := []Memo{}
	if err := s.persist(next); err != nil {
		return err
	}
	s.memos = next
	return nil
}

// Memos returns a copy of the sequence, newest first.
func (s *Store) Memos() []Memo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMemos(s.memos)
}

// Len returns the number of memos.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.memos)
}

// Get returns the memo with id.
func (s *Store) Get(id int64) (Memo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(id); idx >= 0 {
		return s.memos[idx], true
	}
	return Memo{}, false
}

// Key returns the slot key the store persists under.
func (s *Store) Key() string {
	return s.key
}

// persist writes next under the store key. Callers hold s.mu.
func (s *Store) persist(next []Memo) error {
	data, err := Encode(next)
	if err != nil {
		return fmt.Errorf("failed to encode memos: %w", err)
	}

	if err := s.slot.Set(s.key, string(data)); err != nil {
		s.log.Errorf("Failed to persist %d memos under %q: %v", len(next), s.key, err)
		return fmt.Errorf("failed to persist memos: %w", err)
	}
	return nil
}

func (s *Store) indexOf(id int64) int {
	for i, m := range s.memos {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// clock returns the current time at the precision memos are stored with.
func (s *Store) clock() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// editTime returns the UpdatedAt for an edit of a memo last updated at prev.
// It is always later than prev so an edit is visible even within the same
// millisecond.
func (s *Store) editTime(prev time.Time) time.Time {
	now := s.clock()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

func cloneMemos(memos []Memo) []Memo {
	out := make([]Memo, len(memos))
	copy(out, memos)
	return out
}
