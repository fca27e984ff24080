// Package app holds the application services and business logic.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"weightlog/internal/domain"
	"weightlog/internal/observability"
)

// ErrDateConflict is matched by *DateConflictError.
var ErrDateConflict = errors.New("an entry for this date already exists")

// DateConflictError is returned by Add when the date is already taken. The
// caller decides whether to Overwrite or abort.
type DateConflictError struct {
	Existing domain.WeightEntry
}

func (e *DateConflictError) Error() string {
	return fmt.Sprintf("an entry for %s already exists", e.Existing.Date)
}

// Is makes errors.Is(err, ErrDateConflict) hold.
func (e *DateConflictError) Is(target error) bool {
	return target == ErrDateConflict
}

// EntryStore is the authoritative, date-ascending collection of weight entries.
type EntryStore struct {
	kv    domain.KVStore
	newID func() string
	now   func() time.Time

	mu      sync.Mutex
	entries []domain.WeightEntry
}

// NewEntryStore creates an EntryStore persisting to kv. Call Load before use.
func NewEntryStore(kv domain.KVStore) *EntryStore {
	return &EntryStore{kv: kv, newID: uuid.NewString, now: time.Now}
}

// Load replaces the in-memory collection with the persisted one. Malformed
// data resets the store to empty and is not reported as an error.
func (s *EntryStore) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, domain.KeyEntries)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	var loaded []domain.WeightEntry
	if ok && raw != "" {
		loaded = decodeEntries(raw)
	}
	sortByDate(loaded)

	s.mu.Lock()
	s.entries = loaded
	s.mu.Unlock()
	observability.RecordEntriesLoaded(len(loaded))
	return nil
}

func decodeEntries(raw string) []domain.WeightEntry {
	var decoded []domain.WeightEntry
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		log.Printf("entries: discarding malformed data: %v", err)
		observability.RecordRecovery(domain.KeyEntries)
		return nil
	}
	out := decoded[:0]
	for _, e := range decoded {
		if e.ID == "" || domain.ValidateEntry(e.Date, e.Weight) != nil {
			log.Printf("entries: dropping invalid record id=%q date=%q", e.ID, e.Date)
			observability.RecordRecovery(domain.KeyEntries)
			continue
		}
		out = append(out, e)
	}
	return out
}

// Add inserts a new entry. If the date is already taken it returns a
// *DateConflictError and leaves the store unchanged.
func (s *EntryStore) Add(ctx context.Context, date string, weight float64) (domain.WeightEntry, error) {
	if err := domain.ValidateEntry(date, weight); err != nil {
		return domain.WeightEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexByDate(date); i >= 0 {
		observability.RecordDateConflict()
		return domain.WeightEntry{}, &DateConflictError{Existing: s.entries[i]}
	}
	return s.insertLocked(ctx, date, weight)
}

// Overwrite sets the weight of the entry already recorded for date, keeping
// its id and position. Without such an entry it behaves like Add.
func (s *EntryStore) Overwrite(ctx context.Context, date string, weight float64) (domain.WeightEntry, error) {
	if err := domain.ValidateEntry(date, weight); err != nil {
		return domain.WeightEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByDate(date)
	if i < 0 {
		return s.insertLocked(ctx, date, weight)
	}
	next := s.cloneLocked()
	next[i].Weight = weight
	if err := s.commitLocked(ctx, "overwrite", next); err != nil {
		return domain.WeightEntry{}, err
	}
	return next[i], nil
}

// Update changes the date and weight of the entry with id. An unknown id is a
// no-op and reports false.
func (s *EntryStore) Update(ctx context.Context, id, date string, weight float64) (domain.WeightEntry, bool, error) {
	if err := domain.ValidateEntry(date, weight); err != nil {
		return domain.WeightEntry{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return domain.WeightEntry{}, false, nil
	}
	next := s.cloneLocked()
	next[i].Date = date
	next[i].Weight = weight
	updated := next[i]
	sortByDate(next)
	if err := s.commitLocked(ctx, "update", next); err != nil {
		return domain.WeightEntry{}, false, err
	}
	return updated, true, nil
}

// Delete removes the entry with id. An unknown id is a no-op and reports false.
func (s *EntryStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return false, nil
	}
	next := make([]domain.WeightEntry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)
	if err := s.commitLocked(ctx, "delete", next); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the entry with id.
func (s *EntryStore) Get(id string) (domain.WeightEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexByID(id); i >= 0 {
		return s.entries[i], true
	}
	return domain.WeightEntry{}, false
}

// Snapshot returns a copy of the entries in date-ascending order.
func (s *EntryStore) Snapshot() []domain.WeightEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneLocked()
}

// History returns a copy of the entries, newest first.
func (s *EntryStore) History() []domain.WeightEntry {
	out := s.Snapshot()
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (s *EntryStore) insertLocked(ctx context.Context, date string, weight float64) (domain.WeightEntry, error) {
	entry := domain.WeightEntry{ID: s.newID(), Date: date, Weight: weight}
	next := append(s.cloneLocked(), entry)
	sortByDate(next)
	if err := s.commitLocked(ctx, "add", next); err != nil {
		return domain.WeightEntry{}, err
	}
	return entry, nil
}

// commitLocked persists next and only then makes it the current collection.
func (s *EntryStore) commitLocked(ctx context.Context, op string, next []domain.WeightEntry) error {
	b, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	if err := s.kv.Set(ctx, domain.KeyEntries, string(b)); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	s.entries = next
	observability.RecordEntryMutation(op, len(next), s.now())
	return nil
}

func (s *EntryStore) cloneLocked() []domain.WeightEntry {
	out := make([]domain.WeightEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *EntryStore) indexByID(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *EntryStore) indexByDate(date string) int {
	for i, e := range s.entries {
		if e.Date == date {
			return i
		}
	}
	return -1
}

// sortByDate orders entries by date ascending. Dates are validated
// YYYY-MM-DD strings, so lexical order is chronological.
func sortByDate(entries []domain.WeightEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}
