// Package memory provides an in-process DiaryEntryRepository for local development and tests.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"diaryapi/internal/model"
	"diaryapi/internal/repository"
)

// DiaryEntryMemory keeps entries in a map guarded by an RWMutex.
// IDs are assigned from a monotonically increasing counter, like an identity column.
type DiaryEntryMemory struct {
	mu      sync.RWMutex
	entries map[int64]model.DiaryEntry
	lastID  int64
}

// NewDiaryEntryMemory constructs an empty store.
func NewDiaryEntryMemory() *DiaryEntryMemory {
	return &DiaryEntryMemory{entries: make(map[int64]model.DiaryEntry)}
}

var _ repository.DiaryEntryRepository = (*DiaryEntryMemory)(nil)

func (s *DiaryEntryMemory) Create(_ context.Context, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	stored := *entry
	stored.ID = s.lastID
	s.entries[stored.ID] = stored
	return &stored, nil
}

func (s *DiaryEntryMemory) FindByID(_ context.Context, id int64) (*model.DiaryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

// List mirrors the SQL ordering: upload_date DESC, id DESC.
func (s *DiaryEntryMemory) List(_ context.Context) ([]model.DiaryEntry, error) {
	s.mu.RLock()
	items := make([]model.DiaryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		items = append(items, e)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].UploadDate.Equal(items[j].UploadDate) {
			return items[j].UploadDate.Before(items[i].UploadDate)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (s *DiaryEntryMemory) Update(_ context.Context, id int64, changes model.DiaryEntryChanges) (*model.DiaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	changes.Apply(&e)
	s.entries[id] = e
	return &e, nil
}

func (s *DiaryEntryMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.entries, id)
	return nil
}
