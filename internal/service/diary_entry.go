package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"diaryapi/internal/model"
	"diaryapi/internal/repository"
)

var ErrNotFound = errors.New("diary entry not found")

// DiaryEntryService defines the use cases for diary entries.
type DiaryEntryService interface {
	// List returns all entries, newest upload first.
	List(ctx context.Context) ([]model.DiaryEntry, error)

	// Create validates in, stamps the upload date and stores a new entry.
	Create(ctx context.Context, in DiaryEntryInput) (*model.DiaryEntry, error)

	// Get returns a single entry by its ID.
	Get(ctx context.Context, id int64) (*model.DiaryEntry, error)

	// Update validates in and applies it. When partial is false every writable field must be present.
	Update(ctx context.Context, id int64, in DiaryEntryInput, partial bool) (*model.DiaryEntry, error)

	// Delete removes an entry by ID.
	Delete(ctx context.Context, id int64) error
}

// diaryEntryService is a concrete implementation of DiaryEntryService.
type diaryEntryService struct {
	repo repository.DiaryEntryRepository
	now  func() time.Time
}

// NewDiaryEntryService constructs a new DiaryEntryService.
// now supplies the creation instant; its location decides the upload date. nil means time.Now.
func NewDiaryEntryService(repo repository.DiaryEntryRepository, now func() time.Time) DiaryEntryService {
	if now == nil {
		now = time.Now
	}
	return &diaryEntryService{repo: repo, now: now}
}

func (s *diaryEntryService) List(ctx context.Context) ([]model.DiaryEntry, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}
	return items, nil
}

func (s *diaryEntryService) Create(ctx context.Context, in DiaryEntryInput) (*model.DiaryEntry, error) {
	changes, err := validateInput(in, false)
	if err != nil {
		return nil, err
	}

	entry := &model.DiaryEntry{UploadDate: model.DateOf(s.now())}
	changes.Apply(entry)

	stored, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("create diary entry: %w", err)
	}
	return stored, nil
}

func (s *diaryEntryService) Get(ctx context.Context, id int64) (*model.DiaryEntry, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "get diary entry")
	}
	return entry, nil
}

func (s *diaryEntryService) Update(ctx context.Context, id int64, in DiaryEntryInput, partial bool) (*model.DiaryEntry, error) {
	changes, err := validateInput(in, partial)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, ErrNotFound
	}
	entry, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, mapNotFound(err, "update diary entry")
	}
	return entry, nil
}

func (s *diaryEntryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "delete diary entry")
	}
	return nil
}

func mapNotFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
