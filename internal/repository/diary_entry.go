package repository

import (
	"context"

	"diaryapi/internal/model"
)

// DiaryEntryRepository defines data access for diary entries.
// No business logic here, only persistence.
// Implementations report a missing row as sql.ErrNoRows.
type DiaryEntryRepository interface {
	// Create inserts a new entry. ID is assigned by the store; UploadDate must already be set.
	Create(ctx context.Context, entry *model.DiaryEntry) (*model.DiaryEntry, error)

	// FindByID returns a single entry by its ID.
	FindByID(ctx context.Context, id int64) (*model.DiaryEntry, error)

	// List returns all entries ordered by upload_date descending, then id descending.
	List(ctx context.Context) ([]model.DiaryEntry, error)

	// Update applies changes to one entry in a single statement and returns the stored result.
	Update(ctx context.Context, id int64, changes model.DiaryEntryChanges) (*model.DiaryEntry, error)

	// Delete removes an entry by ID.
	Delete(ctx context.Context, id int64) error
}
