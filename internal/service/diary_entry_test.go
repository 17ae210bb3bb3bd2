package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"diaryapi/internal/model"
	repoMocks "diaryapi/internal/repository/mocks"
	"diaryapi/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 15, 4, 5, 0, time.UTC) }
}

func TestDiaryEntryService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		input      func() DiaryEntryInput
		setupMocks func(mRepo *repoMocks.MockDiaryEntryRepository)
		wantErr    error
		wantFields []string
		wantErrMsg string
	}{
		{
			name:  "happy path",
			input: validInput,
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(e *model.DiaryEntry) bool {
					return e.ID == 0 &&
						e.Title == "Day 1" &&
						e.Mood == "happy" &&
						e.Date.String() == "2024-05-01" &&
						e.UploadDate.String() == "2024-06-10"
				})).Return(&model.DiaryEntry{ID: 1, Title: "Day 1"}, nil)
			},
		},
		{
			name: "client upload_date is ignored",
			input: func() DiaryEntryInput {
				in := validInput()
				in["upload_date"] = "2000-01-01"
				in["id"] = float64(77)
				return in
			},
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(e *model.DiaryEntry) bool {
					return e.ID == 0 && e.UploadDate.String() == "2024-06-10"
				})).Return(&model.DiaryEntry{ID: 1}, nil)
			},
		},
		{
			name: "validation error - long title",
			input: func() DiaryEntryInput {
				in := validInput()
				in["title"] = strings.Repeat("t", 256)
				return in
			},
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {},
			wantFields: []string{"title"},
		},
		{
			name: "validation error - missing mood",
			input: func() DiaryEntryInput {
				in := validInput()
				delete(in, "mood")
				return in
			},
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {},
			wantFields: []string{"mood"},
		},
		{
			name:  "repository error",
			input: validInput,
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErrMsg: "create diary entry: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDiaryEntryRepository)
			svc := NewDiaryEntryService(mRepo, fixedClock(2024, time.June, 10))
			tt.setupMocks(mRepo)

			entry, err := svc.Create(ctx, tt.input())

			switch {
			case tt.wantFields != nil:
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				for _, f := range tt.wantFields {
					assert.Contains(t, verr.Fields, f)
				}
				assert.Len(t, verr.Fields, len(tt.wantFields))
				mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Nil(t, entry)
			default:
				assert.NoError(t, err)
				assert.NotNil(t, entry)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDiaryEntryService_Create_UploadDateUsesClockLocation(t *testing.T) {
	mRepo := new(repoMocks.MockDiaryEntryRepository)
	tz := time.FixedZone("UTC-8", -8*60*60)
	clock := func() time.Time { return time.Date(2024, time.June, 10, 3, 0, 0, 0, time.UTC).In(tz) }
	svc := NewDiaryEntryService(mRepo, clock)

	mRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *model.DiaryEntry) bool {
		return e.UploadDate.String() == "2024-06-09"
	})).Return(&model.DiaryEntry{ID: 1}, nil)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	mRepo.AssertExpectations(t)
}

func TestDiaryEntryService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockDiaryEntryRepository)
		svc := NewDiaryEntryService(mRepo, nil)
		mRepo.On("List", ctx).Return([]model.DiaryEntry{{ID: 2}, {ID: 1}}, nil)

		items, err := svc.List(ctx)

		require.NoError(t, err)
		assert.Len(t, items, 2)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockDiaryEntryRepository)
		svc := NewDiaryEntryService(mRepo, nil)
		mRepo.On("List", ctx).Return(nil, errors.New("db fail"))

		items, err := svc.List(ctx)

		assert.EqualError(t, err, "list diary entries: db fail")
		assert.Nil(t, items)
	})
}

func TestDiaryEntryService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         int64
		setupMocks func(mRepo *repoMocks.MockDiaryEntryRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   1,
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {
				mRepo.On("FindByID", ctx, int64(1)).Return(&model.DiaryEntry{ID: 1}, nil)
			},
		},
		{
			name:       "non-positive id",
			id:         0,
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {},
			wantErr:    ErrNotFound,
		},
		{
			name: "not found - mapping sql.ErrNoRows",
			id:   2,
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {
				mRepo.On("FindByID", ctx, int64(2)).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "generic repository error",
			id:   3,
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {
				mRepo.On("FindByID", ctx, int64(3)).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("get diary entry: db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDiaryEntryRepository)
			svc := NewDiaryEntryService(mRepo, nil)
			tt.setupMocks(mRepo)

			entry, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, ErrNotFound)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}
				assert.Nil(t, entry)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, entry.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDiaryEntryService_Update(t *testing.T) {
	ctx := context.Background()
	mood := "calm"

	tests := []struct {
		name       string
		id         int64
		input      DiaryEntryInput
		partial    bool
		setupMocks func(mRepo *repoMocks.MockDiaryEntryRepository)
		wantErr    error
		wantFields []string
	}{
		{
			name:    "partial mood change",
			id:      4,
			input:   DiaryEntryInput{"mood": "calm", "upload_date": "1990-01-01"},
			partial: true,
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {
				mRepo.On("Update", ctx, int64(4), model.DiaryEntryChanges{Mood: &mood}).
					Return(&model.DiaryEntry{ID: 4, Mood: "calm"}, nil)
			},
		},
		{
			name:       "full update requires every field",
			id:         4,
			input:      DiaryEntryInput{"mood": "calm"},
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {},
			wantFields: []string{"title", "content", "date"},
		},
		{
			name:       "invalid payload is reported before lookup",
			id:         0,
			input:      DiaryEntryInput{"mood": strings.Repeat("m", 51)},
			partial:    true,
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {},
			wantFields: []string{"mood"},
		},
		{
			name:       "non-positive id",
			id:         -1,
			input:      validInput(),
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {},
			wantErr:    ErrNotFound,
		},
		{
			name:  "not found",
			id:    8,
			input: validInput(),
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {
				mRepo.On("Update", ctx, int64(8), mock.Anything).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name:  "repository error",
			id:    8,
			input: validInput(),
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {
				mRepo.On("Update", ctx, int64(8), mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("update diary entry: db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDiaryEntryRepository)
			svc := NewDiaryEntryService(mRepo, nil)
			tt.setupMocks(mRepo)

			entry, err := svc.Update(ctx, tt.id, tt.input, tt.partial)

			switch {
			case tt.wantFields != nil:
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Len(t, verr.Fields, len(tt.wantFields))
				for _, f := range tt.wantFields {
					assert.Contains(t, verr.Fields, f)
				}
			case errors.Is(tt.wantErr, ErrNotFound):
				assert.ErrorIs(t, err, ErrNotFound)
			case tt.wantErr != nil:
				assert.EqualError(t, err, tt.wantErr.Error())
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.id, entry.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDiaryEntryService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         int64
		setupMocks func(mRepo *repoMocks.MockDiaryEntryRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   1,
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {
				mRepo.On("Delete", ctx, int64(1)).Return(nil)
			},
		},
		{
			name:       "non-positive id",
			id:         0,
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {},
			wantErr:    ErrNotFound,
		},
		{
			name: "not found",
			id:   2,
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {
				mRepo.On("Delete", ctx, int64(2)).Return(sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "repository error",
			id:   3,
			setupMocks: func(mRepo *repoMocks.MockDiaryEntryRepository) {
				mRepo.On("Delete", ctx, int64(3)).Return(errors.New("db fail"))
			},
			wantErr: errors.New("delete diary entry: db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDiaryEntryRepository)
			svc := NewDiaryEntryService(mRepo, nil)
			tt.setupMocks(mRepo)

			err := svc.Delete(ctx, tt.id)

			switch {
			case errors.Is(tt.wantErr, ErrNotFound):
				assert.ErrorIs(t, err, ErrNotFound)
			case tt.wantErr != nil:
				assert.EqualError(t, err, tt.wantErr.Error())
			default:
				assert.NoError(t, err)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

// The following exercise the service against the in-memory store end to end.

func TestDiaryEntryService_CreateThenGetRoundTrips(t *testing.T) {
	ctx := context.Background()
	svc := NewDiaryEntryService(memory.NewDiaryEntryMemory(), fixedClock(2024, time.June, 10))

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, model.DiaryEntry{
		ID:         1,
		Title:      "Day 1",
		Content:    "Went hiking",
		Mood:       "happy",
		Date:       model.NewDate(2024, time.May, 1),
		UploadDate: model.NewDate(2024, time.June, 10),
	}, *got)
}

func TestDiaryEntryService_UploadDateSurvivesUpdates(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	svc := NewDiaryEntryService(memory.NewDiaryEntryMemory(), func() time.Time { return now })

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	now = now.AddDate(0, 0, 5)
	full := validInput()
	full["title"] = "Day 1 (edited)"
	full["upload_date"] = "2030-01-01"
	updated, err := svc.Update(ctx, created.ID, full, false)
	require.NoError(t, err)
	assert.Equal(t, created.UploadDate, updated.UploadDate)

	patched, err := svc.Update(ctx, created.ID, DiaryEntryInput{"upload_date": "2030-01-01", "mood": "proud"}, true)
	require.NoError(t, err)
	assert.Equal(t, created.UploadDate, patched.UploadDate)
	assert.Equal(t, "Day 1 (edited)", patched.Title)
	assert.Equal(t, "proud", patched.Mood)
}

func TestDiaryEntryService_ListSortedByUploadDate(t *testing.T) {
	ctx := context.Background()
	var now time.Time
	svc := NewDiaryEntryService(memory.NewDiaryEntryMemory(), func() time.Time { return now })

	for _, d := range []time.Time{
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	} {
		now = d
		_, err := svc.Create(ctx, validInput())
		require.NoError(t, err)
	}

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 4)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i-1].UploadDate.Before(items[i].UploadDate), "entries out of order at %d", i)
	}
	assert.Equal(t, "2024-05-01", items[0].UploadDate.String())
}

func TestDiaryEntryService_InvalidCreateLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	svc := NewDiaryEntryService(memory.NewDiaryEntryMemory(), nil)

	_, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in["title"] = strings.Repeat("a", 256)
	_, err = svc.Create(ctx, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDiaryEntryService_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	svc := NewDiaryEntryService(memory.NewDiaryEntryMemory(), nil)

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}
