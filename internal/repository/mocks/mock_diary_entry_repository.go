package mocks

import (
	"context"

	"diaryapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockDiaryEntryRepository struct {
	mock.Mock
}

func (m *MockDiaryEntryRepository) Create(ctx context.Context, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiaryEntry), args.Error(1)
}

func (m *MockDiaryEntryRepository) FindByID(ctx context.Context, id int64) (*model.DiaryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiaryEntry), args.Error(1)
}

func (m *MockDiaryEntryRepository) List(ctx context.Context) ([]model.DiaryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DiaryEntry), args.Error(1)
}

func (m *MockDiaryEntryRepository) Update(ctx context.Context, id int64, changes model.DiaryEntryChanges) (*model.DiaryEntry, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiaryEntry), args.Error(1)
}

func (m *MockDiaryEntryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
