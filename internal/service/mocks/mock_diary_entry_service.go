package mocks

import (
	"context"

	"diaryapi/internal/model"
	"diaryapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDiaryEntryService struct {
	mock.Mock
}

func (m *MockDiaryEntryService) List(ctx context.Context) ([]model.DiaryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DiaryEntry), args.Error(1)
}

func (m *MockDiaryEntryService) Create(ctx context.Context, in service.DiaryEntryInput) (*model.DiaryEntry, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiaryEntry), args.Error(1)
}

func (m *MockDiaryEntryService) Get(ctx context.Context, id int64) (*model.DiaryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiaryEntry), args.Error(1)
}

func (m *MockDiaryEntryService) Update(ctx context.Context, id int64, in service.DiaryEntryInput, partial bool) (*model.DiaryEntry, error) {
	args := m.Called(ctx, id, in, partial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiaryEntry), args.Error(1)
}

func (m *MockDiaryEntryService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
