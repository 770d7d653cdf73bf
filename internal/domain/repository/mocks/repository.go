// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockHistoryRepository is a mock repository.HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

var _ repository.HistoryRepository = (*MockHistoryRepository)(nil)

// NewMockHistoryRepository creates a mock that asserts its expectations on cleanup.
func NewMockHistoryRepository(t testingT) *MockHistoryRepository {
	m := &MockHistoryRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHistoryRepository) Save(ctx context.Context, entry *entity.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error) {
	args := m.Called(ctx, url)
	entry, _ := args.Get(0).(*entity.HistoryEntry)
	return entry, args.Error(1)
}

func (m *MockHistoryRepository) Search(ctx context.Context, query string, limit int) ([]*entity.HistoryEntry, error) {
	args := m.Called(ctx, query, limit)
	entries, _ := args.Get(0).([]*entity.HistoryEntry)
	return entries, args.Error(1)
}

func (m *MockHistoryRepository) GetRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error) {
	args := m.Called(ctx, limit, offset)
	entries, _ := args.Get(0).([]*entity.HistoryEntry)
	return entries, args.Error(1)
}

func (m *MockHistoryRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockHistoryRepository) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockBookmarkRepository is a mock repository.BookmarkRepository.
type MockBookmarkRepository struct {
	mock.Mock
}

var _ repository.BookmarkRepository = (*MockBookmarkRepository)(nil)

// NewMockBookmarkRepository creates a mock that asserts its expectations on cleanup.
func NewMockBookmarkRepository(t testingT) *MockBookmarkRepository {
	m := &MockBookmarkRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBookmarkRepository) Save(ctx context.Context, b *entity.Bookmark) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookmarkRepository) FindByURL(ctx context.Context, url string) (*entity.Bookmark, error) {
	args := m.Called(ctx, url)
	b, _ := args.Get(0).(*entity.Bookmark)
	return b, args.Error(1)
}

func (m *MockBookmarkRepository) GetAll(ctx context.Context) ([]*entity.Bookmark, error) {
	args := m.Called(ctx)
	all, _ := args.Get(0).([]*entity.Bookmark)
	return all, args.Error(1)
}

func (m *MockBookmarkRepository) Delete(ctx context.Context, id entity.BookmarkID) error {
	return m.Called(ctx, id).Error(0)
}

// MockKeyValueRepository is a mock repository.KeyValueRepository.
type MockKeyValueRepository struct {
	mock.Mock
}

var _ repository.KeyValueRepository = (*MockKeyValueRepository)(nil)

// NewMockKeyValueRepository creates a mock that asserts its expectations on cleanup.
func NewMockKeyValueRepository(t testingT) *MockKeyValueRepository {
	m := &MockKeyValueRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockKeyValueRepository) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockKeyValueRepository) Save(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockKeyValueRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
