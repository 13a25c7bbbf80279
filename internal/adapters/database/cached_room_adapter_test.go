package database_test

import (
	"context"
	"errors"
	"path"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/adapters/database"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

var errMiss = errors.New("miss")

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return nil, errMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok, nil
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *entities.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id string) (*entities.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context) ([]*entities.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Room), args.Error(1)
}

func (m *MockRoomRepository) ListTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *entities.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRoomRepository) ListAvailable(ctx context.Context, period entities.StayPeriod, roomType string) ([]*entities.Room, error) {
	args := m.Called(ctx, period, roomType)
	return args.Get(0).([]*entities.Room), args.Error(1)
}

func TestCachedRoomAdapter_GetByID(t *testing.T) {
	t.Run("serves the second read from cache", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		repo := new(MockRoomRepository)
		repo.On("GetByID", ctx, "room-1").Return(&entities.Room{ID: "room-1", RoomType: "Suite"}, nil).Once()
		adapter := database.NewCachedRoomAdapter(repo, newMemoryCache())

		// Act
		first, err1 := adapter.GetByID(ctx, "room-1")
		second, err2 := adapter.GetByID(ctx, "room-1")

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, first.RoomType, second.RoomType)
		repo.AssertNumberOfCalls(t, "GetByID", 1)
	})
}

func TestCachedRoomAdapter_Update(t *testing.T) {
	t.Run("invalidates cached room and listings", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		cache := newMemoryCache()
		repo := new(MockRoomRepository)
		room := &entities.Room{ID: "room-1", RoomType: "Suite"}
		repo.On("List", ctx).Return([]*entities.Room{room}, nil)
		repo.On("GetByID", ctx, "room-1").Return(room, nil)
		repo.On("Update", ctx, room).Return(nil)
		adapter := database.NewCachedRoomAdapter(repo, cache)

		_, _ = adapter.List(ctx)
		_, _ = adapter.GetByID(ctx, "room-1")

		// Act
		err := adapter.Update(ctx, room)

		// Assert
		require.NoError(t, err)
		exists, _ := cache.Exists(ctx, "room:room-1")
		assert.False(t, exists)
		exists, _ = cache.Exists(ctx, "rooms:list")
		assert.False(t, exists)
	})
}

func TestCachedRoomAdapter_ListAvailable(t *testing.T) {
	t.Run("always reads through", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		repo := new(MockRoomRepository)
		period := entities.StayPeriod{}
		repo.On("ListAvailable", ctx, period, "").Return([]*entities.Room{}, nil).Twice()
		adapter := database.NewCachedRoomAdapter(repo, newMemoryCache())

		// Act
		_, _ = adapter.ListAvailable(ctx, period, "")
		_, _ = adapter.ListAvailable(ctx, period, "")

		// Assert
		repo.AssertExpectations(t)
	})
}
