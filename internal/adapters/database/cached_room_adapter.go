package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
)

// CachedRoomAdapter wraps a RoomRepository with read-through caching
type CachedRoomAdapter struct {
	adapter repositories.RoomRepository
	cache   providers.CacheProvider
}

// NewCachedRoomAdapter creates a new cached room adapter
func NewCachedRoomAdapter(adapter repositories.RoomRepository, cache providers.CacheProvider) repositories.RoomRepository {
	return &CachedRoomAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	roomByIDTTL  = 300
	roomsListTTL = 180
	roomTypesTTL = 600
)

// Cache keys
const (
	roomsListCacheKey = "rooms:list"
	roomTypesCacheKey = "rooms:types"
)

func roomCacheKey(id string) string {
	return fmt.Sprintf("room:%s", id)
}

// GetByID retrieves a room by ID with caching
func (a *CachedRoomAdapter) GetByID(ctx context.Context, id string) (*entities.Room, error) {
	var room entities.Room
	if a.readCache(ctx, roomCacheKey(id), &room) {
		return &room, nil
	}

	found, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.writeCache(ctx, roomCacheKey(id), found, roomByIDTTL)
	return found, nil
}

// List retrieves all rooms with caching
func (a *CachedRoomAdapter) List(ctx context.Context) ([]*entities.Room, error) {
	var rooms []*entities.Room
	if a.readCache(ctx, roomsListCacheKey, &rooms) {
		return rooms, nil
	}

	rooms, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}
	a.writeCache(ctx, roomsListCacheKey, rooms, roomsListTTL)
	return rooms, nil
}

// ListTypes retrieves the distinct room types with caching
func (a *CachedRoomAdapter) ListTypes(ctx context.Context) ([]string, error) {
	var types []string
	if a.readCache(ctx, roomTypesCacheKey, &types) {
		return types, nil
	}

	types, err := a.adapter.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	a.writeCache(ctx, roomTypesCacheKey, types, roomTypesTTL)
	return types, nil
}

// ListAvailable depends on bookings, so it is never cached
func (a *CachedRoomAdapter) ListAvailable(ctx context.Context, period entities.StayPeriod, roomType string) ([]*entities.Room, error) {
	return a.adapter.ListAvailable(ctx, period, roomType)
}

// Create creates a room and invalidates list caches
func (a *CachedRoomAdapter) Create(ctx context.Context, room *entities.Room) error {
	if err := a.adapter.Create(ctx, room); err != nil {
		return err
	}
	a.invalidate(ctx, roomsListCacheKey, roomTypesCacheKey)
	return nil
}

// Update updates a room and invalidates its caches
func (a *CachedRoomAdapter) Update(ctx context.Context, room *entities.Room) error {
	if err := a.adapter.Update(ctx, room); err != nil {
		return err
	}
	a.invalidate(ctx, roomCacheKey(room.ID), roomsListCacheKey, roomTypesCacheKey)
	return nil
}

// Delete deletes a room and invalidates its caches
func (a *CachedRoomAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx, roomCacheKey(id), roomsListCacheKey, roomTypesCacheKey)
	return nil
}

func (a *CachedRoomAdapter) readCache(ctx context.Context, key string, dest interface{}) bool {
	cached, err := a.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(cached, dest); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to unmarshal cached rooms")
		return false
	}
	return true
}

func (a *CachedRoomAdapter) writeCache(ctx context.Context, key string, value interface{}, ttl int) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, ttl); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to cache rooms")
	}
}

func (a *CachedRoomAdapter) invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := a.cache.Delete(ctx, key); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to invalidate room cache")
		}
	}
}
