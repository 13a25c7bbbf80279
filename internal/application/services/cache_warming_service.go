package services

import (
	"context"
	"time"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
)

// RoomCacheWarmingService keeps the room listings hot in the read-through cache
type RoomCacheWarmingService struct {
	rooms repositories.RoomRepository
}

// NewRoomCacheWarmingService creates a warming service over a cached room
// repository
func NewRoomCacheWarmingService(rooms repositories.RoomRepository) *RoomCacheWarmingService {
	return &RoomCacheWarmingService{rooms: rooms}
}

// WarmCache loads the room list, the room types and each room
func (s *RoomCacheWarmingService) WarmCache(ctx context.Context) error {
	logger := observability.LoggerFromContext(ctx)

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return err
	}
	if _, err := s.rooms.ListTypes(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to warm room types")
	}
	for _, room := range rooms {
		if _, err := s.rooms.GetByID(ctx, room.ID); err != nil {
			logger.Warn().Err(err).Str("room_id", room.ID).Msg("Failed to warm room")
		}
	}

	logger.Debug().Int("rooms", len(rooms)).Msg("Warmed room cache")
	return nil
}

// StartPeriodicWarming warms once, then again every interval until ctx is done
func (s *RoomCacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	logger := observability.GetLogger()
	if err := s.WarmCache(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial cache warming failed")
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info().Msg("Stopping cache warming service")
				return
			case <-ticker.C:
				if err := s.WarmCache(ctx); err != nil {
					logger.Warn().Err(err).Msg("Periodic cache warming failed")
				}
			}
		}
	}()
	logger.Info().Dur("interval", interval).Msg("Started periodic cache warming")
}
