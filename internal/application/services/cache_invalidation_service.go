package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
)

// HTTP cache key patterns, matching the keys written by the cache middleware
const (
	roomsHTTPCachePattern   = "http:cache:/rooms/*"
	reviewsHTTPCachePattern = "http:cache:/reviews/*"
)

// CacheInvalidationService drops cached HTTP responses when hotel events arrive
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	started  bool
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins listening for events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelHotelUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to hotel updates: %w", err)
	}

	s.started = true
	go s.processEvents(eventChan)
	observability.GetLogger().Info().Msg("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service and waits for the listener to exit
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	if !s.started {
		return
	}
	<-s.done
	observability.GetLogger().Info().Msg("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.HotelEvent) {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			s.HandleEvent(event)
		}
	}
}

// HandleEvent invalidates the cached responses an event makes stale. Room
// responses embed bookings and availability, so booking events clear them too.
func (s *CacheInvalidationService) HandleEvent(event *entities.HotelEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger := observability.GetLogger()
	logger.Debug().Str("event_id", event.ID).Str("type", string(event.Type)).Msg("Processing cache invalidation")

	var err error
	switch event.Type {
	case entities.HotelEventRoomChanged, entities.HotelEventBookingCreated, entities.HotelEventBookingCancelled:
		err = s.InvalidateRoomCaches(ctx)
	case entities.HotelEventReviewChanged:
		err = s.InvalidateReviewCaches(ctx)
	default:
		return
	}
	if err != nil {
		logger.Warn().Err(err).Str("event_id", event.ID).Msg("Failed to invalidate cache")
	}
}

// InvalidateRoomCaches drops every cached room response
func (s *CacheInvalidationService) InvalidateRoomCaches(ctx context.Context) error {
	if err := s.cache.DeletePattern(ctx, roomsHTTPCachePattern); err != nil {
		return fmt.Errorf("failed to invalidate room caches: %w", err)
	}
	return nil
}

// InvalidateReviewCaches drops every cached review response
func (s *CacheInvalidationService) InvalidateReviewCaches(ctx context.Context) error {
	if err := s.cache.DeletePattern(ctx, reviewsHTTPCachePattern); err != nil {
		return fmt.Errorf("failed to invalidate review caches: %w", err)
	}
	return nil
}
