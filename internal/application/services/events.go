package services

import (
	"context"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
)

// publishEvent announces a change on the hotel updates channel. Publishing is
// best effort: a failure is logged and the request carries on.
func publishEvent(ctx context.Context, bus providers.EventBus, event *entities.HotelEvent) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, providers.EventChannelHotelUpdates, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("type", string(event.Type)).Msg("failed to publish hotel event")
	}
}
