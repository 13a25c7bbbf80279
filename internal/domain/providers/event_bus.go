package providers

import (
	"context"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

// EventChannelHotelUpdates carries every room, booking and review change
const EventChannelHotelUpdates = "hotel:updates"

// EventBus fans hotel events out to every running instance. Services accept a
// nil EventBus and then publish nothing.
type EventBus interface {
	Publish(ctx context.Context, channel string, event *entities.HotelEvent) error
	// Subscribe returns a channel that is closed when ctx ends, the channel is
	// unsubscribed or the bus is closed.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.HotelEvent, error)
	Unsubscribe(ctx context.Context, channel string) error
	Close() error
}
