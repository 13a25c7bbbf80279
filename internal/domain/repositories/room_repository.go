package repositories

import (
	"context"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

// RoomRepository defines the interface for room data operations
type RoomRepository interface {
	Create(ctx context.Context, room *entities.Room) error
	GetByID(ctx context.Context, id string) (*entities.Room, error)
	List(ctx context.Context) ([]*entities.Room, error)
	ListTypes(ctx context.Context) ([]string, error)
	Update(ctx context.Context, room *entities.Room) error
	Delete(ctx context.Context, id string) error

	// ListAvailable returns rooms of roomType with no booking overlapping
	// period. An empty roomType matches every type.
	ListAvailable(ctx context.Context, period entities.StayPeriod, roomType string) ([]*entities.Room, error)
}
