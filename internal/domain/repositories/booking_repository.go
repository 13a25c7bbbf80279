package repositories

import (
	"context"
	"time"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	// CreateIfAvailable inserts booking unless it overlaps an existing booking
	// of the same room. The check and insert are atomic per room.
	CreateIfAvailable(ctx context.Context, booking *entities.Booking) (bool, error)

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// GetByConfirmationCode retrieves a booking with its user and room
	GetByConfirmationCode(ctx context.Context, code string) (*entities.Booking, error)

	// List retrieves all bookings with user and room, newest first
	List(ctx context.Context) ([]*entities.Booking, error)

	// ListByRoom retrieves the bookings of a room
	ListByRoom(ctx context.Context, roomID string) ([]*entities.Booking, error)

	// ListByUser retrieves a user's bookings with their rooms
	ListByUser(ctx context.Context, userID string) ([]*entities.Booking, error)

	// ListCompletedForFeedback retrieves bookings that checked out on day and
	// have not had a feedback request, with their users
	ListCompletedForFeedback(ctx context.Context, day time.Time) ([]*entities.Booking, error)

	// MarkFeedbackSent flags a booking as having received its feedback request
	MarkFeedbackSent(ctx context.Context, id string) error

	// Delete deletes a booking
	Delete(ctx context.Context, id string) error
}
