package repositories

import (
	"context"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

// ReviewFilter narrows review listings. Results are ordered newest first.
type ReviewFilter struct {
	Approved  *bool
	RoomID    string
	UserID    string
	HotelOnly bool
}

// ReviewRepository defines the interface for review operations
type ReviewRepository interface {
	// Create creates a new review
	Create(ctx context.Context, review *entities.Review) error

	// GetByID retrieves a review by ID with its author, room and booking
	GetByID(ctx context.Context, id string) (*entities.Review, error)

	// List retrieves reviews matching filter
	List(ctx context.Context, filter ReviewFilter) ([]*entities.Review, error)

	// ExistsByBookingAndUser reports whether userID already reviewed bookingID
	ExistsByBookingAndUser(ctx context.Context, bookingID, userID string) (bool, error)

	// Update updates content, ratings and approval
	Update(ctx context.Context, review *entities.Review) error

	// SetApproved changes the approval flag
	SetApproved(ctx context.Context, id string, approved bool) error

	// Delete deletes a review
	Delete(ctx context.Context, id string) error

	// Stats counts reviews by moderation state
	Stats(ctx context.Context) (*entities.ReviewStats, error)

	// AverageRatings averages each category over approved reviews
	AverageRatings(ctx context.Context) (*entities.AverageRatings, error)
}
