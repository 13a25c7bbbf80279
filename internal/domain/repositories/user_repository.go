package repositories

import (
	"context"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// ExistsByEmail reports whether an account uses email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List retrieves all users, newest first
	List(ctx context.Context) ([]*entities.User, error)

	// Count returns the number of users
	Count(ctx context.Context) (int64, error)

	// CountByRole returns the number of users holding role
	CountByRole(ctx context.Context, role entities.Role) (int64, error)

	// Update updates profile fields and role
	Update(ctx context.Context, user *entities.User) error

	// Delete deletes a user and their bookings
	Delete(ctx context.Context, id string) error
}
