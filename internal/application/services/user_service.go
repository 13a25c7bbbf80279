package services

import (
	"context"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

// UserUpdate holds the editable profile fields
type UserUpdate struct {
	Name        string
	Email       string
	PhoneNumber string
}

// UserService handles accounts, profiles and roles
type UserService struct {
	users    repositories.UserRepository
	bookings repositories.BookingRepository
	hasher   providers.PasswordHasher
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository, bookings repositories.BookingRepository, hasher providers.PasswordHasher) *UserService {
	return &UserService{
		users:    users,
		bookings: bookings,
		hasher:   hasher,
	}
}

// List returns every user, newest first
func (s *UserService) List(ctx context.Context) ([]*entities.User, error) {
	return s.users.List(ctx)
}

// GetByID returns a user
func (s *UserService) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetMyInfo returns the calling user's profile
func (s *UserService) GetMyInfo(ctx context.Context, actor entities.Actor) (*entities.User, error) {
	return s.users.GetByID(ctx, actor.UserID)
}

// BookingHistory returns a user with their bookings, each with its room
func (s *UserService) BookingHistory(ctx context.Context, id string) (*entities.User, []*entities.Booking, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	bookings, err := s.bookings.ListByUser(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return user, bookings, nil
}

// Delete removes a user unless they are the last ADMIN
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.IsAdmin() {
		admins, err := s.users.CountByRole(ctx, entities.RoleAdmin)
		if err != nil {
			return err
		}
		if admins <= entities.MinAdmins {
			return apperrors.NewValidationError("Cannot delete the last admin user. At least one admin must remain in the system.")
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	observability.LoggerFromContext(ctx).Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// Update changes name, phone and email after re-checking the current
// password. Only the user or an ADMIN may update a profile.
func (s *UserService) Update(ctx context.Context, actor entities.Actor, id string, patch UserUpdate, currentPassword string) (*entities.User, error) {
	if !actor.CanAccess(id) {
		return nil, apperrors.NewForbiddenError("You can only update your own profile")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(user.Password, currentPassword); err != nil {
		return nil, apperrors.NewValidationError("Current password is incorrect")
	}

	user.Name = patch.Name
	user.PhoneNumber = patch.PhoneNumber

	if patch.Email != "" && patch.Email != user.Email {
		taken, err := s.users.ExistsByEmail(ctx, patch.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("Email is already taken")
		}
		user.Email = patch.Email
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangeRole assigns newRole while keeping between one and two ADMINs
func (s *UserService) ChangeRole(ctx context.Context, id, newRole string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if newRole == "" {
		return apperrors.NewValidationError("Role cannot be empty")
	}
	role, ok := entities.ParseRole(newRole)
	if !ok || role == "" {
		return apperrors.NewValidationError(msgInvalidRole)
	}

	if role == entities.RoleAdmin || user.IsAdmin() {
		admins, err := s.users.CountByRole(ctx, entities.RoleAdmin)
		if err != nil {
			return err
		}
		after := entities.AdminCountAfter(admins, user, role)
		if after > entities.MaxAdmins {
			return apperrors.NewValidationError(msgTooManyAdmins)
		}
		if after < entities.MinAdmins {
			return apperrors.NewValidationError("Cannot remove the last admin user. At least one admin must remain in the system.")
		}
	}

	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	observability.LoggerFromContext(ctx).Info().Str("user_id", id).Str("role", string(role)).Msg("user role changed")
	return nil
}

// RoleStatistics counts users per role
func (s *UserService) RoleStatistics(ctx context.Context) (*entities.RoleStats, error) {
	stats := &entities.RoleStats{}
	counts := []struct {
		role entities.Role
		dest *int64
	}{
		{entities.RoleAdmin, &stats.Admin},
		{entities.RoleUser, &stats.User},
		{entities.RoleReceptionist, &stats.Receptionist},
	}
	for _, c := range counts {
		n, err := s.users.CountByRole(ctx, c.role)
		if err != nil {
			return nil, err
		}
		*c.dest = n
		stats.Total += n
	}
	return stats, nil
}
