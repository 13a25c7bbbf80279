package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/dto"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

// UserService defines the account management operations used by the handler.
type UserService interface {
	List(ctx context.Context) ([]*entities.User, error)
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetMyInfo(ctx context.Context, actor entities.Actor) (*entities.User, error)
	BookingHistory(ctx context.Context, id string) (*entities.User, []*entities.Booking, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, actor entities.Actor, id string, patch services.UserUpdate, currentPassword string) (*entities.User, error)
	ChangeRole(ctx context.Context, id, newRole string) error
	RoleStatistics(ctx context.Context) (*entities.RoleStats, error)
}

// UserHandler handles user account requests
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
}

// List handles GET /users/all
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, r, err, "getting all users")
		return
	}
	respondOK(w, dto.Response{UserList: dto.UsersFromEntities(users)})
}

// GetByID handles GET /users/get-by-id/{userId}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByID(r.Context(), r.PathValue("userId"))
	if err != nil {
		respondWithError(w, r, err, "getting user")
		return
	}
	view := dto.UserFromEntity(user)
	respondOK(w, dto.Response{User: &view})
}

// Profile handles GET /users/get-logged-in-profile-info
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithError(w, r, err, "getting user info")
		return
	}

	user, err := h.service.GetMyInfo(r.Context(), actor)
	if err != nil {
		respondWithError(w, r, err, "getting user info")
		return
	}
	view := dto.UserFromEntity(user)
	respondOK(w, dto.Response{User: &view})
}

// BookingHistory handles GET /users/get-user-bookings/{userId}
func (h *UserHandler) BookingHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	user, bookings, err := h.service.BookingHistory(r.Context(), userID)
	if err != nil {
		respondWithError(w, r, err, "getting user bookings")
		return
	}
	if len(bookings) == 0 {
		respondWithStatus(w, http.StatusNotFound, fmt.Sprintf("No bookings found for user ID: %s", userID))
		return
	}

	view := dto.UserWithBookings(user, bookings)
	respondOK(w, dto.Response{User: &view})
}

// Delete handles DELETE /users/delete/{userId}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("userId")); err != nil {
		respondWithError(w, r, err, "deleting user")
		return
	}
	respondOK(w, dto.Response{})
}

// Update handles PUT /users/update/{userId}?currentPassword=
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithError(w, r, err, "updating user")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err, "updating user")
		return
	}

	user, err := h.service.Update(r.Context(), actor, r.PathValue("userId"), services.UserUpdate{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}, r.URL.Query().Get("currentPassword"))
	if err != nil {
		respondWithError(w, r, err, "updating user")
		return
	}

	view := dto.UserFromEntity(user)
	respondOK(w, dto.Response{Message: "Profile updated successfully", User: &view})
}

// ChangeRole handles PUT /users/change-role/{userId}?newRole=
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ChangeRole(r.Context(), r.PathValue("userId"), r.URL.Query().Get("newRole")); err != nil {
		respondWithError(w, r, err, "updating user role")
		return
	}
	respondOK(w, dto.Response{Message: "User role updated successfully"})
}

// RoleStatistics handles GET /users/role-stats
func (h *UserHandler) RoleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.RoleStatistics(r.Context())
	if err != nil {
		respondWithError(w, r, err, "getting role statistics")
		return
	}
	respondOK(w, dto.Response{Message: "Role statistics retrieved successfully", RoleStats: stats})
}
