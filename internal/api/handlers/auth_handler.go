package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/dto"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

// AuthService defines the account operations used by the handler.
type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*entities.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

// AuthHandler handles registration and login
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err, "during user registration")
		return
	}

	user, err := h.service.Register(r.Context(), services.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		respondWithError(w, r, err, "during user registration")
		return
	}

	view := dto.UserFromEntity(user)
	respondOK(w, dto.Response{User: &view})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err, "during user login")
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, r, err, "during user login")
		return
	}

	respondOK(w, dto.Response{
		Message:        "Successfully logged in",
		Token:          result.Token,
		Role:           string(result.User.Role),
		ExpirationTime: result.ExpirationTime,
	})
}
