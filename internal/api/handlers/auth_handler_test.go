package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/api/handlers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

type stubAuthService struct {
	registered  []services.RegisterInput
	registerErr error
	login       *services.LoginResult
	loginErr    error
}

func (s *stubAuthService) Register(ctx context.Context, in services.RegisterInput) (*entities.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.registered = append(s.registered, in)
	return &entities.User{ID: "u-1", Name: in.Name, Email: in.Email, Role: entities.RoleUser, Password: "hash"}, nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	return s.login, s.loginErr
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("successfully registers and hides the password", func(t *testing.T) {
		// Arrange
		service := &stubAuthService{}
		handler := handlers.NewAuthHandler(service)
		body := `{"name":"Ada","email":"ada@hotel.test","password":"secret","phoneNumber":"0800"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		w := httptest.NewRecorder()

		// Act
		handler.Register(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "hash")
		resp := decodeEnvelope(t, w)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "ada@hotel.test", resp.User.Email)
		assert.Len(t, service.registered, 1)
	})

	t.Run("rejects an invalid email before calling the service", func(t *testing.T) {
		service := &stubAuthService{}
		handler := handlers.NewAuthHandler(service)
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"name":"Ada","email":"nope","password":"x"}`))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "email must be a valid email address", decodeEnvelope(t, w).Message)
		assert.Empty(t, service.registered)
	})

	t.Run("maps a duplicate email conflict to 400", func(t *testing.T) {
		handler := handlers.NewAuthHandler(&stubAuthService{registerErr: apperrors.NewConflictError("ada@hotel.test is already registered")})
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"name":"Ada","email":"ada@hotel.test","password":"x"}`))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ada@hotel.test is already registered", decodeEnvelope(t, w).Message)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successfully returns token, role and expiration", func(t *testing.T) {
		handler := handlers.NewAuthHandler(&stubAuthService{login: &services.LoginResult{
			Token:          "jwt",
			ExpirationTime: "7 Days",
			User:           &entities.User{ID: "u-1", Role: entities.RoleAdmin},
		}})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ada@hotel.test","password":"secret"}`))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		resp := decodeEnvelope(t, w)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "jwt", resp.Token)
		assert.Equal(t, "ADMIN", resp.Role)
		assert.Equal(t, "7 Days", resp.ExpirationTime)
	})

	t.Run("reports invalid credentials as 400", func(t *testing.T) {
		handler := handlers.NewAuthHandler(&stubAuthService{loginErr: apperrors.NewValidationError("Invalid credentials")})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ada@hotel.test","password":"wrong"}`))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid credentials", decodeEnvelope(t, w).Message)
	})

	t.Run("reports malformed JSON as 400", func(t *testing.T) {
		handler := handlers.NewAuthHandler(&stubAuthService{})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{`))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
