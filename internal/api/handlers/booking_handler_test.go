package handlers_test

import (
	"context"
	"errors"
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

type stubBookingService struct {
	booked    services.BookingRequest
	bookActor entities.Actor
	bookErr   error
	booking   *entities.Booking
	listErr   error
}

func (s *stubBookingService) Book(ctx context.Context, actor entities.Actor, roomID, userID string, req services.BookingRequest) (*entities.Booking, error) {
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	s.booked, s.bookActor = req, actor
	return &entities.Booking{ID: "b-1", RoomID: roomID, UserID: userID, ConfirmationCode: "K3Y9QZ0A1B"}, nil
}

func (s *stubBookingService) GetByConfirmationCode(ctx context.Context, code string) (*entities.Booking, error) {
	if s.booking == nil || s.booking.ConfirmationCode != code {
		return nil, apperrors.NewNotFoundError("Booking Not Found")
	}
	return s.booking, nil
}

func (s *stubBookingService) GetMyBooking(ctx context.Context, actor entities.Actor, code string) (*entities.Booking, error) {
	b, err := s.GetByConfirmationCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(b.UserID) {
		return nil, apperrors.NewForbiddenError("You can only view your own bookings")
	}
	return b, nil
}

func (s *stubBookingService) List(ctx context.Context) ([]*entities.Booking, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return []*entities.Booking{s.booking}, nil
}

func (s *stubBookingService) Cancel(ctx context.Context, actor entities.Actor, id string) error {
	return nil
}

func TestBookingHandler_Book(t *testing.T) {
	t.Run("successfully returns the confirmation code", func(t *testing.T) {
		// Arrange
		service := &stubBookingService{}
		handler := handlers.NewBookingHandler(service)
		body := `{"checkInDate":"2030-05-01","checkOutDate":"2030-05-04","numOfAdults":2,"numOfChildren":1}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/book-room/r-1/user-1", strings.NewReader(body))
		req.SetPathValue("roomId", "r-1")
		req.SetPathValue("userId", "user-1")
		w := httptest.NewRecorder()

		// Act
		handler.Book(w, asActor(req, guestActor))

		// Assert
		resp := decodeEnvelope(t, w)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "K3Y9QZ0A1B", resp.BookingConfirmationCode)
		assert.Equal(t, "Booking successful", resp.Message)
		assert.Equal(t, 2, service.booked.NumOfAdults)
		assert.Equal(t, "2030-05-04", service.booked.CheckOutDate.Format("2006-01-02"))
		assert.Equal(t, guestActor, service.bookActor)
	})

	t.Run("requires at least one adult", func(t *testing.T) {
		handler := handlers.NewBookingHandler(&stubBookingService{})
		body := `{"checkInDate":"2030-05-01","checkOutDate":"2030-05-04","numOfAdults":0}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/book-room/r-1/user-1", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Book(w, asActor(req, guestActor))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "numOfAdults must be at least 1", decodeEnvelope(t, w).Message)
	})

	t.Run("reports an unavailable room as 400", func(t *testing.T) {
		handler := handlers.NewBookingHandler(&stubBookingService{bookErr: apperrors.NewValidationError("Room is not available for that date range")})
		body := `{"checkInDate":"2030-05-01","checkOutDate":"2030-05-04","numOfAdults":1}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/book-room/r-1/user-1", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Book(w, asActor(req, guestActor))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Room is not available for that date range", decodeEnvelope(t, w).Message)
	})
}

func TestBookingHandler_MyBooking(t *testing.T) {
	booking := &entities.Booking{
		ID: "b-1", UserID: "someone-else", ConfirmationCode: "ABCDEFGHIJ",
		User: &entities.User{ID: "someone-else"}, Room: &entities.Room{ID: "r-1"},
	}

	t.Run("successfully returns a booking to an admin", func(t *testing.T) {
		handler := handlers.NewBookingHandler(&stubBookingService{booking: booking})
		req := httptest.NewRequest(http.MethodGet, "/bookings/my-booking/ABCDEFGHIJ", nil)
		req.SetPathValue("code", "ABCDEFGHIJ")
		w := httptest.NewRecorder()

		handler.MyBooking(w, asActor(req, adminActor))

		resp := decodeEnvelope(t, w)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "r-1", resp.Booking.Room.ID)
	})

	t.Run("answers 403 for another guest's booking", func(t *testing.T) {
		handler := handlers.NewBookingHandler(&stubBookingService{booking: booking})
		req := httptest.NewRequest(http.MethodGet, "/bookings/my-booking/ABCDEFGHIJ", nil)
		req.SetPathValue("code", "ABCDEFGHIJ")
		w := httptest.NewRecorder()

		handler.MyBooking(w, asActor(req, guestActor))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestBookingHandler_List_InternalError(t *testing.T) {
	handler := handlers.NewBookingHandler(&stubBookingService{listErr: apperrors.NewInternalError("failed to list bookings", errors.New("connection reset"))})
	w := httptest.NewRecorder()

	handler.List(w, httptest.NewRequest(http.MethodGet, "/bookings/all", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error getting all bookings: connection reset", decodeEnvelope(t, w).Message)
}
