package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/dto"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

// BookingService defines the reservation operations used by the handler.
type BookingService interface {
	Book(ctx context.Context, actor entities.Actor, roomID, userID string, req services.BookingRequest) (*entities.Booking, error)
	GetByConfirmationCode(ctx context.Context, code string) (*entities.Booking, error)
	GetMyBooking(ctx context.Context, actor entities.Actor, code string) (*entities.Booking, error)
	List(ctx context.Context) ([]*entities.Booking, error)
	Cancel(ctx context.Context, actor entities.Actor, id string) error
}

// BookingHandler handles reservation requests
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type bookingRequest struct {
	CheckInDate   string `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate  string `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	NumOfAdults   int    `json:"numOfAdults" validate:"min=1"`
	NumOfChildren int    `json:"numOfChildren" validate:"min=0"`
}

// Book handles POST /bookings/book-room/{roomId}/{userId}
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithError(w, r, err, "saving booking")
		return
	}

	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err, "saving booking")
		return
	}
	checkIn, err := parseDate(req.CheckInDate, "checkInDate")
	if err != nil {
		respondWithError(w, r, err, "saving booking")
		return
	}
	checkOut, err := parseDate(req.CheckOutDate, "checkOutDate")
	if err != nil {
		respondWithError(w, r, err, "saving booking")
		return
	}

	booking, err := h.service.Book(r.Context(), actor, r.PathValue("roomId"), r.PathValue("userId"), services.BookingRequest{
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		NumOfAdults:   req.NumOfAdults,
		NumOfChildren: req.NumOfChildren,
	})
	if err != nil {
		respondWithError(w, r, err, "saving booking")
		return
	}

	respondOK(w, dto.Response{
		Message:                 "Booking successful",
		BookingConfirmationCode: booking.ConfirmationCode,
	})
}

// List handles GET /bookings/all
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, r, err, "getting all bookings")
		return
	}
	respondOK(w, dto.Response{BookingList: dto.BookingsWithRelations(bookings)})
}

// GetByConfirmationCode handles GET /bookings/get-by-confirmation-code/{code}
func (h *BookingHandler) GetByConfirmationCode(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetByConfirmationCode(r.Context(), r.PathValue("code"))
	if err != nil {
		respondWithError(w, r, err, "finding booking")
		return
	}
	view := dto.BookingWithRelations(booking)
	respondOK(w, dto.Response{Message: "Booking found successfully", Booking: &view})
}

// MyBooking handles GET /bookings/my-booking/{code}
func (h *BookingHandler) MyBooking(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithError(w, r, err, "finding booking")
		return
	}

	booking, err := h.service.GetMyBooking(r.Context(), actor, r.PathValue("code"))
	if err != nil {
		respondWithError(w, r, err, "finding booking")
		return
	}
	view := dto.BookingWithRelations(booking)
	respondOK(w, dto.Response{Message: "Booking found successfully", Booking: &view})
}

// Cancel handles DELETE /bookings/cancel/{bookingId}
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithError(w, r, err, "cancelling booking")
		return
	}

	if err := h.service.Cancel(r.Context(), actor, r.PathValue("bookingId")); err != nil {
		respondWithError(w, r, err, "cancelling booking")
		return
	}
	respondOK(w, dto.Response{})
}
