package services

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const (
	confirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeAttempts         = 3
)

// BookingRequest holds the guest's stay details
type BookingRequest struct {
	CheckInDate   time.Time
	CheckOutDate  time.Time
	NumOfAdults   int
	NumOfChildren int
}

// BookingService handles reservations
type BookingService struct {
	bookings      repositories.BookingRepository
	rooms         repositories.RoomRepository
	users         repositories.UserRepository
	notifications *NotificationService
	events        providers.EventBus
	metrics       *observability.Metrics
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookings repositories.BookingRepository,
	rooms repositories.RoomRepository,
	users repositories.UserRepository,
	notifications *NotificationService,
	events providers.EventBus,
	metrics *observability.Metrics,
) *BookingService {
	return &BookingService{
		bookings:      bookings,
		rooms:         rooms,
		users:         users,
		notifications: notifications,
		events:        events,
		metrics:       metrics,
	}
}

// Book reserves roomID for userID. Non-admin actors may only book for
// themselves. The stay must not overlap or touch another booking of the room.
func (s *BookingService) Book(ctx context.Context, actor entities.Actor, roomID, userID string, req BookingRequest) (*entities.Booking, error) {
	ctx, span := observability.StartSpan(ctx, "BookingService.Book")
	defer span.End()

	period := entities.NewStayPeriod(req.CheckInDate, req.CheckOutDate)
	if err := period.Validate(time.Now()); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !actor.CanAccess(userID) {
		return nil, apperrors.NewForbiddenError("You can only book rooms for yourself")
	}
	if req.NumOfAdults < 1 {
		return nil, apperrors.NewValidationError("At least one adult is required")
	}
	if req.NumOfChildren < 0 {
		return nil, apperrors.NewValidationError("Number of children cannot be negative")
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	booking := &entities.Booking{
		RoomID:        room.ID,
		UserID:        user.ID,
		CheckInDate:   period.CheckIn,
		CheckOutDate:  period.CheckOut,
		NumOfAdults:   req.NumOfAdults,
		NumOfChildren: req.NumOfChildren,
		Status:        entities.BookingStatusConfirmed,
	}
	booking.CalculateTotalGuests()

	if err := s.create(ctx, booking); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	booking.Room = room
	booking.User = user

	if s.metrics != nil {
		observability.RecordCount(ctx, s.metrics.BookingsCreated, 1, attribute.String("room_type", room.RoomType))
	}

	if err := s.notifications.SendBookingConfirmation(ctx, user, booking); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to send booking confirmation email")
	}

	event := entities.NewHotelEvent(entities.HotelEventBookingCreated)
	event.RoomID = booking.RoomID
	event.BookingID = booking.ID
	publishEvent(ctx, s.events, event)

	return booking, nil
}

// create inserts booking, drawing a fresh confirmation code on collision
func (s *BookingService) create(ctx context.Context, booking *entities.Booking) error {
	for attempt := 1; ; attempt++ {
		code, err := NewConfirmationCode()
		if err != nil {
			return apperrors.NewInternalError("failed to generate confirmation code", err)
		}
		booking.ID = uuid.New().String()
		booking.ConfirmationCode = code
		booking.CreatedAt = time.Now().UTC()

		ok, err := s.bookings.CreateIfAvailable(ctx, booking)
		if apperrors.IsType(err, apperrors.ErrorTypeConflict) && attempt < codeAttempts {
			continue
		}
		if err != nil {
			return err
		}
		if !ok {
			if s.metrics != nil {
				observability.RecordCount(ctx, s.metrics.BookingsRejected, 1)
			}
			return apperrors.NewValidationError("Room is not available for that date range")
		}
		return nil
	}
}

// GetByConfirmationCode returns a booking with its user and room
func (s *BookingService) GetByConfirmationCode(ctx context.Context, code string) (*entities.Booking, error) {
	return s.bookings.GetByConfirmationCode(ctx, code)
}

// GetMyBooking returns a booking the actor owns, or any booking for an ADMIN
func (s *BookingService) GetMyBooking(ctx context.Context, actor entities.Actor, code string) (*entities.Booking, error) {
	booking, err := s.bookings.GetByConfirmationCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(booking.UserID) {
		return nil, apperrors.NewForbiddenError("You can only view your own bookings")
	}
	return booking, nil
}

// List returns every booking, newest first
func (s *BookingService) List(ctx context.Context) ([]*entities.Booking, error) {
	return s.bookings.List(ctx)
}

// Cancel deletes a booking owned by the actor, or any booking for an ADMIN
func (s *BookingService) Cancel(ctx context.Context, actor entities.Actor, id string) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return apperrors.NewNotFoundError("Booking Does Not Exist")
	}
	if err != nil {
		return err
	}
	if !actor.CanAccess(booking.UserID) {
		return apperrors.NewForbiddenError("You can only cancel your own bookings")
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}

	event := entities.NewHotelEvent(entities.HotelEventBookingCancelled)
	event.RoomID = booking.RoomID
	event.BookingID = booking.ID
	publishEvent(ctx, s.events, event)
	return nil
}

// NewConfirmationCode draws a random code of uppercase letters and digits
func NewConfirmationCode() (string, error) {
	max := big.NewInt(int64(len(confirmationAlphabet)))
	code := make([]byte, entities.ConfirmationCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = confirmationAlphabet[n.Int64()]
	}
	return string(code), nil
}
