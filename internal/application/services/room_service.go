package services

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

// Photo is an uploaded room image
type Photo struct {
	Filename string
	Content  io.Reader
}

// RoomInput holds room fields. Zero values mean "unchanged" on update.
type RoomInput struct {
	RoomType        string
	RoomPrice       *float64
	RoomDescription string
	Photos          []Photo
}

// RoomService handles room inventory and availability
type RoomService struct {
	rooms    repositories.RoomRepository
	bookings repositories.BookingRepository
	photos   providers.PhotoStore
	events   providers.EventBus
}

// NewRoomService creates a new room service
func NewRoomService(
	rooms repositories.RoomRepository,
	bookings repositories.BookingRepository,
	photos providers.PhotoStore,
	events providers.EventBus,
) *RoomService {
	return &RoomService{
		rooms:    rooms,
		bookings: bookings,
		photos:   photos,
		events:   events,
	}
}

// Add creates a room, uploading its photos first
func (s *RoomService) Add(ctx context.Context, in RoomInput) (*entities.Room, error) {
	if strings.TrimSpace(in.RoomType) == "" || in.RoomPrice == nil {
		return nil, apperrors.NewValidationError("Please provide values for all fields (roomType, roomPrice)")
	}
	if *in.RoomPrice < 0 {
		return nil, apperrors.NewValidationError("Room price cannot be negative")
	}

	urls, err := s.upload(ctx, in.Photos)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	room := &entities.Room{
		ID:              uuid.New().String(),
		RoomType:        strings.TrimSpace(in.RoomType),
		RoomPrice:       *in.RoomPrice,
		RoomDescription: in.RoomDescription,
		RoomPhotoURLs:   urls,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	s.roomChanged(ctx, room.ID)
	return room, nil
}

// List returns every room, newest first
func (s *RoomService) List(ctx context.Context) ([]*entities.Room, error) {
	return s.rooms.List(ctx)
}

// Types returns the distinct room types
func (s *RoomService) Types(ctx context.Context) ([]string, error) {
	return s.rooms.ListTypes(ctx)
}

// GetByID returns a room with its bookings
func (s *RoomService) GetByID(ctx context.Context, id string) (*entities.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Bookings = bookings
	return room, nil
}

// Update applies the non-empty fields of in. New photos are appended.
func (s *RoomService) Update(ctx context.Context, id string, in RoomInput) (*entities.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if t := strings.TrimSpace(in.RoomType); t != "" {
		room.RoomType = t
	}
	if in.RoomPrice != nil {
		if *in.RoomPrice < 0 {
			return nil, apperrors.NewValidationError("Room price cannot be negative")
		}
		room.RoomPrice = *in.RoomPrice
	}
	if in.RoomDescription != "" {
		room.RoomDescription = in.RoomDescription
	}

	urls, err := s.upload(ctx, in.Photos)
	if err != nil {
		return nil, err
	}
	room.RoomPhotoURLs = append(room.RoomPhotoURLs, urls...)

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}

	s.roomChanged(ctx, room.ID)
	return room, nil
}

// Delete removes a room and its bookings
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}
	s.roomChanged(ctx, id)
	return nil
}

// AvailableByDateAndType returns rooms of roomType free for the whole stay
func (s *RoomService) AvailableByDateAndType(ctx context.Context, checkIn, checkOut time.Time, roomType string) ([]*entities.Room, error) {
	period := entities.NewStayPeriod(checkIn, checkOut)
	if !period.CheckOut.After(period.CheckIn) {
		return nil, apperrors.NewValidationError(entities.ErrCheckOutBeforeCheckIn.Error())
	}
	return s.rooms.ListAvailable(ctx, period, strings.TrimSpace(roomType))
}

// AllAvailable returns rooms with no booking covering today
func (s *RoomService) AllAvailable(ctx context.Context, today time.Time) ([]*entities.Room, error) {
	return s.rooms.ListAvailable(ctx, entities.NewStayPeriod(today, today), "")
}

func (s *RoomService) upload(ctx context.Context, photos []Photo) ([]string, error) {
	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		url, err := s.photos.Upload(ctx, p.Filename, p.Content)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *RoomService) roomChanged(ctx context.Context, roomID string) {
	event := entities.NewHotelEvent(entities.HotelEventRoomChanged)
	event.RoomID = roomID
	publishEvent(ctx, s.events, event)
}
