package services_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

type fakePhotoStore struct {
	uploaded []string
	err      error
}

func (s *fakePhotoStore) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploaded = append(s.uploaded, filename)
	return "https://cdn.test/" + filename, nil
}

type roomFixture struct {
	service  *services.RoomService
	rooms    *memRooms
	bookings *memBookings
	photos   *fakePhotoStore
	bus      *recordingBus
}

func newRoomFixture(rooms ...*entities.Room) roomFixture {
	repo := newMemRooms(rooms...)
	bookings := newMemBookings(nil, repo)
	repo.bookings = bookings
	photos := &fakePhotoStore{}
	bus := &recordingBus{}
	return roomFixture{
		service:  services.NewRoomService(repo, bookings, photos, bus),
		rooms:    repo,
		bookings: bookings,
		photos:   photos,
		bus:      bus,
	}
}

func price(p float64) *float64 { return &p }

func TestRoomService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("successfully uploads photos and stores the room", func(t *testing.T) {
		f := newRoomFixture()

		room, err := f.service.Add(ctx, services.RoomInput{
			RoomType:  " Suite ",
			RoomPrice: price(250),
			Photos:    []services.Photo{{Filename: "a.jpg", Content: strings.NewReader("a")}},
		})

		require.NoError(t, err)
		assert.Equal(t, "Suite", room.RoomType)
		assert.Equal(t, []string{"https://cdn.test/a.jpg"}, room.RoomPhotoURLs)
		assert.Equal(t, []entities.HotelEventType{entities.HotelEventRoomChanged}, f.bus.types())
	})

	t.Run("requires type and price", func(t *testing.T) {
		f := newRoomFixture()

		_, err := f.service.Add(ctx, services.RoomInput{RoomType: "Suite"})

		assert.EqualError(t, err, "VALIDATION: Please provide values for all fields (roomType, roomPrice)")
	})

	t.Run("stores nothing when an upload fails", func(t *testing.T) {
		f := newRoomFixture()
		f.photos.err = apperrors.NewExternalError("photo storage is not configured", errors.New("no url"))

		_, err := f.service.Add(ctx, services.RoomInput{
			RoomType:  "Suite",
			RoomPrice: price(100),
			Photos:    []services.Photo{{Filename: "a.jpg", Content: strings.NewReader("a")}},
		})

		assert.Error(t, err)
		rooms, _ := f.rooms.List(ctx)
		assert.Empty(t, rooms)
	})
}

func TestRoomService_Update(t *testing.T) {
	ctx := context.Background()
	f := newRoomFixture(&entities.Room{ID: "room-1", RoomType: "Suite", RoomPrice: 200, RoomDescription: "Sea view", RoomPhotoURLs: []string{"old"}})

	room, err := f.service.Update(ctx, "room-1", services.RoomInput{
		RoomPrice: price(220),
		Photos:    []services.Photo{{Filename: "new.jpg", Content: strings.NewReader("n")}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Suite", room.RoomType)
	assert.Equal(t, 220.0, room.RoomPrice)
	assert.Equal(t, "Sea view", room.RoomDescription)
	assert.Equal(t, []string{"old", "https://cdn.test/new.jpg"}, room.RoomPhotoURLs)
}

func TestRoomService_Availability(t *testing.T) {
	ctx := context.Background()
	f := newRoomFixture(
		&entities.Room{ID: "room-1", RoomType: "Suite"},
		&entities.Room{ID: "room-2", RoomType: "Suite"},
		&entities.Room{ID: "room-3", RoomType: "Double"},
	)
	f.bookings.put(&entities.Booking{ID: "b-1", RoomID: "room-1", CheckInDate: date("2030-05-01"), CheckOutDate: date("2030-05-04")})

	t.Run("successfully excludes rooms with an overlapping booking", func(t *testing.T) {
		rooms, err := f.service.AvailableByDateAndType(ctx, date("2030-05-04"), date("2030-05-06"), "Suite")

		require.NoError(t, err)
		if assert.Len(t, rooms, 1) {
			assert.Equal(t, "room-2", rooms[0].ID)
		}
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		_, err := f.service.AvailableByDateAndType(ctx, date("2030-05-06"), date("2030-05-04"), "Suite")

		assert.EqualError(t, err, "VALIDATION: Check out date must come after check in date")
	})

	t.Run("lists every room free today", func(t *testing.T) {
		rooms, err := f.service.AllAvailable(ctx, date("2030-05-02"))

		require.NoError(t, err)
		assert.Len(t, rooms, 2)
	})
}

func TestRoomService_GetByID_AttachesBookings(t *testing.T) {
	ctx := context.Background()
	f := newRoomFixture(&entities.Room{ID: "room-1", RoomType: "Suite"})
	f.bookings.put(&entities.Booking{ID: "b-1", RoomID: "room-1", CheckInDate: date("2030-05-01"), CheckOutDate: date("2030-05-04")})

	room, err := f.service.GetByID(ctx, "room-1")

	require.NoError(t, err)
	assert.Len(t, room.Bookings, 1)
}
