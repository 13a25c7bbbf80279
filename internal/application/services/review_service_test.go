package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

type reviewFixture struct {
	service *services.ReviewService
	reviews *memReviews
	bus     *recordingBus
}

func newReviewFixture() reviewFixture {
	users := newMemUsers(&entities.User{ID: "user-1", Email: "guest@hotel.test", Role: entities.RoleUser})
	rooms := newMemRooms(&entities.Room{ID: "room-1", RoomType: "Suite"})
	bookings := newMemBookings(users, rooms)
	bookings.put(&entities.Booking{ID: "booking-1", RoomID: "room-1", UserID: "user-1", ConfirmationCode: "ABCDEFGHIJ"})
	reviews := newMemReviews()
	bus := &recordingBus{}
	return reviewFixture{
		service: services.NewReviewService(reviews, rooms, bookings, bus),
		reviews: reviews,
		bus:     bus,
	}
}

func goodReview() services.ReviewInput {
	return services.ReviewInput{Title: "Great stay", OverallRating: 5, CleanlinessRating: 4, ServiceRating: 5, LocationRating: 3}
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("successfully creates an unapproved hotel review", func(t *testing.T) {
		f := newReviewFixture()

		review, err := f.service.Create(ctx, guest, goodReview())

		require.NoError(t, err)
		assert.False(t, review.IsApproved)
		assert.True(t, review.IsHotelReview)
		assert.Equal(t, "user-1", review.UserID)
	})

	t.Run("successfully ties a review to a room", func(t *testing.T) {
		f := newReviewFixture()
		in := goodReview()
		in.RoomID = "room-1"

		review, err := f.service.Create(ctx, guest, in)

		require.NoError(t, err)
		assert.False(t, review.IsHotelReview)
		assert.Equal(t, "room-1", *review.RoomID)
	})

	t.Run("rejects ratings outside one to five", func(t *testing.T) {
		f := newReviewFixture()
		in := goodReview()
		in.ServiceRating = 6

		_, err := f.service.Create(ctx, guest, in)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects a second review of the same booking", func(t *testing.T) {
		f := newReviewFixture()
		in := goodReview()
		in.BookingID = "booking-1"
		_, err := f.service.Create(ctx, guest, in)
		require.NoError(t, err)

		_, err = f.service.Create(ctx, guest, in)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	t.Run("reports an unknown room", func(t *testing.T) {
		f := newReviewFixture()
		in := goodReview()
		in.RoomID = "room-x"

		_, err := f.service.Create(ctx, guest, in)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestReviewService_Moderation(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture()
	in := goodReview()
	in.RoomID = "room-1"
	review, err := f.service.Create(ctx, guest, in)
	require.NoError(t, err)

	pending, err := f.service.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	byRoom, err := f.service.ListByRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Empty(t, byRoom)

	approved, err := f.service.Approve(ctx, review.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	byRoom, err = f.service.ListByRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Len(t, byRoom, 1)

	t.Run("an edit sends the review back to moderation", func(t *testing.T) {
		edit := goodReview()
		edit.Title = "Even better"

		updated, err := f.service.Update(ctx, guest, review.ID, edit)

		require.NoError(t, err)
		assert.False(t, updated.IsApproved)
		stats, _ := f.service.Statistics(ctx)
		assert.Equal(t, int64(1), stats.Pending)
	})

	t.Run("other guests cannot edit or delete", func(t *testing.T) {
		other := entities.Actor{UserID: "user-2", Role: entities.RoleUser}

		_, updateErr := f.service.Update(ctx, other, review.ID, goodReview())
		deleteErr := f.service.Delete(ctx, other, review.ID)

		assert.True(t, apperrors.IsType(updateErr, apperrors.ErrorTypeForbidden))
		assert.True(t, apperrors.IsType(deleteErr, apperrors.ErrorTypeForbidden))
	})

	t.Run("reject deletes the review", func(t *testing.T) {
		require.NoError(t, f.service.Reject(ctx, review.ID))

		_, err := f.service.GetByID(ctx, review.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	assert.Contains(t, f.bus.types(), entities.HotelEventReviewChanged)
}

func TestReviewService_CanReview(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture()

	before, err := f.service.CanReview(ctx, "booking-1", "user-1")
	require.NoError(t, err)
	in := goodReview()
	in.BookingID = "booking-1"
	_, err = f.service.Create(ctx, guest, in)
	require.NoError(t, err)
	after, err := f.service.CanReview(ctx, "booking-1", "user-1")
	require.NoError(t, err)

	assert.True(t, before)
	assert.False(t, after)
}
