package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

// ReviewInput holds the author-editable fields of a review
type ReviewInput struct {
	Title             string
	Comment           string
	OverallRating     int
	CleanlinessRating int
	ServiceRating     int
	LocationRating    int
	RoomID            string
	BookingID         string
}

// ReviewService handles reviews and their moderation
type ReviewService struct {
	reviews  repositories.ReviewRepository
	rooms    repositories.RoomRepository
	bookings repositories.BookingRepository
	events   providers.EventBus
}

// NewReviewService creates a new review service
func NewReviewService(
	reviews repositories.ReviewRepository,
	rooms repositories.RoomRepository,
	bookings repositories.BookingRepository,
	events providers.EventBus,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		rooms:    rooms,
		bookings: bookings,
		events:   events,
	}
}

// Create stores an unapproved review by the actor
func (s *ReviewService) Create(ctx context.Context, actor entities.Actor, in ReviewInput) (*entities.Review, error) {
	review := &entities.Review{
		Title:             strings.TrimSpace(in.Title),
		Comment:           in.Comment,
		OverallRating:     in.OverallRating,
		CleanlinessRating: in.CleanlinessRating,
		ServiceRating:     in.ServiceRating,
		LocationRating:    in.LocationRating,
		UserID:            actor.UserID,
	}
	if err := review.ValidateRatings(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if roomID := strings.TrimSpace(in.RoomID); roomID != "" {
		if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
			return nil, err
		}
		review.RoomID = &roomID
	}
	review.IsHotelReview = review.RoomID == nil

	if bookingID := strings.TrimSpace(in.BookingID); bookingID != "" {
		if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
			return nil, err
		}
		exists, err := s.reviews.ExistsByBookingAndUser(ctx, bookingID, actor.UserID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewConflictError("You have already reviewed this booking")
		}
		review.BookingID = &bookingID
	}

	now := time.Now().UTC()
	review.ID = uuid.New().String()
	review.IsApproved = false
	review.CreatedAt = now
	review.UpdatedAt = now

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, review.ID)
}

// Update edits the actor's review and sends it back to moderation
func (s *ReviewService) Update(ctx context.Context, actor entities.Actor, id string, in ReviewInput) (*entities.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(review.UserID) {
		return nil, apperrors.NewForbiddenError("You can only update your own reviews")
	}

	review.Title = strings.TrimSpace(in.Title)
	review.Comment = in.Comment
	review.OverallRating = in.OverallRating
	review.CleanlinessRating = in.CleanlinessRating
	review.ServiceRating = in.ServiceRating
	review.LocationRating = in.LocationRating
	if err := review.ValidateRatings(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	review.IsApproved = false

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	s.reviewChanged(ctx, review)
	return review, nil
}

// Delete removes the actor's review, or any review for an ADMIN
func (s *ReviewService) Delete(ctx context.Context, actor entities.Actor, id string) error {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanAccess(review.UserID) {
		return apperrors.NewForbiddenError("You can only delete your own reviews")
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.reviewChanged(ctx, review)
	return nil
}

// ListApproved returns every approved review
func (s *ReviewService) ListApproved(ctx context.Context) ([]*entities.Review, error) {
	return s.reviews.List(ctx, repositories.ReviewFilter{Approved: boolPtr(true)})
}

// ListByRoom returns the approved reviews of a room
func (s *ReviewService) ListByRoom(ctx context.Context, roomID string) ([]*entities.Review, error) {
	return s.reviews.List(ctx, repositories.ReviewFilter{Approved: boolPtr(true), RoomID: roomID})
}

// ListHotel returns the approved reviews not tied to a room
func (s *ReviewService) ListHotel(ctx context.Context) ([]*entities.Review, error) {
	return s.reviews.List(ctx, repositories.ReviewFilter{Approved: boolPtr(true), HotelOnly: true})
}

// ListByUser returns all of a user's reviews
func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]*entities.Review, error) {
	return s.reviews.List(ctx, repositories.ReviewFilter{UserID: userID})
}

// ListPending returns reviews awaiting moderation
func (s *ReviewService) ListPending(ctx context.Context) ([]*entities.Review, error) {
	return s.reviews.List(ctx, repositories.ReviewFilter{Approved: boolPtr(false)})
}

// GetByID returns a review
func (s *ReviewService) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	return s.reviews.GetByID(ctx, id)
}

// Approve publishes a review
func (s *ReviewService) Approve(ctx context.Context, id string) (*entities.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.reviews.SetApproved(ctx, id, true); err != nil {
		return nil, err
	}
	review.IsApproved = true
	s.reviewChanged(ctx, review)
	return review, nil
}

// Reject deletes a review outright
func (s *ReviewService) Reject(ctx context.Context, id string) error {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.reviewChanged(ctx, review)
	return nil
}

// Statistics counts reviews by moderation state
func (s *ReviewService) Statistics(ctx context.Context) (*entities.ReviewStats, error) {
	return s.reviews.Stats(ctx)
}

// AverageRatings averages each category over approved reviews
func (s *ReviewService) AverageRatings(ctx context.Context) (*entities.AverageRatings, error) {
	return s.reviews.AverageRatings(ctx)
}

// CanReview reports whether userID has not yet reviewed bookingID
func (s *ReviewService) CanReview(ctx context.Context, bookingID, userID string) (bool, error) {
	exists, err := s.reviews.ExistsByBookingAndUser(ctx, bookingID, userID)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *ReviewService) reviewChanged(ctx context.Context, review *entities.Review) {
	event := entities.NewHotelEvent(entities.HotelEventReviewChanged)
	event.ReviewID = review.ID
	if review.RoomID != nil {
		event.RoomID = *review.RoomID
	}
	publishEvent(ctx, s.events, event)
}

func boolPtr(b bool) *bool {
	return &b
}
