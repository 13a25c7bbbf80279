package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/dto"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

// ReviewService defines the review and moderation operations used by the handler.
type ReviewService interface {
	Create(ctx context.Context, actor entities.Actor, in services.ReviewInput) (*entities.Review, error)
	Update(ctx context.Context, actor entities.Actor, id string, in services.ReviewInput) (*entities.Review, error)
	Delete(ctx context.Context, actor entities.Actor, id string) error
	ListApproved(ctx context.Context) ([]*entities.Review, error)
	ListByRoom(ctx context.Context, roomID string) ([]*entities.Review, error)
	ListHotel(ctx context.Context) ([]*entities.Review, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Review, error)
	ListPending(ctx context.Context) ([]*entities.Review, error)
	GetByID(ctx context.Context, id string) (*entities.Review, error)
	Approve(ctx context.Context, id string) (*entities.Review, error)
	Reject(ctx context.Context, id string) error
	Statistics(ctx context.Context) (*entities.ReviewStats, error)
	AverageRatings(ctx context.Context) (*entities.AverageRatings, error)
	CanReview(ctx context.Context, bookingID, userID string) (bool, error)
}

// ReviewHandler handles review requests
type ReviewHandler struct {
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type reviewRequest struct {
	Title             string `json:"title" validate:"required,max=200"`
	Comment           string `json:"comment" validate:"max=2000"`
	OverallRating     int    `json:"overallRating"`
	CleanlinessRating int    `json:"cleanlinessRating"`
	ServiceRating     int    `json:"serviceRating"`
	LocationRating    int    `json:"locationRating"`
	RoomID            string `json:"roomId"`
	BookingID         string `json:"bookingId"`
}

func (req reviewRequest) input() services.ReviewInput {
	return services.ReviewInput{
		Title:             req.Title,
		Comment:           req.Comment,
		OverallRating:     req.OverallRating,
		CleanlinessRating: req.CleanlinessRating,
		ServiceRating:     req.ServiceRating,
		LocationRating:    req.LocationRating,
		RoomID:            req.RoomID,
		BookingID:         req.BookingID,
	}
}

// Create handles POST /reviews/create
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithError(w, r, err, "creating review")
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err, "creating review")
		return
	}

	review, err := h.service.Create(r.Context(), actor, req.input())
	if err != nil {
		respondWithError(w, r, err, "creating review")
		return
	}
	view := dto.ReviewFromEntity(review)
	respondOK(w, dto.Response{Message: "Review submitted successfully and is pending approval", Review: &view})
}

// Update handles PUT /reviews/update/{reviewId}
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithError(w, r, err, "updating review")
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err, "updating review")
		return
	}

	review, err := h.service.Update(r.Context(), actor, r.PathValue("reviewId"), req.input())
	if err != nil {
		respondWithError(w, r, err, "updating review")
		return
	}
	view := dto.ReviewFromEntity(review)
	respondOK(w, dto.Response{Message: "Review updated successfully and is pending approval", Review: &view})
}

// Delete handles DELETE /reviews/delete/{reviewId}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithError(w, r, err, "deleting review")
		return
	}

	if err := h.service.Delete(r.Context(), actor, r.PathValue("reviewId")); err != nil {
		respondWithError(w, r, err, "deleting review")
		return
	}
	respondOK(w, dto.Response{Message: "Review deleted successfully"})
}

// Approved handles GET /reviews/approved
func (h *ReviewHandler) Approved(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, "retrieving reviews", "Reviews retrieved successfully", func(ctx context.Context) ([]*entities.Review, error) {
		return h.service.ListApproved(ctx)
	})
}

// ByRoom handles GET /reviews/room/{roomId}
func (h *ReviewHandler) ByRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomId")
	h.respondList(w, r, "retrieving room reviews", "Room reviews retrieved successfully", func(ctx context.Context) ([]*entities.Review, error) {
		return h.service.ListByRoom(ctx, roomID)
	})
}

// Hotel handles GET /reviews/hotel
func (h *ReviewHandler) Hotel(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, "retrieving hotel reviews", "Hotel reviews retrieved successfully", func(ctx context.Context) ([]*entities.Review, error) {
		return h.service.ListHotel(ctx)
	})
}

// ByUser handles GET /reviews/user/{userId}
func (h *ReviewHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	h.respondList(w, r, "retrieving user reviews", "User reviews retrieved successfully", func(ctx context.Context) ([]*entities.Review, error) {
		return h.service.ListByUser(ctx, userID)
	})
}

// Pending handles GET /reviews/pending
func (h *ReviewHandler) Pending(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, "retrieving pending reviews", "Pending reviews retrieved successfully", func(ctx context.Context) ([]*entities.Review, error) {
		return h.service.ListPending(ctx)
	})
}

// GetByID handles GET /reviews/{reviewId}
func (h *ReviewHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.GetByID(r.Context(), r.PathValue("reviewId"))
	if err != nil {
		respondWithError(w, r, err, "retrieving review")
		return
	}
	view := dto.ReviewFromEntity(review)
	respondOK(w, dto.Response{Message: "Review retrieved successfully", Review: &view})
}

// Approve handles PUT /reviews/approve/{reviewId}
func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.Approve(r.Context(), r.PathValue("reviewId"))
	if err != nil {
		respondWithError(w, r, err, "approving review")
		return
	}
	view := dto.ReviewFromEntity(review)
	respondOK(w, dto.Response{Message: "Review approved successfully", Review: &view})
}

// Reject handles DELETE /reviews/reject/{reviewId}
func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reject(r.Context(), r.PathValue("reviewId")); err != nil {
		respondWithError(w, r, err, "rejecting review")
		return
	}
	respondOK(w, dto.Response{Message: "Review rejected and deleted successfully"})
}

// Statistics handles GET /reviews/statistics
func (h *ReviewHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		respondWithError(w, r, err, "retrieving review statistics")
		return
	}
	respondOK(w, dto.Response{Message: "Review statistics retrieved successfully", ReviewStats: stats})
}

// AverageRatings handles GET /reviews/average-ratings
func (h *ReviewHandler) AverageRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.AverageRatings(r.Context())
	if err != nil {
		respondWithError(w, r, err, "retrieving average ratings")
		return
	}
	respondOK(w, dto.Response{Message: "Average ratings retrieved successfully", AverageRatings: ratings})
}

// CanReview handles GET /reviews/can-review/{bookingId}
func (h *ReviewHandler) CanReview(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		respondWithError(w, r, err, "checking review eligibility")
		return
	}

	allowed, err := h.service.CanReview(r.Context(), r.PathValue("bookingId"), actor.UserID)
	if err != nil {
		respondWithError(w, r, err, "checking review eligibility")
		return
	}
	respondOK(w, dto.Response{CanReview: &allowed})
}

func (h *ReviewHandler) respondList(w http.ResponseWriter, r *http.Request, operation, message string, list func(ctx context.Context) ([]*entities.Review, error)) {
	reviews, err := list(r.Context())
	if err != nil {
		respondWithError(w, r, err, operation)
		return
	}
	respondOK(w, dto.Response{Message: message, ReviewList: dto.ReviewsFromEntities(reviews)})
}
