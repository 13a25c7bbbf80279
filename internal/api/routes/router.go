package routes

import (
	"net/http"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/api/handlers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/api/middleware"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	roomHandler    *handlers.RoomHandler
	bookingHandler *handlers.BookingHandler
	reviewHandler  *handlers.ReviewHandler
	healthHandler  *handlers.HealthHandler

	auth            *middleware.Authenticator
	cacheMiddleware *middleware.CacheMiddleware
	allowedOrigins  []string
	metrics         *observability.Metrics
}

// NewRouter creates a new router. cacheMiddleware and metrics may be nil.
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	roomHandler *handlers.RoomHandler,
	bookingHandler *handlers.BookingHandler,
	reviewHandler *handlers.ReviewHandler,
	healthHandler *handlers.HealthHandler,
	auth *middleware.Authenticator,
	cacheMiddleware *middleware.CacheMiddleware,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		authHandler:     authHandler,
		userHandler:     userHandler,
		roomHandler:     roomHandler,
		bookingHandler:  bookingHandler,
		reviewHandler:   reviewHandler,
		healthHandler:   healthHandler,
		auth:            auth,
		cacheMiddleware: cacheMiddleware,
		allowedOrigins:  allowedOrigins,
		metrics:         metrics,
	}
}

func (r *Router) public(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, h)
}

func (r *Router) authenticated(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, r.auth.RequireAuth(h))
}

func (r *Router) restricted(pattern string, h http.HandlerFunc, roles ...entities.Role) {
	r.mux.Handle(pattern, r.auth.RequireRole(roles...)(h))
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	admin := entities.RoleAdmin

	r.public("GET /health", r.healthHandler.Health)

	// Auth endpoints
	r.public("POST /auth/register", r.authHandler.Register)
	r.public("POST /auth/login", r.authHandler.Login)

	// User endpoints
	r.restricted("GET /users/all", r.userHandler.List, admin)
	r.authenticated("GET /users/get-by-id/{userId}", r.userHandler.GetByID)
	r.restricted("DELETE /users/delete/{userId}", r.userHandler.Delete, admin)
	r.authenticated("GET /users/get-logged-in-profile-info", r.userHandler.Profile)
	r.authenticated("GET /users/get-user-bookings/{userId}", r.userHandler.BookingHistory)
	r.authenticated("PUT /users/update/{userId}", r.userHandler.Update)
	r.restricted("PUT /users/change-role/{userId}", r.userHandler.ChangeRole, admin)
	r.restricted("GET /users/role-stats", r.userHandler.RoleStatistics, admin)

	// Room endpoints
	r.restricted("POST /rooms/add", r.roomHandler.Add, admin)
	r.public("GET /rooms/all", r.roomHandler.List)
	r.public("GET /rooms/types", r.roomHandler.Types)
	r.public("GET /rooms/room-by-id/{roomId}", r.roomHandler.GetByID)
	r.public("GET /rooms/all-available-rooms", r.roomHandler.AllAvailable)
	r.public("GET /rooms/available-rooms-by-date-and-type", r.roomHandler.AvailableByDateAndType)
	r.restricted("PUT /rooms/update/{roomId}", r.roomHandler.Update, admin)
	r.restricted("DELETE /rooms/delete/{roomId}", r.roomHandler.Delete, admin)

	// Booking endpoints
	r.restricted("POST /bookings/book-room/{roomId}/{userId}", r.bookingHandler.Book, admin, entities.RoleUser)
	r.restricted("GET /bookings/all", r.bookingHandler.List, admin)
	r.restricted("GET /bookings/get-by-confirmation-code/{code}", r.bookingHandler.GetByConfirmationCode, admin, entities.RoleReceptionist)
	r.authenticated("GET /bookings/my-booking/{code}", r.bookingHandler.MyBooking)
	r.authenticated("DELETE /bookings/cancel/{bookingId}", r.bookingHandler.Cancel)

	// Review endpoints
	r.authenticated("POST /reviews/create", r.reviewHandler.Create)
	r.authenticated("PUT /reviews/update/{reviewId}", r.reviewHandler.Update)
	r.authenticated("DELETE /reviews/delete/{reviewId}", r.reviewHandler.Delete)
	r.public("GET /reviews/approved", r.reviewHandler.Approved)
	r.public("GET /reviews/room/{roomId}", r.reviewHandler.ByRoom)
	r.public("GET /reviews/hotel", r.reviewHandler.Hotel)
	r.public("GET /reviews/average-ratings", r.reviewHandler.AverageRatings)
	r.authenticated("GET /reviews/user/{userId}", r.reviewHandler.ByUser)
	r.authenticated("GET /reviews/can-review/{bookingId}", r.reviewHandler.CanReview)
	r.restricted("GET /reviews/pending", r.reviewHandler.Pending, admin)
	r.restricted("GET /reviews/statistics", r.reviewHandler.Statistics, admin)
	r.authenticated("GET /reviews/{reviewId}", r.reviewHandler.GetByID)
	r.restricted("PUT /reviews/approve/{reviewId}", r.reviewHandler.Approve, admin)
	r.restricted("DELETE /reviews/reject/{reviewId}", r.reviewHandler.Reject, admin)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.Compression(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
