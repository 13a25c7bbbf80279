package dto

import "github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"

// Response is the envelope every endpoint answers with. Only the fields an
// operation sets are serialized.
type Response struct {
	StatusCode              int                      `json:"statusCode"`
	Message                 string                   `json:"message"`
	Token                   string                   `json:"token,omitempty"`
	Role                    string                   `json:"role,omitempty"`
	ExpirationTime          string                   `json:"expirationTime,omitempty"`
	BookingConfirmationCode string                   `json:"bookingConfirmationCode,omitempty"`
	User                    *User                    `json:"user,omitempty"`
	Room                    *Room                    `json:"room,omitempty"`
	Booking                 *Booking                 `json:"booking,omitempty"`
	Review                  *Review                  `json:"review,omitempty"`
	UserList                []User                   `json:"userList,omitempty"`
	RoomList                []Room                   `json:"roomList,omitempty"`
	BookingList             []Booking                `json:"bookingList,omitempty"`
	ReviewList              []Review                 `json:"reviewList,omitempty"`
	RoomTypes               []string                 `json:"roomTypes,omitempty"`
	RoleStats               *entities.RoleStats      `json:"roleStats,omitempty"`
	ReviewStats             *entities.ReviewStats    `json:"reviewStats,omitempty"`
	AverageRatings          *entities.AverageRatings `json:"averageRatings,omitempty"`
	CanReview               *bool                    `json:"canReview,omitempty"`
}
