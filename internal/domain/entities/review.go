package entities

import (
	"fmt"
	"time"
)

// Rating bounds shared by all review categories
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a guest's rating of the hotel or of a room
type Review struct {
	ID                string    `json:"id" db:"id"`
	Title             string    `json:"title" db:"title"`
	Comment           string    `json:"comment" db:"comment"`
	OverallRating     int       `json:"overall_rating" db:"overall_rating"`
	CleanlinessRating int       `json:"cleanliness_rating" db:"cleanliness_rating"`
	ServiceRating     int       `json:"service_rating" db:"service_rating"`
	LocationRating    int       `json:"location_rating" db:"location_rating"`
	IsApproved        bool      `json:"is_approved" db:"is_approved"`
	IsHotelReview     bool      `json:"is_hotel_review" db:"is_hotel_review"`
	UserID            string    `json:"user_id" db:"user_id"`
	RoomID            *string   `json:"room_id,omitempty" db:"room_id"`
	BookingID         *string   `json:"booking_id,omitempty" db:"booking_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`

	User    *User    `json:"user,omitempty" db:"-"`
	Room    *Room    `json:"room,omitempty" db:"-"`
	Booking *Booking `json:"booking,omitempty" db:"-"`
}

// ValidateRatings checks every rating category is within bounds
func (r *Review) ValidateRatings() error {
	checks := []struct {
		name  string
		value int
	}{
		{"Overall", r.OverallRating},
		{"Cleanliness", r.CleanlinessRating},
		{"Service", r.ServiceRating},
		{"Location", r.LocationRating},
	}
	for _, c := range checks {
		if c.value < MinRating || c.value > MaxRating {
			return fmt.Errorf("%s rating must be between %d and %d", c.name, MinRating, MaxRating)
		}
	}
	return nil
}

// AverageCategoryRating averages the cleanliness, service and location ratings
func (r *Review) AverageCategoryRating() float64 {
	return float64(r.CleanlinessRating+r.ServiceRating+r.LocationRating) / 3.0
}

// ReviewStats counts reviews by moderation state
type ReviewStats struct {
	Total    int64 `json:"totalReviews"`
	Approved int64 `json:"approvedReviews"`
	Pending  int64 `json:"pendingReviews"`
}

// AverageRatings holds per-category averages over approved reviews
type AverageRatings struct {
	Overall     float64 `json:"averageOverallRating"`
	Cleanliness float64 `json:"averageCleanlinessRating"`
	Service     float64 `json:"averageServiceRating"`
	Location    float64 `json:"averageLocationRating"`
}
