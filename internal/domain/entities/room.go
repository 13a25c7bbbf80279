package entities

import (
	"time"
)

// Room represents a bookable hotel room
type Room struct {
	ID              string    `json:"id" db:"id"`
	RoomType        string    `json:"room_type" db:"room_type"`
	RoomPrice       float64   `json:"room_price" db:"room_price"`
	RoomDescription string    `json:"room_description" db:"room_description"`
	RoomPhotoURLs   []string  `json:"room_photo_urls" db:"room_photo_urls"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	Bookings []*Booking `json:"bookings,omitempty" db:"-"`
}
