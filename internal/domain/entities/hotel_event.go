package entities

import (
	"time"

	"github.com/google/uuid"
)

// HotelEventType represents the type of a domain change event
type HotelEventType string

const (
	HotelEventBookingCreated   HotelEventType = "booking.created"
	HotelEventBookingCancelled HotelEventType = "booking.cancelled"
	HotelEventRoomChanged      HotelEventType = "room.changed"
	HotelEventReviewChanged    HotelEventType = "review.changed"
)

// HotelEvent announces a change that may invalidate cached reads
type HotelEvent struct {
	ID        string         `json:"id"`
	Type      HotelEventType `json:"type"`
	RoomID    string         `json:"room_id,omitempty"`
	BookingID string         `json:"booking_id,omitempty"`
	ReviewID  string         `json:"review_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewHotelEvent creates an event stamped with a fresh id and the current time
func NewHotelEvent(eventType HotelEventType) *HotelEvent {
	return &HotelEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}
