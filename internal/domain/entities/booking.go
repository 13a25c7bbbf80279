package entities

import (
	"errors"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
)

// ConfirmationCodeLength is the length of a booking confirmation code
const ConfirmationCodeLength = 10

var (
	ErrCheckInInPast         = errors.New("Check-in date cannot be in the past.")
	ErrCheckOutBeforeCheckIn = errors.New("Check out date must come after check in date")
)

// Booking represents a reservation of one room by one user
type Booking struct {
	ID                string        `json:"id" db:"id"`
	RoomID            string        `json:"room_id" db:"room_id"`
	UserID            string        `json:"user_id" db:"user_id"`
	CheckInDate       time.Time     `json:"check_in_date" db:"check_in_date"`
	CheckOutDate      time.Time     `json:"check_out_date" db:"check_out_date"`
	NumOfAdults       int           `json:"num_of_adults" db:"num_of_adults"`
	NumOfChildren     int           `json:"num_of_children" db:"num_of_children"`
	TotalNumOfGuest   int           `json:"total_num_of_guest" db:"total_num_of_guest"`
	ConfirmationCode  string        `json:"booking_confirmation_code" db:"confirmation_code"`
	Status            BookingStatus `json:"status" db:"status"`
	FeedbackEmailSent bool          `json:"feedback_email_sent" db:"feedback_email_sent"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`

	User *User `json:"user,omitempty" db:"-"`
	Room *Room `json:"room,omitempty" db:"-"`
}

// CalculateTotalGuests sets TotalNumOfGuest from adults and children
func (b *Booking) CalculateTotalGuests() {
	b.TotalNumOfGuest = b.NumOfAdults + b.NumOfChildren
}

// Period returns the booking's stay
func (b *Booking) Period() StayPeriod {
	return NewStayPeriod(b.CheckInDate, b.CheckOutDate)
}

// StayPeriod is a half-open date range [CheckIn, CheckOut) at day granularity
type StayPeriod struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewStayPeriod builds a period with both ends truncated to calendar dates
func NewStayPeriod(checkIn, checkOut time.Time) StayPeriod {
	return StayPeriod{CheckIn: DateOnly(checkIn), CheckOut: DateOnly(checkOut)}
}

// Validate checks the period against the current date
func (p StayPeriod) Validate(today time.Time) error {
	if p.CheckIn.Before(DateOnly(today)) {
		return ErrCheckInInPast
	}
	if !p.CheckOut.After(p.CheckIn) {
		return ErrCheckOutBeforeCheckIn
	}
	return nil
}

// DateOnly drops the time of day, keeping the calendar date in UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two stays share an interior point or touch at a
// boundary. Back-to-back stays (one checks out the day the other checks in)
// count as overlapping.
func Overlaps(a, b StayPeriod) bool {
	return !a.CheckIn.After(b.CheckOut) && !a.CheckOut.Before(b.CheckIn)
}

// IsRoomAvailable reports whether candidate conflicts with none of existing
func IsRoomAvailable(candidate StayPeriod, existing []*Booking) bool {
	for _, b := range existing {
		if Overlaps(candidate, b.Period()) {
			return false
		}
	}
	return true
}
