package dto

import (
	"time"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

const dateLayout = "2006-01-02"

// UserFromEntity maps a user without relations
func UserFromEntity(u *entities.User) User {
	return User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
	}
}

// UserWithBookings maps a user and their bookings, each with its room
func UserWithBookings(u *entities.User, bookings []*entities.Booking) User {
	out := UserFromEntity(u)
	out.Bookings = make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		booking := BookingFromEntity(b)
		if b.Room != nil {
			room := RoomFromEntity(b.Room)
			booking.Room = &room
		}
		out.Bookings = append(out.Bookings, booking)
	}
	return out
}

// UsersFromEntities maps a user listing
func UsersFromEntities(users []*entities.User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, UserFromEntity(u))
	}
	return out
}

// RoomFromEntity maps a room without bookings
func RoomFromEntity(r *entities.Room) Room {
	photos := r.RoomPhotoURLs
	if photos == nil {
		photos = []string{}
	}
	return Room{
		ID:              r.ID,
		RoomType:        r.RoomType,
		RoomPrice:       r.RoomPrice,
		RoomPhotoURLs:   photos,
		RoomDescription: r.RoomDescription,
	}
}

// RoomWithBookings maps a room and its bookings
func RoomWithBookings(r *entities.Room) Room {
	out := RoomFromEntity(r)
	out.Bookings = make([]Booking, 0, len(r.Bookings))
	for _, b := range r.Bookings {
		out.Bookings = append(out.Bookings, BookingFromEntity(b))
	}
	return out
}

// RoomsFromEntities maps a room listing
func RoomsFromEntities(rooms []*entities.Room) []Room {
	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomFromEntity(r))
	}
	return out
}

// BookingFromEntity maps a booking without relations
func BookingFromEntity(b *entities.Booking) Booking {
	return Booking{
		ID:                      b.ID,
		CheckInDate:             formatDate(b.CheckInDate),
		CheckOutDate:            formatDate(b.CheckOutDate),
		NumOfAdults:             b.NumOfAdults,
		NumOfChildren:           b.NumOfChildren,
		TotalNumOfGuest:         b.TotalNumOfGuest,
		BookingConfirmationCode: b.ConfirmationCode,
		Status:                  string(b.Status),
	}
}

// BookingWithRelations maps a booking with whichever of user and room are loaded
func BookingWithRelations(b *entities.Booking) Booking {
	out := BookingFromEntity(b)
	if b.User != nil {
		user := UserFromEntity(b.User)
		out.User = &user
	}
	if b.Room != nil {
		room := RoomFromEntity(b.Room)
		out.Room = &room
	}
	return out
}

// BookingsWithRelations maps a booking listing
func BookingsWithRelations(bookings []*entities.Booking) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingWithRelations(b))
	}
	return out
}

// ReviewFromEntity flattens a review with its author, room and booking
func ReviewFromEntity(r *entities.Review) Review {
	out := Review{
		ID:                    r.ID,
		Title:                 r.Title,
		Comment:               r.Comment,
		OverallRating:         r.OverallRating,
		CleanlinessRating:     r.CleanlinessRating,
		ServiceRating:         r.ServiceRating,
		LocationRating:        r.LocationRating,
		CreatedAt:             r.CreatedAt.Format(time.RFC3339),
		IsApproved:            r.IsApproved,
		IsHotelReview:         r.IsHotelReview,
		AverageCategoryRating: r.AverageCategoryRating(),
	}
	if r.User != nil {
		out.UserName = r.User.Name
		out.UserEmail = r.User.Email
	}
	if r.RoomID != nil {
		out.RoomID = *r.RoomID
	}
	if r.Room != nil {
		out.RoomType = r.Room.RoomType
	}
	if r.BookingID != nil {
		out.BookingID = *r.BookingID
	}
	if r.Booking != nil {
		out.BookingConfirmationCode = r.Booking.ConfirmationCode
	}
	return out
}

// ReviewsFromEntities maps a review listing
func ReviewsFromEntities(reviews []*entities.Review) []Review {
	out := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewFromEntity(r))
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
