package dto

// User is the public view of an account. The password hash never leaves
// the service layer.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Role        string    `json:"role"`
	Bookings    []Booking `json:"bookings,omitempty"`
}

// Room is the public view of a room
type Room struct {
	ID              string    `json:"id"`
	RoomType        string    `json:"roomType"`
	RoomPrice       float64   `json:"roomPrice"`
	RoomPhotoURLs   []string  `json:"roomPhotoUrls"`
	RoomDescription string    `json:"roomDescription,omitempty"`
	Bookings        []Booking `json:"bookings,omitempty"`
}

// Booking is the public view of a reservation. Dates are calendar dates.
type Booking struct {
	ID                      string `json:"id"`
	CheckInDate             string `json:"checkInDate"`
	CheckOutDate            string `json:"checkOutDate"`
	NumOfAdults             int    `json:"numOfAdults"`
	NumOfChildren           int    `json:"numOfChildren"`
	TotalNumOfGuest         int    `json:"totalNumOfGuest"`
	BookingConfirmationCode string `json:"bookingConfirmationCode"`
	Status                  string `json:"status"`
	User                    *User  `json:"user,omitempty"`
	Room                    *Room  `json:"room,omitempty"`
}

// Review is the public view of a review with its author, room and booking
// flattened in
type Review struct {
	ID                      string  `json:"id"`
	Title                   string  `json:"title"`
	Comment                 string  `json:"comment,omitempty"`
	OverallRating           int     `json:"overallRating"`
	CleanlinessRating       int     `json:"cleanlinessRating"`
	ServiceRating           int     `json:"serviceRating"`
	LocationRating          int     `json:"locationRating"`
	CreatedAt               string  `json:"createdAt"`
	IsApproved              bool    `json:"isApproved"`
	IsHotelReview           bool    `json:"isHotelReview"`
	UserName                string  `json:"userName,omitempty"`
	UserEmail               string  `json:"userEmail,omitempty"`
	RoomType                string  `json:"roomType,omitempty"`
	RoomID                  string  `json:"roomId,omitempty"`
	BookingConfirmationCode string  `json:"bookingConfirmationCode,omitempty"`
	BookingID               string  `json:"bookingId,omitempty"`
	AverageCategoryRating   float64 `json:"averageCategoryRating"`
}
