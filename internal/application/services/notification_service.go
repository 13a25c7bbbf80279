package services

import (
	"context"
	"fmt"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
)

// Email subjects
const (
	SubjectBookingConfirmation = "Your Hotel Reservation Confirmation"
	SubjectFeedbackRequest     = "We Hope You Enjoyed Your Stay!"
)

// NotificationService composes guest emails and hands them to the mailer
type NotificationService struct {
	mailer providers.Mailer
}

// NewNotificationService creates a new notification service
func NewNotificationService(mailer providers.Mailer) *NotificationService {
	return &NotificationService{mailer: mailer}
}

// SendBookingConfirmation emails the guest their confirmation code and dates
func (n *NotificationService) SendBookingConfirmation(ctx context.Context, user *entities.User, booking *entities.Booking) error {
	body := fmt.Sprintf("Dear %s,\n\n"+
		"Thank you for booking with us!\n"+
		"Your reservation is confirmed. Here are your details:\n"+
		"Confirmation Code: %s\n"+
		"Check-in Date: %s\n"+
		"Check-out Date: %s\n\n"+
		"We look forward to welcoming you!\n\n"+
		"Best regards,\n"+
		"The Hotel Team",
		user.Name, booking.ConfirmationCode,
		booking.CheckInDate.Format("2006-01-02"), booking.CheckOutDate.Format("2006-01-02"))

	return n.mailer.Send(ctx, providers.EmailMessage{
		To:      user.Email,
		ToName:  user.Name,
		Subject: SubjectBookingConfirmation,
		Body:    body,
	})
}

// SendFeedbackRequest asks a departed guest to review their stay
func (n *NotificationService) SendFeedbackRequest(ctx context.Context, user *entities.User, booking *entities.Booking) error {
	body := fmt.Sprintf("Dear %s,\n\n"+
		"Thank you for staying with us. We hope you had a wonderful experience.\n\n"+
		"We would be grateful if you could take a moment to share your feedback about your stay (Booking: %s). "+
		"Your opinion is very important to us and helps us improve our services.\n\n"+
		"To leave a review, please visit our website.\n\n"+
		"Thank you for your time!\n\n"+
		"Best regards,\n"+
		"The Hotel Team",
		user.Name, booking.ConfirmationCode)

	return n.mailer.Send(ctx, providers.EmailMessage{
		To:      user.Email,
		ToName:  user.Name,
		Subject: SubjectFeedbackRequest,
		Body:    body,
	})
}
