package services

import (
	"context"
	"time"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
)

// FeedbackSummary reports the outcome of one feedback sweep
type FeedbackSummary struct {
	Day     time.Time
	Found   int
	Sent    int
	Skipped int
	Failed  int
}

// FeedbackService emails feedback requests to guests after checkout
type FeedbackService struct {
	bookings      repositories.BookingRepository
	notifications *NotificationService
	metrics       *observability.Metrics
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(bookings repositories.BookingRepository, notifications *NotificationService, metrics *observability.Metrics) *FeedbackService {
	return &FeedbackService{
		bookings:      bookings,
		notifications: notifications,
		metrics:       metrics,
	}
}

// SendDailyFeedbackRequests processes the bookings that checked out the
// calendar day before now.
func (s *FeedbackService) SendDailyFeedbackRequests(ctx context.Context, now time.Time) (FeedbackSummary, error) {
	return s.SendFeedbackRequestsFor(ctx, entities.DateOnly(now).AddDate(0, 0, -1))
}

// SendFeedbackRequestsFor emails every guest who checked out on day and has
// not been asked yet. A failure on one booking is logged and the sweep
// continues; only bookings whose email went out are flagged.
func (s *FeedbackService) SendFeedbackRequestsFor(ctx context.Context, day time.Time) (FeedbackSummary, error) {
	logger := observability.LoggerFromContext(ctx)
	summary := FeedbackSummary{Day: entities.DateOnly(day)}

	logger.Info().Str("checkout_date", summary.Day.Format("2006-01-02")).Msg("Starting feedback email sweep")

	bookings, err := s.bookings.ListCompletedForFeedback(ctx, summary.Day)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load completed bookings")
		return summary, err
	}
	summary.Found = len(bookings)

	if len(bookings) == 0 {
		logger.Info().Msg("No completed bookings found for feedback")
		return summary, nil
	}

	for _, booking := range bookings {
		if ctx.Err() != nil {
			break
		}

		if booking.User == nil || booking.User.Email == "" {
			logger.Warn().Str("booking_id", booking.ID).Msg("skipping feedback request: booking has no user email")
			summary.Skipped++
			continue
		}

		if err := s.notifications.SendFeedbackRequest(ctx, booking.User, booking); err != nil {
			logger.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to send feedback email")
			summary.Failed++
			continue
		}

		if err := s.bookings.MarkFeedbackSent(ctx, booking.ID); err != nil {
			logger.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to flag feedback email as sent")
			summary.Failed++
			continue
		}

		summary.Sent++
		if s.metrics != nil {
			observability.RecordCount(ctx, s.metrics.FeedbackEmailSent, 1)
		}
	}

	logger.Info().
		Int("found", summary.Found).
		Int("sent", summary.Sent).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("Feedback email sweep finished")
	return summary, ctx.Err()
}
