package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/adapters/database"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/notifications"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
	"github.com/zatekoja/HotelReservationSystem/backend/pkg/config"
)

// Runs a single feedback sweep. Without -date it covers yesterday's check-outs.
func main() {
	var day string
	flag.StringVar(&day, "date", "", "Check-out date to sweep (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-feedback", cfg.App.Env)
	logger := observability.GetLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgClient.Close()

	mailer, err := notifications.NewMailer(cfg.SMTP)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize mailer")
	}

	svc := services.NewFeedbackService(
		database.NewBookingAdapter(pgClient),
		services.NewNotificationService(mailer),
		nil,
	)

	var summary services.FeedbackSummary
	if day != "" {
		summary, err = sweepDay(ctx, svc, cfg.Scheduler, day)
	} else {
		summary, err = svc.SendDailyFeedbackRequests(ctx, time.Now())
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("Feedback sweep failed")
	}

	logger.Info().
		Str("day", summary.Day.Format("2006-01-02")).
		Int("found", summary.Found).
		Int("sent", summary.Sent).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("Feedback sweep complete")
}

func sweepDay(ctx context.Context, svc *services.FeedbackService, cfg config.SchedulerConfig, day string) (services.FeedbackSummary, error) {
	loc, err := cfg.Location()
	if err != nil {
		return services.FeedbackSummary{}, fmt.Errorf("invalid scheduler timezone: %w", err)
	}
	parsed, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return services.FeedbackSummary{}, fmt.Errorf("invalid -date %q, expected YYYY-MM-DD: %w", day, err)
	}
	return svc.SendFeedbackRequestsFor(ctx, parsed)
}
