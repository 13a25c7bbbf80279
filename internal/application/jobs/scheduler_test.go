package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/jobs"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/pkg/config"
)

type signalingSender struct {
	calls chan time.Time
}

func (s *signalingSender) SendDailyFeedbackRequests(ctx context.Context, now time.Time) (services.FeedbackSummary, error) {
	s.calls <- now
	return services.FeedbackSummary{Sent: 1}, nil
}

func TestScheduler(t *testing.T) {
	t.Run("successfully schedules the job at the configured time", func(t *testing.T) {
		// Arrange
		cfg := config.SchedulerConfig{Enabled: true, FeedbackHour: 10, FeedbackMin: 30, Timezone: "UTC"}
		scheduler, err := jobs.NewScheduler(cfg, &signalingSender{calls: make(chan time.Time, 1)})
		require.NoError(t, err)
		defer scheduler.Shutdown()

		// Act
		scheduler.Start()
		next, err := scheduler.NextRun()

		// Assert
		require.NoError(t, err)
		next = next.UTC()
		assert.Equal(t, 10, next.Hour())
		assert.Equal(t, 30, next.Minute())
		assert.True(t, next.After(time.Now()))
		assert.True(t, next.Before(time.Now().Add(25*time.Hour)))
	})

	t.Run("successfully runs the sweep on demand", func(t *testing.T) {
		sender := &signalingSender{calls: make(chan time.Time, 1)}
		scheduler, err := jobs.NewScheduler(config.SchedulerConfig{FeedbackHour: 3, Timezone: "UTC"}, sender)
		require.NoError(t, err)
		defer scheduler.Shutdown()
		scheduler.Start()

		require.NoError(t, scheduler.RunNow())

		select {
		case now := <-sender.calls:
			assert.WithinDuration(t, time.Now(), now, time.Minute)
		case <-time.After(5 * time.Second):
			t.Fatal("feedback sweep did not run")
		}
	})

	t.Run("rejects an unknown timezone", func(t *testing.T) {
		_, err := jobs.NewScheduler(config.SchedulerConfig{Timezone: "Mars/Olympus"}, &signalingSender{})

		assert.Error(t, err)
	})
}
