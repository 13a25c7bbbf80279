package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
	"github.com/zatekoja/HotelReservationSystem/backend/pkg/config"
)

const (
	feedbackJobName    = "daily-feedback-emails"
	feedbackJobTimeout = 30 * time.Minute
)

// FeedbackSender runs one feedback sweep
type FeedbackSender interface {
	SendDailyFeedbackRequests(ctx context.Context, now time.Time) (services.FeedbackSummary, error)
}

// Scheduler runs the daily feedback sweep at a fixed local time
type Scheduler struct {
	sched    gocron.Scheduler
	job      gocron.Job
	feedback FeedbackSender
	location *time.Location
}

// NewScheduler registers the feedback job at cfg.FeedbackHour:cfg.FeedbackMin
// in the configured timezone. A run still in progress when the next one is
// due is not overlapped; the next run is rescheduled instead.
func NewScheduler(cfg config.SchedulerConfig, feedback FeedbackSender) (*Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", cfg.Timezone, err)
	}

	sched, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Scheduler{sched: sched, feedback: feedback, location: loc}
	job, err := sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(
			gocron.NewAtTime(uint(cfg.FeedbackHour), uint(cfg.FeedbackMin), 0),
		)),
		gocron.NewTask(s.runFeedback),
		gocron.WithName(feedbackJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		sched.Shutdown()
		return nil, fmt.Errorf("failed to register feedback job: %w", err)
	}
	s.job = job
	return s, nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.sched.Start()
	if next, err := s.job.NextRun(); err == nil {
		observability.GetLogger().Info().Str("job", feedbackJobName).Time("next_run", next).Msg("Scheduler started")
	}
}

// NextRun reports when the feedback job fires next
func (s *Scheduler) NextRun() (time.Time, error) {
	return s.job.NextRun()
}

// RunNow triggers the feedback job outside its schedule
func (s *Scheduler) RunNow() error {
	return s.job.RunNow()
}

// Shutdown stops the scheduler, waiting for a running job to finish
func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}

func (s *Scheduler) runFeedback() {
	ctx, cancel := context.WithTimeout(context.Background(), feedbackJobTimeout)
	defer cancel()

	logger := observability.GetLogger()
	summary, err := s.feedback.SendDailyFeedbackRequests(ctx, time.Now().In(s.location))
	if err != nil {
		logger.Error().Err(err).Str("job", feedbackJobName).Msg("Feedback job failed")
		return
	}
	logger.Info().
		Str("job", feedbackJobName).
		Int("sent", summary.Sent).
		Int("failed", summary.Failed).
		Msg("Feedback job completed")
}
