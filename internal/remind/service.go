// Package remind runs the background reminder service: a cron-scheduled
// sweep over recurring charges and savings plans that surfaces anything
// needing attention as structured log events.
package remind

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/daybook-dev/daybook/internal/recurring"
	"github.com/daybook-dev/daybook/internal/savings"
)

// Config controls the reminder service.
type Config struct {
	Interval time.Duration
}

// Summary is the outcome of one reminder sweep.
type Summary struct {
	CheckedAt     time.Time
	DueCharges    int
	OffTrackPlans int
}

// Service periodically checks for due charges and off-track savings plans.
type Service struct {
	cfg       Config
	recurring *recurring.Service
	savings   *savings.Service
	cron      *cron.Cron
	log       *logrus.Logger

	mu         sync.Mutex
	lastSweep  Summary
	sweepCount int64
}

// New creates a reminder Service.
func New(cfg Config, rec *recurring.Service, sav *savings.Service, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetOutput(os.Stderr)
	}
	return &Service{
		cfg:       cfg,
		recurring: rec,
		savings:   sav,
		cron:      cron.New(),
		log:       log,
	}
}

// Start schedules the periodic sweep and runs one immediately.
func (s *Service) Start() error {
	if s.cfg.Interval <= 0 {
		return fmt.Errorf("invalid reminder interval %s", s.cfg.Interval)
	}

	spec := "@every " + s.cfg.Interval.String()
	if _, err := s.cron.AddFunc(spec, func() {
		if _, err := s.Sweep(time.Now()); err != nil {
			s.log.WithError(err).Error("reminder sweep failed")
		}
	}); err != nil {
		return fmt.Errorf("scheduling reminder sweep: %w", err)
	}

	s.cron.Start()
	s.log.WithField("interval", s.cfg.Interval.String()).Info("reminder service started")

	if _, err := s.Sweep(time.Now()); err != nil {
		s.log.WithError(err).Error("initial reminder sweep failed")
	}
	return nil
}

// Stop halts the schedule, waiting for a running sweep to finish.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("reminder service stopped")
}

// Sweep performs one check at the given date and logs what it finds.
func (s *Service) Sweep(today time.Time) (Summary, error) {
	summary := Summary{CheckedAt: today}

	due, err := s.recurring.Due(today)
	if err != nil {
		return summary, fmt.Errorf("checking due charges: %w", err)
	}
	summary.DueCharges = len(due)
	for _, d := range due {
		s.log.WithFields(logrus.Fields{
			"charge": d.Charge.Name,
			"amount": d.Charge.Amount.String(),
			"due_on": d.DueOn.Format("2006-01-02"),
		}).Warn("recurring charge due")
	}

	statuses, err := s.savings.Statuses(today)
	if err != nil {
		return summary, fmt.Errorf("checking savings plans: %w", err)
	}
	for _, st := range statuses {
		if st.Progress.OnTrack {
			continue
		}
		summary.OffTrackPlans++
		s.log.WithFields(logrus.Fields{
			"plan":     st.Plan.Name,
			"progress": fmt.Sprintf("%.0f%%", st.Progress.Progress*100),
			"expected": fmt.Sprintf("%.0f%%", st.Progress.ExpectedProgress*100),
		}).Warn("savings plan off track")
	}

	s.mu.Lock()
	s.lastSweep = summary
	s.sweepCount++
	s.mu.Unlock()

	return summary, nil
}

// LastSweep returns the most recent sweep summary and the total sweep count.
func (s *Service) LastSweep() (Summary, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSweep, s.sweepCount
}
