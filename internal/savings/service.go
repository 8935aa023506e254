package savings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daybook-dev/daybook/internal/model"
	"github.com/daybook-dev/daybook/internal/recur"
)

const plansFile = "savings/plans.csv"

// Service manages savings plans stored under a ledger root.
type Service struct {
	root          string
	onTrackFactor float64
}

// NewService creates a savings Service. onTrackFactor is the slack applied
// to expected progress; pass recur.DefaultOnTrackFactor when the config
// gives none.
func NewService(root string, onTrackFactor float64) *Service {
	if onTrackFactor <= 0 {
		onTrackFactor = recur.DefaultOnTrackFactor
	}
	return &Service{root: root, onTrackFactor: onTrackFactor}
}

// List reads all plans. A missing file means no plans yet.
func (s *Service) List() ([]model.SavingsPlan, error) {
	f, err := os.Open(filepath.Join(s.root, plansFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening plans: %w", err)
	}
	defer f.Close()

	return ReadPlans(f)
}

// Save rewrites the plans file.
func (s *Service) Save(plans []model.SavingsPlan) error {
	dir := filepath.Join(s.root, "savings")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating savings dir: %w", err)
	}

	f, err := os.Create(filepath.Join(s.root, plansFile))
	if err != nil {
		return fmt.Errorf("creating plans file: %w", err)
	}
	defer f.Close()

	if err := WritePlans(f, plans); err != nil {
		return fmt.Errorf("writing plans: %w", err)
	}
	return nil
}

// Add appends a plan, assigning the next free ID.
func (s *Service) Add(plan model.SavingsPlan) (int, error) {
	if plan.TargetAmount.IsNegative() {
		return 0, fmt.Errorf("target amount %s must not be negative", plan.TargetAmount)
	}
	if plan.TargetDate.Before(plan.StartDate) {
		return 0, fmt.Errorf("target date %s before start date %s",
			plan.TargetDate.Format("2006-01-02"), plan.StartDate.Format("2006-01-02"))
	}

	plans, err := s.List()
	if err != nil {
		return 0, err
	}

	maxID := 0
	for _, p := range plans {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	plan.ID = maxID + 1

	plans = append(plans, plan)
	if err := s.Save(plans); err != nil {
		return 0, err
	}
	return plan.ID, nil
}

// Deposit adds amount to a plan's saved total.
func (s *Service) Deposit(planID int, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("deposit amount %s must be positive", amount)
	}

	plans, err := s.List()
	if err != nil {
		return err
	}

	for i := range plans {
		if plans[i].ID == planID {
			plans[i].SavedAmount = plans[i].SavedAmount.Add(amount)
			return s.Save(plans)
		}
	}
	return fmt.Errorf("no plan with ID %d", planID)
}

// PlanStatus pairs a plan with its computed progress.
type PlanStatus struct {
	Plan     model.SavingsPlan
	Progress model.SavingsProgress
}

// Statuses evaluates every plan at the given date.
func (s *Service) Statuses(today time.Time) ([]PlanStatus, error) {
	plans, err := s.List()
	if err != nil {
		return nil, err
	}

	statuses := make([]PlanStatus, 0, len(plans))
	for _, plan := range plans {
		statuses = append(statuses, PlanStatus{
			Plan: plan,
			Progress: recur.ComputeSavingsProgress(
				plan.StartDate, plan.TargetDate,
				plan.SavedAmount, plan.TargetAmount,
				today, s.onTrackFactor,
			),
		})
	}
	return statuses, nil
}
