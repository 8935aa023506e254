package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsPlan is a row in savings/plans.csv.
type SavingsPlan struct {
	ID           int
	Name         string
	StartDate    time.Time
	TargetDate   time.Time
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
}

// SavingsProgress is the computed state of a plan at a given date. It is
// never stored; callers recompute it from the plan and an explicit "today".
type SavingsProgress struct {
	CurrentAmount    decimal.Decimal
	TargetAmount     decimal.Decimal
	ElapsedDays      int
	TotalDays        int
	RemainingDays    int
	Progress         float64 // saved/target, clamped to [0,1]; 0 when target is 0
	ExpectedProgress float64 // elapsed/total, clamped to [0,1]
	OnTrack          bool
}
