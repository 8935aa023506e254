package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often a recurrence fires.
type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
	FreqYearly  Frequency = "yearly"
)

// RecurrenceRule describes when a recurring charge comes due.
// Anchor is an ISO weekday (1=Monday..7=Sunday) for weekly rules and a
// day-of-month (1-31) for monthly rules; it must be zero otherwise.
type RecurrenceRule struct {
	Frequency Frequency
	Anchor    int
}

// Validate checks the anchor against the frequency.
func (r RecurrenceRule) Validate() error {
	switch r.Frequency {
	case FreqDaily, FreqYearly:
		if r.Anchor != 0 {
			return fmt.Errorf("%s rule must not have an anchor, got %d", r.Frequency, r.Anchor)
		}
	case FreqWeekly:
		if r.Anchor < 1 || r.Anchor > 7 {
			return fmt.Errorf("weekly rule needs weekday anchor 1-7, got %d", r.Anchor)
		}
	case FreqMonthly:
		if r.Anchor < 1 || r.Anchor > 31 {
			return fmt.Errorf("monthly rule needs day-of-month anchor 1-31, got %d", r.Anchor)
		}
	default:
		return fmt.Errorf("unknown frequency %q", r.Frequency)
	}
	return nil
}

// RecurringCharge is a row in recurring/charges.csv: a named transaction
// template posted to the ledger every time its rule comes due.
type RecurringCharge struct {
	ID         int
	Name       string
	Amount     decimal.Decimal
	Direction  Direction
	CategoryID int
	Rule       RecurrenceRule
	LastPosted time.Time
	Enabled    bool
}
