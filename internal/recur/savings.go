package recur

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/daybook-dev/daybook/internal/model"
)

// DefaultOnTrackFactor is the slack applied to expected progress before a
// plan is flagged off-track.
const DefaultOnTrackFactor = 0.9

// ComputeSavingsProgress evaluates a savings plan at an explicit date.
// Progress is saved/target clamped to [0,1], with a zero target defined as
// zero progress. Expected progress is elapsed/total clamped the same way;
// when the plan spans zero days it is 1.0 once today reaches the target
// date and 0.0 before. A plan is on-track while progress is at least
// onTrackFactor of expected.
func ComputeSavingsProgress(start, target time.Time, current, targetAmount decimal.Decimal, today time.Time, onTrackFactor float64) model.SavingsProgress {
	startDay := midnight(start)
	targetDay := midnight(target)
	todayDay := midnight(today)

	totalDays := daysBetween(startDay, targetDay)
	elapsedDays := max(0, daysBetween(startDay, todayDay))
	remainingDays := max(0, daysBetween(todayDay, targetDay))

	progress := 0.0
	if targetAmount.IsPositive() {
		p, _ := current.Div(targetAmount).Float64()
		progress = clamp01(p)
	}

	expected := 0.0
	if totalDays > 0 {
		expected = clamp01(float64(elapsedDays) / float64(totalDays))
	} else if !todayDay.Before(targetDay) {
		expected = 1.0
	}

	return model.SavingsProgress{
		CurrentAmount:    current,
		TargetAmount:     targetAmount,
		ElapsedDays:      elapsedDays,
		TotalDays:        max(0, totalDays),
		RemainingDays:    remainingDays,
		Progress:         progress,
		ExpectedProgress: expected,
		OnTrack:          progress >= expected*onTrackFactor,
	}
}

// daysBetween returns b-a in whole calendar days, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
