package recur

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-dev/daybook/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestNextDueDate_Daily(t *testing.T) {
	rule := model.RecurrenceRule{Frequency: model.FreqDaily}

	next, err := NextDueDate(rule, date(2025, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 1, 16), next)

	// Month boundary.
	next, err = NextDueDate(rule, date(2025, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 2, 1), next)
}

func TestNextDueDate_Weekly(t *testing.T) {
	monday := date(2025, 1, 6) // a Monday
	require.Equal(t, time.Monday, monday.Weekday())

	tests := []struct {
		name   string
		anchor int
		last   time.Time
		want   time.Time
	}{
		{"same weekday rolls a full week", 1, monday, date(2025, 1, 13)},
		{"next day", 2, monday, date(2025, 1, 7)},
		{"sunday anchor", 7, monday, date(2025, 1, 12)},
		{"from saturday to monday", 1, date(2025, 1, 11), date(2025, 1, 13)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := model.RecurrenceRule{Frequency: model.FreqWeekly, Anchor: tt.anchor}
			next, err := NextDueDate(rule, tt.last)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)

			// Always 1-7 days forward, never the same day.
			gap := int(next.Sub(tt.last).Hours() / 24)
			assert.GreaterOrEqual(t, gap, 1)
			assert.LessOrEqual(t, gap, 7)
		})
	}
}

func TestNextDueDate_Monthly(t *testing.T) {
	tests := []struct {
		name   string
		anchor int
		last   time.Time
		want   time.Time
	}{
		{"normal mid-month", 15, date(2025, 3, 15), date(2025, 4, 15)},
		{"day 31 clamps to feb 28", 31, date(2025, 1, 31), date(2025, 2, 28)},
		{"day 31 clamps to feb 29 leap", 31, date(2024, 1, 31), date(2024, 2, 29)},
		{"day 31 clamps to april 30", 31, date(2025, 3, 31), date(2025, 4, 30)},
		{"december wraps to january", 10, date(2025, 12, 10), date(2026, 1, 10)},
		{"anchor restores after short month", 31, date(2025, 2, 28), date(2025, 3, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := model.RecurrenceRule{Frequency: model.FreqMonthly, Anchor: tt.anchor}
			next, err := NextDueDate(rule, tt.last)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}

func TestNextDueDate_Yearly(t *testing.T) {
	rule := model.RecurrenceRule{Frequency: model.FreqYearly}

	next, err := NextDueDate(rule, date(2025, 6, 15))
	require.NoError(t, err)
	assert.Equal(t, date(2026, 6, 15), next)

	// Feb 29 clamps to Feb 28 in a non-leap target year.
	next, err = NextDueDate(rule, date(2024, 2, 29))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 2, 28), next)
}

func TestNextDueDate_InvalidRules(t *testing.T) {
	tests := []struct {
		name string
		rule model.RecurrenceRule
	}{
		{"daily with anchor", model.RecurrenceRule{Frequency: model.FreqDaily, Anchor: 3}},
		{"yearly with anchor", model.RecurrenceRule{Frequency: model.FreqYearly, Anchor: 1}},
		{"weekly anchor out of range", model.RecurrenceRule{Frequency: model.FreqWeekly, Anchor: 8}},
		{"weekly anchor missing", model.RecurrenceRule{Frequency: model.FreqWeekly}},
		{"monthly anchor out of range", model.RecurrenceRule{Frequency: model.FreqMonthly, Anchor: 32}},
		{"unknown frequency", model.RecurrenceRule{Frequency: "fortnightly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NextDueDate(tt.rule, date(2025, 1, 1))
			require.Error(t, err)
		})
	}
}

func TestNextDueDate_StripsTimeOfDay(t *testing.T) {
	rule := model.RecurrenceRule{Frequency: model.FreqDaily}
	last := time.Date(2025, 1, 15, 18, 42, 7, 0, time.UTC)

	next, err := NextDueDate(rule, last)
	require.NoError(t, err)
	assert.Equal(t, date(2025, 1, 16), next)
}

func TestComputeSavingsProgress_Halfway(t *testing.T) {
	start := date(2025, 1, 1)
	target := date(2025, 4, 11) // 100 days

	p := ComputeSavingsProgress(start, target, dec("50"), dec("100"), date(2025, 2, 20), DefaultOnTrackFactor)

	assert.Equal(t, 100, p.TotalDays)
	assert.Equal(t, 50, p.ElapsedDays)
	assert.Equal(t, 50, p.RemainingDays)
	assert.InDelta(t, 0.5, p.Progress, 0.001)
	assert.InDelta(t, 0.5, p.ExpectedProgress, 0.001)
	assert.True(t, p.OnTrack, "0.5 >= 0.5*0.9")
}

func TestComputeSavingsProgress_Behind(t *testing.T) {
	start := date(2025, 1, 1)
	target := date(2025, 4, 11)

	// 30% saved at 50% elapsed: 0.3 < 0.45.
	p := ComputeSavingsProgress(start, target, dec("30"), dec("100"), date(2025, 2, 20), DefaultOnTrackFactor)
	assert.False(t, p.OnTrack)

	// 46% is within the 0.9 slack of 50%.
	p = ComputeSavingsProgress(start, target, dec("46"), dec("100"), date(2025, 2, 20), DefaultOnTrackFactor)
	assert.True(t, p.OnTrack)
}

func TestComputeSavingsProgress_ZeroTarget(t *testing.T) {
	p := ComputeSavingsProgress(date(2025, 1, 1), date(2025, 2, 1), dec("10"), decimal.Zero, date(2025, 1, 15), DefaultOnTrackFactor)
	assert.Zero(t, p.Progress)
}

func TestComputeSavingsProgress_ZeroDaySpan(t *testing.T) {
	day := date(2025, 1, 1)

	// Today past the target: expected progress pegged at 1.
	p := ComputeSavingsProgress(day, day, dec("0"), dec("100"), date(2025, 1, 2), DefaultOnTrackFactor)
	assert.InDelta(t, 1.0, p.ExpectedProgress, 0.001)
	assert.False(t, p.OnTrack)

	// Today before the target: expected progress is 0.
	p = ComputeSavingsProgress(day, day, dec("0"), dec("100"), date(2024, 12, 31), DefaultOnTrackFactor)
	assert.Zero(t, p.ExpectedProgress)
	assert.True(t, p.OnTrack)
}

func TestComputeSavingsProgress_Clamps(t *testing.T) {
	start := date(2025, 1, 1)
	target := date(2025, 1, 11)

	// Overshoot on both axes.
	p := ComputeSavingsProgress(start, target, dec("150"), dec("100"), date(2025, 2, 1), DefaultOnTrackFactor)
	assert.InDelta(t, 1.0, p.Progress, 0.001)
	assert.InDelta(t, 1.0, p.ExpectedProgress, 0.001)
	assert.Equal(t, 0, p.RemainingDays)

	// Today before start: elapsed floors at 0.
	p = ComputeSavingsProgress(start, target, dec("0"), dec("100"), date(2024, 12, 1), DefaultOnTrackFactor)
	assert.Equal(t, 0, p.ElapsedDays)
	assert.Zero(t, p.ExpectedProgress)
}
