package savings

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-dev/daybook/internal/model"
	"github.com/daybook-dev/daybook/internal/recur"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func laptopPlan() model.SavingsPlan {
	return model.SavingsPlan{
		Name:         "New laptop",
		StartDate:    date(2025, 1, 1),
		TargetDate:   date(2025, 4, 11), // 100 days
		TargetAmount: dec("10000.00"),
		SavedAmount:  dec("5000.00"),
	}
}

func TestAddAndList(t *testing.T) {
	svc := NewService(t.TempDir(), recur.DefaultOnTrackFactor)

	planID, err := svc.Add(laptopPlan())
	require.NoError(t, err)
	assert.Equal(t, 1, planID)

	plans, err := svc.List()
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "New laptop", plans[0].Name)
	assert.True(t, plans[0].SavedAmount.Equal(dec("5000.00")))
}

func TestAdd_Rejections(t *testing.T) {
	svc := NewService(t.TempDir(), recur.DefaultOnTrackFactor)

	backwards := laptopPlan()
	backwards.TargetDate = date(2024, 1, 1)
	_, err := svc.Add(backwards)
	require.Error(t, err)

	negative := laptopPlan()
	negative.TargetAmount = dec("-1")
	_, err = svc.Add(negative)
	require.Error(t, err)
}

func TestDeposit(t *testing.T) {
	svc := NewService(t.TempDir(), recur.DefaultOnTrackFactor)
	planID, err := svc.Add(laptopPlan())
	require.NoError(t, err)

	require.NoError(t, svc.Deposit(planID, dec("500.00")))

	plans, err := svc.List()
	require.NoError(t, err)
	assert.True(t, plans[0].SavedAmount.Equal(dec("5500.00")))

	require.Error(t, svc.Deposit(planID, decimal.Zero))
	require.Error(t, svc.Deposit(99, dec("1.00")))
}

func TestStatuses(t *testing.T) {
	svc := NewService(t.TempDir(), recur.DefaultOnTrackFactor)
	_, err := svc.Add(laptopPlan())
	require.NoError(t, err)

	// Halfway through time with half the money saved.
	statuses, err := svc.Statuses(date(2025, 2, 20))
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	p := statuses[0].Progress
	assert.InDelta(t, 0.5, p.Progress, 0.001)
	assert.InDelta(t, 0.5, p.ExpectedProgress, 0.001)
	assert.True(t, p.OnTrack)
}

func TestStatuses_OffTrackUsesFactor(t *testing.T) {
	// The same plan flips off-track under a stricter factor.
	plan := laptopPlan()
	plan.SavedAmount = dec("4600.00") // 46% at 50% elapsed

	strict := NewService(t.TempDir(), 1.0)
	_, err := strict.Add(plan)
	require.NoError(t, err)

	statuses, err := strict.Statuses(date(2025, 2, 20))
	require.NoError(t, err)
	assert.False(t, statuses[0].Progress.OnTrack)

	loose := NewService(t.TempDir(), 0.9)
	_, err = loose.Add(plan)
	require.NoError(t, err)

	statuses, err = loose.Statuses(date(2025, 2, 20))
	require.NoError(t, err)
	assert.True(t, statuses[0].Progress.OnTrack)
}
