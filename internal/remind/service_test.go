package remind

import (
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-dev/daybook/internal/categories"
	"github.com/daybook-dev/daybook/internal/ledger"
	"github.com/daybook-dev/daybook/internal/model"
	"github.com/daybook-dev/daybook/internal/recur"
	"github.com/daybook-dev/daybook/internal/recurring"
	"github.com/daybook-dev/daybook/internal/savings"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newService(t *testing.T) (*Service, *recurring.Service, *savings.Service) {
	t.Helper()
	root := t.TempDir()
	cats := categories.NewService(categories.DefaultChart())
	rec := recurring.NewService(root, ledger.NewService(root, cats))
	sav := savings.NewService(root, recur.DefaultOnTrackFactor)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return New(Config{Interval: time.Hour}, rec, sav, log), rec, sav
}

func TestSweep_Empty(t *testing.T) {
	svc, _, _ := newService(t)

	summary, err := svc.Sweep(date(2025, 3, 1))
	require.NoError(t, err)
	assert.Zero(t, summary.DueCharges)
	assert.Zero(t, summary.OffTrackPlans)
}

func TestSweep_FindsDueAndOffTrack(t *testing.T) {
	svc, rec, sav := newService(t)

	_, err := rec.Add(model.RecurringCharge{
		Name:       "Rent",
		Amount:     dec("2000.00"),
		Direction:  model.DirectionExpense,
		CategoryID: 103,
		Rule:       model.RecurrenceRule{Frequency: model.FreqMonthly, Anchor: 1},
		LastPosted: date(2025, 1, 1),
		Enabled:    true,
	})
	require.NoError(t, err)

	_, err = sav.Add(model.SavingsPlan{
		Name:         "Vacation",
		StartDate:    date(2025, 1, 1),
		TargetDate:   date(2025, 4, 11),
		TargetAmount: dec("10000.00"),
		SavedAmount:  dec("1000.00"), // 10% at 50% elapsed
	})
	require.NoError(t, err)

	summary, err := svc.Sweep(date(2025, 2, 20))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.DueCharges)
	assert.Equal(t, 1, summary.OffTrackPlans)

	last, count := svc.LastSweep()
	assert.Equal(t, summary, last)
	assert.Equal(t, int64(1), count)
}

func TestStartStop(t *testing.T) {
	svc, _, _ := newService(t)

	require.NoError(t, svc.Start())
	svc.Stop()

	// Start runs an immediate sweep.
	_, count := svc.LastSweep()
	assert.GreaterOrEqual(t, count, int64(1))
}

func TestStart_InvalidInterval(t *testing.T) {
	svc, _, _ := newService(t)
	svc.cfg.Interval = 0
	require.Error(t, svc.Start())
}
