package recurring

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-dev/daybook/internal/categories"
	"github.com/daybook-dev/daybook/internal/ledger"
	"github.com/daybook-dev/daybook/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newFixture(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	cats := categories.NewService(categories.DefaultChart())
	return NewService(dir, ledger.NewService(dir, cats))
}

func monthlyRent(lastPosted time.Time) model.RecurringCharge {
	return model.RecurringCharge{
		Name:       "Rent",
		Amount:     dec("2000.00"),
		Direction:  model.DirectionExpense,
		CategoryID: 103,
		Rule:       model.RecurrenceRule{Frequency: model.FreqMonthly, Anchor: 1},
		LastPosted: lastPosted,
		Enabled:    true,
	}
}

func TestAddAndList(t *testing.T) {
	svc := newFixture(t)

	chargeID, err := svc.Add(monthlyRent(date(2025, 1, 1)))
	require.NoError(t, err)
	assert.Equal(t, 1, chargeID)

	chargeID, err = svc.Add(model.RecurringCharge{
		Name:       "Gym",
		Amount:     dec("99.00"),
		Direction:  model.DirectionExpense,
		CategoryID: 106,
		Rule:       model.RecurrenceRule{Frequency: model.FreqWeekly, Anchor: 1},
		LastPosted: date(2025, 1, 6),
		Enabled:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, chargeID)

	charges, err := svc.List()
	require.NoError(t, err)
	require.Len(t, charges, 2)
	assert.Equal(t, "Rent", charges[0].Name)
	assert.True(t, charges[0].Amount.Equal(dec("2000.00")))
	assert.Equal(t, model.FreqWeekly, charges[1].Rule.Frequency)
}

func TestAdd_RejectsInvalid(t *testing.T) {
	svc := newFixture(t)

	bad := monthlyRent(date(2025, 1, 1))
	bad.Rule.Anchor = 0
	_, err := svc.Add(bad)
	require.Error(t, err)

	free := monthlyRent(date(2025, 1, 1))
	free.Amount = decimal.Zero
	_, err = svc.Add(free)
	require.Error(t, err)
}

func TestDue(t *testing.T) {
	svc := newFixture(t)
	_, err := svc.Add(monthlyRent(date(2025, 1, 1)))
	require.NoError(t, err)

	// Not due before Feb 1.
	due, err := svc.Due(date(2025, 1, 20))
	require.NoError(t, err)
	assert.Empty(t, due)

	// Due on Feb 1 itself.
	due, err = svc.Due(date(2025, 2, 1))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, date(2025, 2, 1), due[0].DueOn)
}

func TestDue_SkipsDisabled(t *testing.T) {
	svc := newFixture(t)
	charge := monthlyRent(date(2025, 1, 1))
	charge.Enabled = false
	_, err := svc.Add(charge)
	require.NoError(t, err)

	due, err := svc.Due(date(2025, 6, 1))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestPostDue_SinglePeriod(t *testing.T) {
	svc := newFixture(t)
	_, err := svc.Add(monthlyRent(date(2025, 1, 1)))
	require.NoError(t, err)

	entryIDs, err := svc.PostDue(date(2025, 2, 3))
	require.NoError(t, err)
	require.Len(t, entryIDs, 1)
	assert.Equal(t, "2025-02-001", entryIDs[0])

	// LastPosted advanced; a second run posts nothing.
	entryIDs, err = svc.PostDue(date(2025, 2, 3))
	require.NoError(t, err)
	assert.Empty(t, entryIDs)

	charges, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, date(2025, 2, 1), charges[0].LastPosted)
}

func TestPostDue_CatchesUpMissedPeriods(t *testing.T) {
	svc := newFixture(t)
	_, err := svc.Add(monthlyRent(date(2025, 1, 1)))
	require.NoError(t, err)

	// Three months elapsed without running.
	entryIDs, err := svc.PostDue(date(2025, 4, 15))
	require.NoError(t, err)
	require.Len(t, entryIDs, 3)

	charges, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, date(2025, 4, 1), charges[0].LastPosted)
}

func TestPostDue_WritesLedgerRows(t *testing.T) {
	dir := t.TempDir()
	cats := categories.NewService(categories.DefaultChart())
	led := ledger.NewService(dir, cats)
	svc := NewService(dir, led)

	_, err := svc.Add(monthlyRent(date(2025, 1, 1)))
	require.NoError(t, err)

	_, err = svc.PostDue(date(2025, 2, 1))
	require.NoError(t, err)

	txns, err := led.ReadMonth(2025, 2)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, model.SourceRecurring, txns[0].Source)
	assert.Equal(t, model.StatusAutoConfirmed, txns[0].Status)
	assert.Equal(t, "Rent", txns[0].Note)
	assert.True(t, txns[0].Amount.Equal(dec("2000.00")))
}
