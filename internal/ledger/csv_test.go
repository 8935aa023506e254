package ledger

import (
	"bytes"
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

func TestRoundTrip(t *testing.T) {
	txns := []model.Transaction{
		{
			EntryID:      "2025-03-001",
			Date:         date(2025, 3, 14),
			Amount:       dec("12.34"),
			Direction:    model.DirectionExpense,
			CategoryID:   101,
			Counterparty: "星巴克",
			Channel:      model.ChannelWeChat,
			Source:       model.SourceScan,
			Confidence:   dec("0.95"),
			Status:       model.StatusAutoConfirmed,
			Note:         "morning coffee",
		},
		{
			EntryID:    "2025-03-002",
			Date:       date(2025, 3, 15),
			Amount:     dec("8000.00"),
			Direction:  model.DirectionIncome,
			CategoryID: 201,
			Channel:    model.ChannelBank,
			Source:     model.SourceManual,
			Status:     model.StatusUserConfirmed,
		},
	}

	var buf bytes.Buffer
	err := WriteTransactions(&buf, txns)
	require.NoError(t, err)

	got, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, txns[0].EntryID, got[0].EntryID)
	assert.Equal(t, txns[0].Date, got[0].Date)
	assert.True(t, got[0].Amount.Equal(dec("12.34")))
	assert.Equal(t, txns[0].Direction, got[0].Direction)
	assert.Equal(t, txns[0].CategoryID, got[0].CategoryID)
	assert.Equal(t, txns[0].Counterparty, got[0].Counterparty)
	assert.Equal(t, txns[0].Channel, got[0].Channel)
	assert.Equal(t, txns[0].Source, got[0].Source)
	assert.True(t, got[0].Confidence.Equal(dec("0.95")))
	assert.Equal(t, txns[0].Status, got[0].Status)
	assert.Equal(t, txns[0].Note, got[0].Note)

	assert.Equal(t, txns[1].EntryID, got[1].EntryID)
	assert.True(t, got[1].Confidence.IsZero())
}

func TestUnmarshalTransaction_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"wrong field count", []string{"2025-03-001", "2025-03-14"}},
		{"bad date", []string{"2025-03-001", "14/03/2025", "12.34", "expense", "101", "", "wechat", "scan", "", "auto-confirmed", ""}},
		{"bad amount", []string{"2025-03-001", "2025-03-14", "abc", "expense", "101", "", "wechat", "scan", "", "auto-confirmed", ""}},
		{"bad category", []string{"2025-03-001", "2025-03-14", "12.34", "expense", "x", "", "wechat", "scan", "", "auto-confirmed", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalTransaction(tt.row)
			require.Error(t, err)
		})
	}
}
