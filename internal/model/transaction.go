package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxStatus represents the lifecycle state of a ledger transaction.
type TxStatus string

const (
	StatusAutoConfirmed TxStatus = "auto-confirmed"
	StatusPendingReview TxStatus = "pending-review"
	StatusUserConfirmed TxStatus = "user-confirmed"
	StatusVoided        TxStatus = "voided"
)

// TxSource identifies how a transaction entered the ledger.
type TxSource string

const (
	SourceManual    TxSource = "manual"
	SourceScan      TxSource = "scan"
	SourceRecurring TxSource = "recurring"
)

// Transaction is a single row in a month's ledger.csv.
type Transaction struct {
	EntryID      string // "YYYY-MM-NNN"
	Date         time.Time
	Amount       decimal.Decimal // always positive; Direction carries the sign
	Direction    Direction
	CategoryID   int
	Counterparty string
	Channel      Channel
	Source       TxSource
	Confidence   decimal.Decimal
	Status       TxStatus
	Note         string
}

// Signed returns the amount with expense rows negated, for balance math.
func (t Transaction) Signed() decimal.Decimal {
	if t.Direction == DirectionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
