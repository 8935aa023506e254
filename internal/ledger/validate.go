package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/daybook-dev/daybook/internal/id"
	"github.com/daybook-dev/daybook/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryID, e.Description)
}

// CategoryChecker tests whether a category ID exists in the chart.
type CategoryChecker interface {
	Exists(catID int) bool
}

var validDirections = map[model.Direction]bool{
	model.DirectionExpense: true,
	model.DirectionIncome:  true,
}

var validStatuses = map[model.TxStatus]bool{
	model.StatusAutoConfirmed: true,
	model.StatusPendingReview: true,
	model.StatusUserConfirmed: true,
	model.StatusVoided:        true,
}

// ValidateTransactions enforces 5 invariants on a month's transactions.
func ValidateTransactions(txns []model.Transaction, cats CategoryChecker, year, month int) []ValidationError {
	var errs []ValidationError

	for _, txn := range txns {
		// Invariant 1: Positive amount with at most 2 decimal places.
		if !txn.Amount.IsPositive() {
			errs = append(errs, ValidationError{
				Invariant:   1,
				EntryID:     txn.EntryID,
				Description: fmt.Sprintf("amount %s must be positive", txn.Amount),
			})
		}
		hundred := decimal.NewFromInt(100)
		if !txn.Amount.Mul(hundred).Equal(txn.Amount.Mul(hundred).Floor()) {
			errs = append(errs, ValidationError{
				Invariant:   1,
				EntryID:     txn.EntryID,
				Description: fmt.Sprintf("amount %s has more than 2 decimal places", txn.Amount),
			})
		}

		// Invariant 2: Valid category reference.
		if !cats.Exists(txn.CategoryID) {
			errs = append(errs, ValidationError{
				Invariant:   2,
				EntryID:     txn.EntryID,
				Description: fmt.Sprintf("unknown category %d", txn.CategoryID),
			})
		}

		// Invariant 3: Date within month.
		if txn.Date.Year() != year || int(txn.Date.Month()) != month {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryID:     txn.EntryID,
				Description: fmt.Sprintf("date %s not in %04d-%02d", txn.Date.Format("2006-01-02"), year, month),
			})
		}

		// Invariant 4: Known direction and status values.
		if !validDirections[txn.Direction] {
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryID:     txn.EntryID,
				Description: fmt.Sprintf("unknown direction %q", txn.Direction),
			})
		}
		if !validStatuses[txn.Status] {
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryID:     txn.EntryID,
				Description: fmt.Sprintf("unknown status %q", txn.Status),
			})
		}
	}

	// Invariant 5: Unique sequential IDs, contiguous 1..N.
	seqSeen := make(map[int]bool)
	for _, txn := range txns {
		_, _, seq, err := id.ParseEntryID(txn.EntryID)
		if err != nil {
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     txn.EntryID,
				Description: fmt.Sprintf("invalid entry ID: %v", err),
			})
			continue
		}
		if seqSeen[seq] {
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     txn.EntryID,
				Description: fmt.Sprintf("duplicate sequence %d", seq),
			})
		}
		seqSeen[seq] = true
	}
	for i := 1; i <= len(seqSeen); i++ {
		if !seqSeen[i] {
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     fmt.Sprintf("seq %d", i),
				Description: fmt.Sprintf("missing sequence %d in 1..%d", i, len(seqSeen)),
			})
		}
	}

	return errs
}
