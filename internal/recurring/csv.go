package recurring

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daybook-dev/daybook/internal/model"
)

// Header is the CSV header for charges.csv.
const Header = "id,name,amount,direction,category_id,frequency,anchor,last_posted,enabled"

const (
	numFields  = 9
	dateFormat = "2006-01-02"
	colID      = 0
	colName    = 1
	colAmount  = 2
	colDir     = 3
	colCatID   = 4
	colFreq    = 5
	colAnchor  = 6
	colLast    = 7
	colEnabled = 8
)

// ReadCharges reads all recurring charges from a charges.csv reader.
func ReadCharges(r io.Reader) ([]model.RecurringCharge, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading charges CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var charges []model.RecurringCharge
	for i, rec := range records[1:] {
		charge, err := UnmarshalCharge(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		charges = append(charges, charge)
	}
	return charges, nil
}

// WriteCharges writes charges to a charges.csv writer (including header).
func WriteCharges(w io.Writer, charges []model.RecurringCharge) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "name", "amount", "direction", "category_id", "frequency", "anchor", "last_posted", "enabled"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, charge := range charges {
		if err := cw.Write(MarshalCharge(charge)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalCharge converts a RecurringCharge to a CSV row.
func MarshalCharge(charge model.RecurringCharge) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(charge.ID)
	row[colName] = charge.Name
	row[colAmount] = charge.Amount.StringFixed(2)
	row[colDir] = string(charge.Direction)
	row[colCatID] = strconv.Itoa(charge.CategoryID)
	row[colFreq] = string(charge.Rule.Frequency)
	if charge.Rule.Anchor != 0 {
		row[colAnchor] = strconv.Itoa(charge.Rule.Anchor)
	}
	row[colLast] = charge.LastPosted.Format(dateFormat)
	row[colEnabled] = strconv.FormatBool(charge.Enabled)
	return row
}

// UnmarshalCharge converts a CSV row to a RecurringCharge.
func UnmarshalCharge(record []string) (model.RecurringCharge, error) {
	if len(record) != numFields {
		return model.RecurringCharge{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	chargeID, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.RecurringCharge{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.RecurringCharge{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	catID, err := strconv.Atoi(record[colCatID])
	if err != nil {
		return model.RecurringCharge{}, fmt.Errorf("parsing category_id %q: %w", record[colCatID], err)
	}

	var anchor int
	if record[colAnchor] != "" {
		anchor, err = strconv.Atoi(record[colAnchor])
		if err != nil {
			return model.RecurringCharge{}, fmt.Errorf("parsing anchor %q: %w", record[colAnchor], err)
		}
	}

	lastPosted, err := time.Parse(dateFormat, record[colLast])
	if err != nil {
		return model.RecurringCharge{}, fmt.Errorf("parsing last_posted %q: %w", record[colLast], err)
	}

	enabled, err := strconv.ParseBool(record[colEnabled])
	if err != nil {
		return model.RecurringCharge{}, fmt.Errorf("parsing enabled %q: %w", record[colEnabled], err)
	}

	charge := model.RecurringCharge{
		ID:         chargeID,
		Name:       record[colName],
		Amount:     amount,
		Direction:  model.Direction(record[colDir]),
		CategoryID: catID,
		Rule: model.RecurrenceRule{
			Frequency: model.Frequency(record[colFreq]),
			Anchor:    anchor,
		},
		LastPosted: lastPosted,
		Enabled:    enabled,
	}

	if err := charge.Rule.Validate(); err != nil {
		return model.RecurringCharge{}, fmt.Errorf("charge %d: %w", chargeID, err)
	}
	return charge, nil
}
