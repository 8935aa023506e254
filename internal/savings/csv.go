package savings

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daybook-dev/daybook/internal/model"
)

const (
	numFields  = 6
	dateFormat = "2006-01-02"
	colID      = 0
	colName    = 1
	colStart   = 2
	colTarget  = 3
	colGoal    = 4
	colSaved   = 5
)

// ReadPlans reads all savings plans from a plans.csv reader.
func ReadPlans(r io.Reader) ([]model.SavingsPlan, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading plans CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var plans []model.SavingsPlan
	for i, rec := range records[1:] {
		plan, err := UnmarshalPlan(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// WritePlans writes plans to a plans.csv writer (including header).
func WritePlans(w io.Writer, plans []model.SavingsPlan) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "name", "start_date", "target_date", "target_amount", "saved_amount"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, plan := range plans {
		if err := cw.Write(MarshalPlan(plan)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalPlan converts a SavingsPlan to a CSV row.
func MarshalPlan(plan model.SavingsPlan) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(plan.ID)
	row[colName] = plan.Name
	row[colStart] = plan.StartDate.Format(dateFormat)
	row[colTarget] = plan.TargetDate.Format(dateFormat)
	row[colGoal] = plan.TargetAmount.StringFixed(2)
	row[colSaved] = plan.SavedAmount.StringFixed(2)
	return row
}

// UnmarshalPlan converts a CSV row to a SavingsPlan.
func UnmarshalPlan(record []string) (model.SavingsPlan, error) {
	if len(record) != numFields {
		return model.SavingsPlan{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	planID, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.SavingsPlan{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}

	start, err := time.Parse(dateFormat, record[colStart])
	if err != nil {
		return model.SavingsPlan{}, fmt.Errorf("parsing start_date %q: %w", record[colStart], err)
	}

	target, err := time.Parse(dateFormat, record[colTarget])
	if err != nil {
		return model.SavingsPlan{}, fmt.Errorf("parsing target_date %q: %w", record[colTarget], err)
	}

	goal, err := decimal.NewFromString(record[colGoal])
	if err != nil {
		return model.SavingsPlan{}, fmt.Errorf("parsing target_amount %q: %w", record[colGoal], err)
	}

	saved, err := decimal.NewFromString(record[colSaved])
	if err != nil {
		return model.SavingsPlan{}, fmt.Errorf("parsing saved_amount %q: %w", record[colSaved], err)
	}

	return model.SavingsPlan{
		ID:           planID,
		Name:         record[colName],
		StartDate:    start,
		TargetDate:   target,
		TargetAmount: goal,
		SavedAmount:  saved,
	}, nil
}
