package recurring

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/daybook-dev/daybook/internal/ledger"
	"github.com/daybook-dev/daybook/internal/model"
	"github.com/daybook-dev/daybook/internal/recur"
)

const chargesFile = "recurring/charges.csv"

// Service manages recurring charges and posts them to the ledger when due.
type Service struct {
	root   string
	ledger *ledger.Service
}

// NewService creates a recurring Service over a ledger root.
func NewService(root string, led *ledger.Service) *Service {
	return &Service{root: root, ledger: led}
}

// List reads all charges. A missing file means no charges yet.
func (s *Service) List() ([]model.RecurringCharge, error) {
	f, err := os.Open(filepath.Join(s.root, chargesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening charges: %w", err)
	}
	defer f.Close()

	return ReadCharges(f)
}

// Save rewrites the charges file.
func (s *Service) Save(charges []model.RecurringCharge) error {
	dir := filepath.Join(s.root, "recurring")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating recurring dir: %w", err)
	}

	f, err := os.Create(filepath.Join(s.root, chargesFile))
	if err != nil {
		return fmt.Errorf("creating charges file: %w", err)
	}
	defer f.Close()

	if err := WriteCharges(f, charges); err != nil {
		return fmt.Errorf("writing charges: %w", err)
	}
	return nil
}

// Add appends a charge, assigning the next free ID. The charge's rule must
// validate and LastPosted seeds the schedule (first posting lands one full
// period after it).
func (s *Service) Add(charge model.RecurringCharge) (int, error) {
	if err := charge.Rule.Validate(); err != nil {
		return 0, err
	}
	if !charge.Amount.IsPositive() {
		return 0, fmt.Errorf("charge amount %s must be positive", charge.Amount)
	}

	charges, err := s.List()
	if err != nil {
		return 0, err
	}

	maxID := 0
	for _, c := range charges {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	charge.ID = maxID + 1

	charges = append(charges, charge)
	if err := s.Save(charges); err != nil {
		return 0, err
	}
	return charge.ID, nil
}

// DueCharge pairs a charge with its next due date.
type DueCharge struct {
	Charge model.RecurringCharge
	DueOn  time.Time
}

// Due returns enabled charges whose next due date is on or before today.
func (s *Service) Due(today time.Time) ([]DueCharge, error) {
	charges, err := s.List()
	if err != nil {
		return nil, err
	}

	var due []DueCharge
	for _, charge := range charges {
		if !charge.Enabled {
			continue
		}
		next, err := recur.NextDueDate(charge.Rule, charge.LastPosted)
		if err != nil {
			return nil, fmt.Errorf("charge %d (%s): %w", charge.ID, charge.Name, err)
		}
		if !next.After(today) {
			due = append(due, DueCharge{Charge: charge, DueOn: next})
		}
	}
	return due, nil
}

// PostDue posts every elapsed due date for all enabled charges up to today,
// catching up multiple periods if the command has not run for a while, and
// advances each charge's LastPosted. Returns the created entry IDs.
func (s *Service) PostDue(today time.Time) ([]string, error) {
	charges, err := s.List()
	if err != nil {
		return nil, err
	}

	var entryIDs []string
	changed := false

	for i := range charges {
		charge := &charges[i]
		if !charge.Enabled {
			continue
		}

		for {
			next, err := recur.NextDueDate(charge.Rule, charge.LastPosted)
			if err != nil {
				return entryIDs, fmt.Errorf("charge %d (%s): %w", charge.ID, charge.Name, err)
			}
			if next.After(today) {
				break
			}

			entryID, err := s.ledger.Add(ledger.AddParams{
				Date:       next,
				Amount:     charge.Amount,
				Direction:  charge.Direction,
				CategoryID: charge.CategoryID,
				Channel:    model.ChannelUnknown,
				Source:     model.SourceRecurring,
				Status:     model.StatusAutoConfirmed,
				Note:       charge.Name,
			})
			if err != nil {
				return entryIDs, fmt.Errorf("posting charge %d (%s): %w", charge.ID, charge.Name, err)
			}

			entryIDs = append(entryIDs, entryID)
			charge.LastPosted = next
			changed = true
		}
	}

	if changed {
		if err := s.Save(charges); err != nil {
			return entryIDs, err
		}
	}
	return entryIDs, nil
}
