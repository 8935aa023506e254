package categories

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/daybook-dev/daybook/internal/model"
)

// Service provides in-memory lookup over the category chart.
type Service struct {
	cats []model.Category
	byID map[int]model.Category
}

// NewService creates a Service from a slice of categories.
func NewService(cats []model.Category) *Service {
	byID := make(map[int]model.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	return &Service{cats: cats, byID: byID}
}

// Load reads categories/categories.csv from a ledger root and returns a Service.
func Load(root string) (*Service, error) {
	path := filepath.Join(root, "categories", "categories.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening categories: %w", err)
	}
	defer f.Close()

	cats, err := ReadCategories(f)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return NewService(cats), nil
}

// All returns all categories.
func (s *Service) All() []model.Category {
	return s.cats
}

// Get returns a category by ID.
func (s *Service) Get(catID int) (model.Category, bool) {
	c, ok := s.byID[catID]
	return c, ok
}

// Exists reports whether a category ID exists.
func (s *Service) Exists(catID int) bool {
	_, ok := s.byID[catID]
	return ok
}

// ByKind returns all categories of the given kind.
func (s *Service) ByKind(kind model.CategoryKind) []model.Category {
	var result []model.Category
	for _, c := range s.cats {
		if c.Kind == kind {
			result = append(result, c)
		}
	}
	return result
}

// DefaultForDirection returns the catch-all category for a direction, used
// when a scanned payment gives no better signal.
func (s *Service) DefaultForDirection(dir model.Direction) (model.Category, bool) {
	kind := model.CategoryKindExpense
	if dir == model.DirectionIncome {
		kind = model.CategoryKindIncome
	}
	var fallback model.Category
	found := false
	for _, c := range s.cats {
		if c.Kind != kind {
			continue
		}
		if !found {
			fallback, found = c, true
		}
		if c.Name == "Other" {
			return c, true
		}
	}
	return fallback, found
}

// Save writes the chart to categories/categories.csv under root.
func (s *Service) Save(root string) error {
	dir := filepath.Join(root, "categories")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating categories dir: %w", err)
	}

	path := filepath.Join(dir, "categories.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating categories file: %w", err)
	}
	defer f.Close()

	if err := WriteCategories(f, s.cats); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}
