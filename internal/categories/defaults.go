package categories

import "github.com/daybook-dev/daybook/internal/model"

// DefaultChart returns the starter category chart for a new ledger.
func DefaultChart() []model.Category {
	return []model.Category{
		{ID: 101, Name: "Food & Dining", Kind: model.CategoryKindExpense, Description: "Meals, groceries, delivery"},
		{ID: 102, Name: "Transport", Kind: model.CategoryKindExpense, Description: "Transit, ride-hailing, fuel"},
		{ID: 103, Name: "Housing", Kind: model.CategoryKindExpense, Description: "Rent, mortgage, utilities"},
		{ID: 104, Name: "Shopping", Kind: model.CategoryKindExpense, Description: "Clothing, electronics, household"},
		{ID: 105, Name: "Entertainment", Kind: model.CategoryKindExpense, Description: "Movies, games, subscriptions"},
		{ID: 106, Name: "Health", Kind: model.CategoryKindExpense, Description: "Medical, pharmacy, fitness"},
		{ID: 107, Name: "Education", Kind: model.CategoryKindExpense, Description: "Courses, books"},
		{ID: 199, Name: "Other", Kind: model.CategoryKindExpense, Description: "Uncategorized spending"},
		{ID: 201, Name: "Salary", Kind: model.CategoryKindIncome, Description: "Wages and bonuses"},
		{ID: 202, Name: "Investment", Kind: model.CategoryKindIncome, Description: "Interest, dividends"},
		{ID: 203, Name: "Refund", Kind: model.CategoryKindIncome, Description: "Returns and reimbursements"},
		{ID: 299, Name: "Other", Kind: model.CategoryKindIncome, Description: "Uncategorized income"},
	}
}
