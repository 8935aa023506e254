package model

// CategoryKind separates spending categories from income categories.
type CategoryKind string

const (
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindIncome  CategoryKind = "income"
)

// Category represents a row in categories/categories.csv.
type Category struct {
	ID          int
	Name        string
	Kind        CategoryKind
	Description string
}
