package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategories is the fixed set of labels an expense may carry.
// Expenses with no category are reported under "Other".
var ExpenseCategories = []string{
	"Rent",
	"Utilities",
	"Salaries",
	"Inventory",
	"Marketing",
	"Insurance",
	"Maintenance",
	"Office Supplies",
	"Shipping",
	"Other",
}

// ValidExpenseCategory reports whether name is one of the fixed labels.
func ValidExpenseCategory(name string) bool {
	for _, c := range ExpenseCategories {
		if c == name {
			return true
		}
	}
	return false
}

// Expense is a cost entry used only by the P&L report. It has no relation to
// orders or products.
type Expense struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseInput carries the writable fields of an expense entry.
type ExpenseInput struct {
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}
