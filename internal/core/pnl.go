package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateFilter selects the reporting window for the P&L report.
type DateFilter string

const (
	FilterAll       DateFilter = "all"
	FilterToday     DateFilter = "today"
	FilterYesterday DateFilter = "yesterday"
	FilterThisWeek  DateFilter = "thisWeek" // week starts Sunday
	FilterThisMonth DateFilter = "thisMonth"
	FilterLastMonth DateFilter = "lastMonth"
	FilterCustom    DateFilter = "custom"
)

// DateRange is a concrete [Start, End] window, both bounds inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ResolveDateRange turns a named filter into a concrete range relative to now,
// in now's location. For FilterCustom the given start/end are used, with the end
// extended through 23:59:59.999 so the end date is inclusive. FilterAll returns
// (nil, nil): no bound.
func ResolveDateRange(filter DateFilter, now time.Time, customStart, customEnd time.Time) (*DateRange, error) {
	loc := now.Location()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch filter {
	case FilterAll, "":
		return nil, nil
	case FilterToday:
		return &DateRange{Start: midnight, End: now}, nil
	case FilterYesterday:
		return &DateRange{Start: midnight.AddDate(0, 0, -1), End: now}, nil
	case FilterThisWeek:
		start := midnight.AddDate(0, 0, -int(now.Weekday()))
		return &DateRange{Start: start, End: now}, nil
	case FilterThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return &DateRange{Start: start, End: now}, nil
	case FilterLastMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
		end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).Add(-time.Millisecond)
		return &DateRange{Start: start, End: end}, nil
	case FilterCustom:
		if customStart.IsZero() || customEnd.IsZero() {
			return nil, fmt.Errorf("custom date filter requires both start and end dates")
		}
		end := time.Date(customEnd.Year(), customEnd.Month(), customEnd.Day(), 23, 59, 59, 999000000, customEnd.Location())
		return &DateRange{Start: customStart, End: end}, nil
	default:
		return nil, fmt.Errorf("unknown date filter %q", filter)
	}
}

// MonthlyBucket is one calendar month of the trailing-six-month breakdown.
type MonthlyBucket struct {
	Month    string          `json:"month"` // YYYY-MM
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// CategoryTotal is one slice of the expense-by-category breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// PnLReport is the profit-and-loss report for a date window.
//
// TotalRevenue counts every order in the window regardless of status —
// returned and cancelled orders are NOT excluded. The dashboard summary uses a
// different rule; the report keeps the historical behavior on purpose.
type PnLReport struct {
	Filter            DateFilter      `json:"filter"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	Profit            decimal.Decimal `json:"profit"`
	OrderCount        int             `json:"order_count"`
	ExpenseCount      int             `json:"expense_count"`
	MonthlyBreakdown  []MonthlyBucket `json:"monthly_breakdown"`
	CategoryBreakdown []CategoryTotal `json:"category_breakdown"`
}

// BuildPnLReport aggregates the full order and expense collections into a
// report for the given filter. Orders are bucketed by CreatedAt, expenses by
// Date. The monthly breakdown always spans the trailing six calendar months
// (current + five prior) over the UNFILTERED collections; the totals and the
// category breakdown honor the filter.
func BuildPnLReport(orders []Order, expenses []Expense, filter DateFilter, now time.Time, customStart, customEnd time.Time) (*PnLReport, error) {
	rng, err := ResolveDateRange(filter, now, customStart, customEnd)
	if err != nil {
		return nil, err
	}

	report := &PnLReport{Filter: filter}

	for _, o := range orders {
		if rng != nil && !rng.Contains(o.CreatedAt) {
			continue
		}
		report.TotalRevenue = report.TotalRevenue.Add(o.Total)
		report.OrderCount++
	}

	filteredExpenses := expenses[:0:0]
	for _, e := range expenses {
		if rng != nil && !rng.Contains(e.Date) {
			continue
		}
		report.TotalExpenses = report.TotalExpenses.Add(e.Amount)
		report.ExpenseCount++
		filteredExpenses = append(filteredExpenses, e)
	}

	report.Profit = report.TotalRevenue.Sub(report.TotalExpenses)
	report.MonthlyBreakdown = MonthlyBreakdown(orders, expenses, now)
	report.CategoryBreakdown = CategoryBreakdown(filteredExpenses)
	return report, nil
}

// MonthlyBreakdown buckets revenue and expenses into the trailing six calendar
// months, zero-filling months with no activity. Orders and expenses outside the
// window are dropped.
func MonthlyBreakdown(orders []Order, expenses []Expense, now time.Time) []MonthlyBucket {
	keys := make([]string, 0, 6)
	idx := make(map[string]*MonthlyBucket, 6)
	for i := 5; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		key := m.Format("2006-01")
		keys = append(keys, key)
		idx[key] = &MonthlyBucket{Month: key}
	}

	for _, o := range orders {
		if b, ok := idx[o.CreatedAt.Format("2006-01")]; ok {
			b.Revenue = b.Revenue.Add(o.Total)
		}
	}
	for _, e := range expenses {
		if b, ok := idx[e.Date.Format("2006-01")]; ok {
			b.Expenses = b.Expenses.Add(e.Amount)
		}
	}

	out := make([]MonthlyBucket, 0, 6)
	for _, key := range keys {
		b := idx[key]
		b.Profit = b.Revenue.Sub(b.Expenses)
		out = append(out, *b)
	}
	return out
}

// CategoryBreakdown sums expenses per category label, mapping an absent
// category to "Other". Results are sorted by amount descending so pie charts
// render largest-first; equal amounts sort by name for stable output.
func CategoryBreakdown(expenses []Expense) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		cat := e.Category
		if cat == "" {
			cat = "Other"
		}
		totals[cat] = totals[cat].Add(e.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for cat, amt := range totals {
		out = append(out, CategoryTotal{Category: cat, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}
