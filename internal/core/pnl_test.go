package core_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbaldesk/internal/core"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Saturday 2026-08-15, 14:30 local.
var pnlNow = time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)

func orderAt(t time.Time, total string, status core.OrderStatus) core.Order {
	return core.Order{Total: d(total), Status: status, CreatedAt: t}
}

func expenseAt(t time.Time, amount, category string) core.Expense {
	return core.Expense{Amount: d(amount), Category: category, Date: t}
}

func TestResolveDateRange_Today(t *testing.T) {
	rng, err := core.ResolveDateRange(core.FilterToday, pnlNow, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.NotNil(t, rng)

	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), rng.Start)
	assert.Equal(t, pnlNow, rng.End)
	assert.True(t, rng.Contains(pnlNow.Add(-time.Hour)))
	assert.False(t, rng.Contains(pnlNow.Add(-24*time.Hour)))
}

func TestResolveDateRange_ThisWeekStartsSunday(t *testing.T) {
	rng, err := core.ResolveDateRange(core.FilterThisWeek, pnlNow, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.NotNil(t, rng)

	// 2026-08-15 is a Saturday; the week began Sunday 2026-08-09.
	assert.Equal(t, time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC), rng.Start)
	assert.Equal(t, time.Weekday(0), rng.Start.Weekday())
}

func TestResolveDateRange_LastMonthIsFullCalendarMonth(t *testing.T) {
	rng, err := core.ResolveDateRange(core.FilterLastMonth, pnlNow, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.NotNil(t, rng)

	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), rng.Start)
	assert.True(t, rng.Contains(time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, rng.Contains(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)))
}

func TestResolveDateRange_CustomEndInclusive(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	rng, err := core.ResolveDateRange(core.FilterCustom, pnlNow, start, end)
	require.NoError(t, err)
	require.NotNil(t, rng)

	// An order late on the end date still counts.
	assert.True(t, rng.Contains(time.Date(2026, 8, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, rng.Contains(time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC)))
}

func TestResolveDateRange_CustomRequiresBothDates(t *testing.T) {
	_, err := core.ResolveDateRange(core.FilterCustom, pnlNow, time.Time{}, pnlNow)
	assert.Error(t, err)
}

func TestResolveDateRange_UnknownFilter(t *testing.T) {
	_, err := core.ResolveDateRange(core.DateFilter("fortnight"), pnlNow, time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestResolveDateRange_AllIsUnbounded(t *testing.T) {
	rng, err := core.ResolveDateRange(core.FilterAll, pnlNow, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Nil(t, rng)
}

func TestBuildPnLReport_RevenueCountsAllStatuses(t *testing.T) {
	orders := []core.Order{
		orderAt(pnlNow.Add(-time.Hour), "100.00", core.StatusDelivered),
		orderAt(pnlNow.Add(-2*time.Hour), "50.00", core.StatusCancelled),
		orderAt(pnlNow.Add(-3*time.Hour), "25.00", core.StatusReturned),
	}

	report, err := core.BuildPnLReport(orders, nil, core.FilterAll, pnlNow, time.Time{}, time.Time{})
	require.NoError(t, err)

	// Cancelled and returned orders still count toward revenue.
	assert.True(t, report.TotalRevenue.Equal(d("175.00")), "got %s", report.TotalRevenue)
	assert.Equal(t, 3, report.OrderCount)
}

func TestBuildPnLReport_FilterNarrowsTotalsButNotTrend(t *testing.T) {
	lastMonth := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	orders := []core.Order{
		orderAt(pnlNow.Add(-time.Hour), "200.00", core.StatusPending),
		orderAt(lastMonth, "999.00", core.StatusDelivered),
	}
	expenses := []core.Expense{
		expenseAt(pnlNow.Add(-time.Hour), "80.00", "Rent"),
		expenseAt(lastMonth, "300.00", "Salaries"),
	}

	report, err := core.BuildPnLReport(orders, expenses, core.FilterToday, pnlNow, time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.True(t, report.TotalRevenue.Equal(d("200.00")))
	assert.True(t, report.TotalExpenses.Equal(d("80.00")))
	assert.True(t, report.Profit.Equal(d("120.00")))
	assert.Equal(t, 1, report.OrderCount)
	assert.Equal(t, 1, report.ExpenseCount)

	// The six-month trend ignores the filter: July's numbers are still there.
	require.Len(t, report.MonthlyBreakdown, 6)
	july := report.MonthlyBreakdown[4]
	require.Equal(t, "2026-07", july.Month)
	assert.True(t, july.Revenue.Equal(d("999.00")))
	assert.True(t, july.Expenses.Equal(d("300.00")))

	// The category breakdown honors the filter: only today's Rent.
	require.Len(t, report.CategoryBreakdown, 1)
	assert.Equal(t, "Rent", report.CategoryBreakdown[0].Category)
}

func TestMonthlyBreakdown_SixZeroFilledBuckets(t *testing.T) {
	buckets := core.MonthlyBreakdown(nil, nil, pnlNow)

	require.Len(t, buckets, 6)
	want := []string{"2026-03", "2026-04", "2026-05", "2026-06", "2026-07", "2026-08"}
	for i, b := range buckets {
		assert.Equal(t, want[i], b.Month)
		assert.True(t, b.Revenue.IsZero())
		assert.True(t, b.Expenses.IsZero())
		assert.True(t, b.Profit.IsZero())
	}
}

func TestMonthlyBreakdown_DropsActivityOutsideWindow(t *testing.T) {
	old := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	orders := []core.Order{
		orderAt(old, "500.00", core.StatusDelivered),
		orderAt(pnlNow, "70.00", core.StatusPending),
	}

	buckets := core.MonthlyBreakdown(orders, nil, pnlNow)

	require.Len(t, buckets, 6)
	var total decimal.Decimal
	for _, b := range buckets {
		total = total.Add(b.Revenue)
	}
	assert.True(t, total.Equal(d("70.00")), "January order must be dropped, got %s", total)
}

func TestCategoryBreakdown(t *testing.T) {
	expenses := []core.Expense{
		expenseAt(pnlNow, "10.00", "Rent"),
		expenseAt(pnlNow, "40.00", "Salaries"),
		expenseAt(pnlNow, "5.00", "Rent"),
		expenseAt(pnlNow, "3.00", ""), // uncategorized folds into Other
	}

	breakdown := core.CategoryBreakdown(expenses)

	require.Len(t, breakdown, 3)
	assert.Equal(t, "Salaries", breakdown[0].Category)
	assert.True(t, breakdown[0].Amount.Equal(d("40.00")))
	assert.Equal(t, "Rent", breakdown[1].Category)
	assert.True(t, breakdown[1].Amount.Equal(d("15.00")))
	assert.Equal(t, "Other", breakdown[2].Category)
	assert.True(t, breakdown[2].Amount.Equal(d("3.00")))
}
