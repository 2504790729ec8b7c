package core

import (
	"context"
	"fmt"
	"time"
)

// ReportingService produces the profit-and-loss view of the shop. Aggregation
// happens in memory over the full order and expense sets; the monthly trend is
// always computed over everything regardless of the requested filter, so the
// chart keeps its six-month shape while the headline numbers narrow.
type ReportingService interface {
	ProfitAndLoss(ctx context.Context, filter DateFilter, customStart, customEnd time.Time) (*PnLReport, error)
}

type reportingService struct {
	orders   OrderService
	expenses ExpenseService
}

// NewReportingService constructs a ReportingService over the order and expense
// services.
func NewReportingService(orders OrderService, expenses ExpenseService) ReportingService {
	return &reportingService{orders: orders, expenses: expenses}
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, filter DateFilter, customStart, customEnd time.Time) (*PnLReport, error) {
	orders, err := s.orders.GetOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for report: %w", err)
	}
	expenses, err := s.expenses.GetExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses for report: %w", err)
	}
	return BuildPnLReport(orders, expenses, filter, time.Now(), customStart, customEnd)
}
