package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExpenseService records operating costs for profit-and-loss reporting.
type ExpenseService interface {
	CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error)
	GetExpense(ctx context.Context, expenseID int) (*Expense, error)
	// GetExpenses returns all expenses, newest expense date first.
	GetExpenses(ctx context.Context) ([]Expense, error)
	UpdateExpense(ctx context.Context, expenseID int, in ExpenseInput) (*Expense, error)
	DeleteExpense(ctx context.Context, expenseID int) error
}

type expenseService struct {
	pool *pgxpool.Pool
}

// NewExpenseService constructs an ExpenseService backed by PostgreSQL.
func NewExpenseService(pool *pgxpool.Pool) ExpenseService {
	return &expenseService{pool: pool}
}

func validateExpense(in ExpenseInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("expense name is required")
	}
	if in.Amount.IsNegative() {
		return fmt.Errorf("expense amount must not be negative")
	}
	if !ValidExpenseCategory(in.Category) {
		return fmt.Errorf("unknown expense category %q", in.Category)
	}
	return nil
}

const expenseColumns = `id, name, amount, category, expense_date, COALESCE(description, ''), created_at`

func scanExpense(row pgx.Row) (*Expense, error) {
	var e Expense
	err := row.Scan(&e.ID, &e.Name, &e.Amount, &e.Category, &e.Date, &e.Description, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error) {
	if err := validateExpense(in); err != nil {
		return nil, err
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	e, err := scanExpense(s.pool.QueryRow(ctx, `
		INSERT INTO expenses (name, amount, category, expense_date, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+expenseColumns,
		in.Name, in.Amount, in.Category, date, in.Description))
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return e, nil
}

func (s *expenseService) GetExpense(ctx context.Context, expenseID int) (*Expense, error) {
	e, err := scanExpense(s.pool.QueryRow(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = $1", expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("expense %d not found", expenseID)
		}
		return nil, fmt.Errorf("failed to fetch expense %d: %w", expenseID, err)
	}
	return e, nil
}

func (s *expenseService) GetExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+expenseColumns+" FROM expenses ORDER BY expense_date DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID int, in ExpenseInput) (*Expense, error) {
	if err := validateExpense(in); err != nil {
		return nil, err
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE expenses
		SET name = $1, amount = $2, category = $3, expense_date = $4, description = $5
		WHERE id = $6
	`, in.Name, in.Amount, in.Category, date, in.Description, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense %d: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("expense %d not found", expenseID)
	}
	return s.GetExpense(ctx, expenseID)
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM expenses WHERE id = $1", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %d: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %d not found", expenseID)
	}
	return nil
}
