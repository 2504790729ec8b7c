package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// EmployeeService manages back-office accounts and their grants.
type EmployeeService interface {
	CreateEmployee(ctx context.Context, in EmployeeInput) (*Employee, error)
	GetEmployee(ctx context.Context, employeeID int) (*Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*Employee, error)
	GetEmployees(ctx context.Context) ([]Employee, error)
	UpdateEmployee(ctx context.Context, employeeID int, in EmployeeInput) (*Employee, error)
	UpdatePermissions(ctx context.Context, employeeID int, perms Permissions) error
	SetEmployeeStatus(ctx context.Context, employeeID int, status EmployeeStatus) error
	DeleteEmployee(ctx context.Context, employeeID int) error

	// Authenticate checks a password against the stored hash and returns the
	// employee when the account is active and the password matches.
	Authenticate(ctx context.Context, email, password string) (*Employee, error)
}

// EmployeeInput carries the writable fields of an employee account. Password is
// hashed before storage and empty means "leave unchanged" on update.
type EmployeeInput struct {
	Email              string `json:"email"`
	DisplayName        string `json:"display_name"`
	Role               Role   `json:"role"`
	Password           string `json:"password,omitempty"`
	AssignedCategories []int  `json:"assigned_categories"`
	AssignedProducts   []int  `json:"assigned_products"`
	CreatedBy          string `json:"created_by,omitempty"`
}

type employeeService struct {
	pool *pgxpool.Pool
}

// NewEmployeeService constructs an EmployeeService backed by PostgreSQL.
func NewEmployeeService(pool *pgxpool.Pool) EmployeeService {
	return &employeeService{pool: pool}
}

func validateEmployee(in EmployeeInput) error {
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("employee email is required")
	}
	if strings.TrimSpace(in.DisplayName) == "" {
		return fmt.Errorf("employee display name is required")
	}
	switch NormalizeRole(in.Role) {
	case RoleAdmin, RoleManager:
		return nil
	default:
		return fmt.Errorf("unknown role %q", in.Role)
	}
}

const employeeColumns = `id, email, display_name, role, permissions,
       assigned_categories, assigned_products, status, password_hash,
       created_at, COALESCE(created_by, '')`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Email, &e.DisplayName, &e.Role, &e.Permissions,
		&e.AssignedCategories, &e.AssignedProducts, &e.Status, &e.PasswordHash,
		&e.CreatedAt, &e.CreatedBy)
	if err != nil {
		return nil, err
	}
	// Legacy roles are normalized here, at the read boundary, so nothing above
	// this layer ever sees the retired value.
	e.Role = NormalizeRole(e.Role)
	if e.AssignedCategories == nil {
		e.AssignedCategories = []int{}
	}
	if e.AssignedProducts == nil {
		e.AssignedProducts = []int{}
	}
	return &e, nil
}

func (s *employeeService) CreateEmployee(ctx context.Context, in EmployeeInput) (*Employee, error) {
	if err := validateEmployee(in); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, fmt.Errorf("employee password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := NormalizeRole(in.Role)
	perms := DefaultPermissions(role)
	if in.AssignedCategories == nil {
		in.AssignedCategories = []int{}
	}
	if in.AssignedProducts == nil {
		in.AssignedProducts = []int{}
	}

	e, err := scanEmployee(s.pool.QueryRow(ctx, `
		INSERT INTO employees (email, display_name, role, permissions,
		                       assigned_categories, assigned_products, status, password_hash, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+employeeColumns,
		in.Email, in.DisplayName, role, perms,
		in.AssignedCategories, in.AssignedProducts, EmployeeActive, string(hash), in.CreatedBy))
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}

func (s *employeeService) GetEmployee(ctx context.Context, employeeID int) (*Employee, error) {
	e, err := scanEmployee(s.pool.QueryRow(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id = $1", employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("employee %d not found", employeeID)
		}
		return nil, fmt.Errorf("failed to fetch employee %d: %w", employeeID, err)
	}
	return e, nil
}

func (s *employeeService) GetEmployeeByEmail(ctx context.Context, email string) (*Employee, error) {
	e, err := scanEmployee(s.pool.QueryRow(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE email = $1", email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("employee %q not found", email)
		}
		return nil, fmt.Errorf("failed to fetch employee %q: %w", email, err)
	}
	return e, nil
}

func (s *employeeService) GetEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+employeeColumns+" FROM employees ORDER BY display_name")
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

func (s *employeeService) UpdateEmployee(ctx context.Context, employeeID int, in EmployeeInput) (*Employee, error) {
	if err := validateEmployee(in); err != nil {
		return nil, err
	}

	// Role edits do NOT reset permissions; grants are managed separately once
	// the account exists.
	tag, err := s.pool.Exec(ctx, `
		UPDATE employees
		SET email = $1, display_name = $2, role = $3,
		    assigned_categories = $4, assigned_products = $5
		WHERE id = $6
	`, in.Email, in.DisplayName, NormalizeRole(in.Role),
		in.AssignedCategories, in.AssignedProducts, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to update employee %d: %w", employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("employee %d not found", employeeID)
	}

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if _, err := s.pool.Exec(ctx,
			"UPDATE employees SET password_hash = $1 WHERE id = $2",
			string(hash), employeeID); err != nil {
			return nil, fmt.Errorf("failed to update employee %d password: %w", employeeID, err)
		}
	}

	return s.GetEmployee(ctx, employeeID)
}

func (s *employeeService) UpdatePermissions(ctx context.Context, employeeID int, perms Permissions) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE employees SET permissions = $1 WHERE id = $2", perms, employeeID)
	if err != nil {
		return fmt.Errorf("failed to update permissions for employee %d: %w", employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %d not found", employeeID)
	}
	return nil
}

func (s *employeeService) SetEmployeeStatus(ctx context.Context, employeeID int, status EmployeeStatus) error {
	if status != EmployeeActive && status != EmployeeInactive {
		return fmt.Errorf("unknown employee status %q", status)
	}
	tag, err := s.pool.Exec(ctx,
		"UPDATE employees SET status = $1 WHERE id = $2", status, employeeID)
	if err != nil {
		return fmt.Errorf("failed to set status for employee %d: %w", employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %d not found", employeeID)
	}
	return nil
}

func (s *employeeService) DeleteEmployee(ctx context.Context, employeeID int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM employees WHERE id = $1", employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %d not found", employeeID)
	}
	return nil
}

func (s *employeeService) Authenticate(ctx context.Context, email, password string) (*Employee, error) {
	e, err := s.GetEmployeeByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if e.Status != EmployeeActive {
		return nil, fmt.Errorf("account is inactive")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return e, nil
}
