package core

import "time"

// Role is an employee's access level.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff" // legacy; normalized to manager at the read boundary
)

// EmployeeStatus marks whether an employee account is usable.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Permissions are the per-employee operation grants. Role determines the
// defaults at creation time; afterwards they are edited independently.
type Permissions struct {
	CanCreateOrders   bool `json:"can_create_orders"`
	CanUpdateOrders   bool `json:"can_update_orders"`
	CanViewProducts   bool `json:"can_view_products"`
	CanUpdateProducts bool `json:"can_update_products"`
	CanManageOffers   bool `json:"can_manage_offers"`
	CanViewReports    bool `json:"can_view_reports"`
}

// DefaultPermissions returns the permission set granted to a new employee of
// the given role.
func DefaultPermissions(role Role) Permissions {
	switch role {
	case RoleAdmin:
		return Permissions{
			CanCreateOrders:   true,
			CanUpdateOrders:   true,
			CanViewProducts:   true,
			CanUpdateProducts: true,
			CanManageOffers:   true,
			CanViewReports:    true,
		}
	case RoleManager:
		return Permissions{
			CanCreateOrders: true,
			CanUpdateOrders: true,
			CanViewProducts: true,
			CanViewReports:  true,
		}
	default:
		return Permissions{}
	}
}

// NormalizeRole applies the legacy-role migration: accounts created before the
// staff role was retired are treated as managers. Applied once, at the
// data-access boundary, so callers never see the legacy value.
func NormalizeRole(role Role) Role {
	if role == RoleStaff {
		return RoleManager
	}
	return role
}

// Employee is a back-office user. AssignedCategories/AssignedProducts scope
// which parts of the catalog the employee is responsible for.
type Employee struct {
	ID                 int            `json:"id"`
	Email              string         `json:"email"`
	DisplayName        string         `json:"display_name"`
	Role               Role           `json:"role"`
	Permissions        Permissions    `json:"permissions"`
	AssignedCategories []int          `json:"assigned_categories"`
	AssignedProducts   []int          `json:"assigned_products"`
	Status             EmployeeStatus `json:"status"`
	PasswordHash       string         `json:"-"`
	CreatedAt          time.Time      `json:"created_at"`
	CreatedBy          string         `json:"created_by,omitempty"`
}
