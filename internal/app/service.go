package app

import (
	"context"
	"errors"
	"time"

	"herbaldesk/internal/core"
)

// ErrForbidden marks an operation the session's grants do not allow. Adapters
// map it to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// Session identifies the authenticated employee behind a request. It is
// threaded explicitly through every back-office call; there is no ambient
// current-user global.
type Session struct {
	EmployeeID         int              `json:"employee_id"`
	Email              string           `json:"email"`
	DisplayName        string           `json:"display_name"`
	Role               core.Role        `json:"role"`
	Permissions        core.Permissions `json:"permissions"`
	AssignedCategories []int            `json:"assigned_categories"`
	AssignedProducts   []int            `json:"assigned_products"`
}

func (s Session) isAdmin() bool { return s.Role == core.RoleAdmin }

// ApplicationService is the single interface all adapters call. It decouples
// presentation from business logic and is where permission gating lives.
// Implementations must contain no display logic of any kind.
type ApplicationService interface {
	// AuthenticateEmployee verifies credentials and returns a session on success.
	AuthenticateEmployee(ctx context.Context, email, password string) (*Session, error)

	// SessionFor rebuilds a session from a stored employee ID, re-reading the
	// current role and grants so permission edits take effect on the next request.
	SessionFor(ctx context.Context, employeeID int) (*Session, error)

	// ── Storefront (no session) ──

	// BrowseCatalog returns the public product listing with offer-resolved
	// prices, optionally narrowed by category or to featured products.
	BrowseCatalog(ctx context.Context, filter CatalogFilter) (*StorefrontResult, error)

	// BrowseCategories returns the public category list.
	BrowseCategories(ctx context.Context) (*CategoryListResult, error)

	// Checkout places a storefront order at the currently resolved price.
	Checkout(ctx context.Context, req CheckoutRequest) (*OrderResult, error)

	// ── Catalog ──

	ListProducts(ctx context.Context, session Session) (*ProductListResult, error)
	GetProduct(ctx context.Context, session Session, productID int) (*ProductResult, error)
	CreateProduct(ctx context.Context, session Session, req ProductRequest) (*ProductResult, error)
	UpdateProduct(ctx context.Context, session Session, productID int, req ProductRequest) (*ProductResult, error)
	DeleteProduct(ctx context.Context, session Session, productID int) error

	ListCategories(ctx context.Context, session Session) (*CategoryListResult, error)
	CreateCategory(ctx context.Context, session Session, req CategoryRequest) (*core.Category, error)
	UpdateCategory(ctx context.Context, session Session, categoryID int, req CategoryRequest) (*core.Category, error)
	DeleteCategory(ctx context.Context, session Session, categoryID int) error

	// ── Offers ──

	ListOffers(ctx context.Context, session Session) (*OfferListResult, error)
	CreateOffer(ctx context.Context, session Session, req OfferRequest) (*core.Offer, error)
	UpdateOffer(ctx context.Context, session Session, offerID int, req OfferRequest) (*core.Offer, error)
	DeleteOffer(ctx context.Context, session Session, offerID int) error

	// ── Orders ──

	// ListOrders returns orders, optionally filtered by status or assignee.
	ListOrders(ctx context.Context, session Session, status *core.OrderStatus, assignedTo *int) (*OrderListResult, error)
	GetOrder(ctx context.Context, session Session, orderID int) (*OrderResult, error)
	CreateOrder(ctx context.Context, session Session, req StaffOrderRequest) (*OrderResult, error)

	// UpdateOrderStatus moves an order along the lifecycle, reconciling stock.
	UpdateOrderStatus(ctx context.Context, session Session, orderID int, to core.OrderStatus) (*OrderResult, error)
	AssignOrder(ctx context.Context, session Session, orderID, employeeID int) error
	AddCallLog(ctx context.Context, session Session, orderID int, req CallLogRequest) (*core.CallLog, error)
	DeleteOrder(ctx context.Context, session Session, orderID int) error

	// ── Employees (admin only) ──

	ListEmployees(ctx context.Context, session Session) (*EmployeeListResult, error)
	CreateEmployee(ctx context.Context, session Session, req core.EmployeeInput) (*core.Employee, error)
	UpdateEmployee(ctx context.Context, session Session, employeeID int, req core.EmployeeInput) (*core.Employee, error)
	UpdateEmployeePermissions(ctx context.Context, session Session, employeeID int, perms core.Permissions) error
	SetEmployeeStatus(ctx context.Context, session Session, employeeID int, status core.EmployeeStatus) error
	DeleteEmployee(ctx context.Context, session Session, employeeID int) error

	// ── Expenses ──

	ListExpenses(ctx context.Context, session Session) (*ExpenseListResult, error)
	CreateExpense(ctx context.Context, session Session, req core.ExpenseInput) (*core.Expense, error)
	UpdateExpense(ctx context.Context, session Session, expenseID int, req core.ExpenseInput) (*core.Expense, error)
	DeleteExpense(ctx context.Context, session Session, expenseID int) error

	// ── Reports ──

	// GetProfitAndLoss returns the P&L report for the given date filter.
	GetProfitAndLoss(ctx context.Context, session Session, filter core.DateFilter, customStart, customEnd time.Time) (*core.PnLReport, error)

	// ── Notifications ──

	ListNotifications(ctx context.Context, session Session, limit int) (*NotificationListResult, error)
	UnreadNotificationCount(ctx context.Context, session Session) (int, error)
	MarkNotificationRead(ctx context.Context, session Session, notificationID int) error
	MarkAllNotificationsRead(ctx context.Context, session Session) error
	DeleteNotification(ctx context.Context, session Session, notificationID int) error
}
