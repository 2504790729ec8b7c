package app

import (
	"context"
	"fmt"
	"time"

	"herbaldesk/internal/cache"
	"herbaldesk/internal/core"
)

type appService struct {
	catalog       core.CatalogService
	offers        core.OfferService
	orders        core.OrderService
	employees     core.EmployeeService
	expenses      core.ExpenseService
	notifications core.NotificationService
	reporting     core.ReportingService
	cache         *cache.Cache
}

// Services bundles the core services the facade composes.
type Services struct {
	Catalog       core.CatalogService
	Offers        core.OfferService
	Orders        core.OrderService
	Employees     core.EmployeeService
	Expenses      core.ExpenseService
	Notifications core.NotificationService
	Reporting     core.ReportingService
}

// NewAppService constructs an appService that satisfies ApplicationService.
// c may be nil when no cache is configured.
func NewAppService(svcs Services, c *cache.Cache) ApplicationService {
	return &appService{
		catalog:       svcs.Catalog,
		offers:        svcs.Offers,
		orders:        svcs.Orders,
		employees:     svcs.Employees,
		expenses:      svcs.Expenses,
		notifications: svcs.Notifications,
		reporting:     svcs.Reporting,
		cache:         c,
	}
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func sessionFrom(e *core.Employee) *Session {
	return &Session{
		EmployeeID:         e.ID,
		Email:              e.Email,
		DisplayName:        e.DisplayName,
		Role:               e.Role,
		Permissions:        e.Permissions,
		AssignedCategories: e.AssignedCategories,
		AssignedProducts:   e.AssignedProducts,
	}
}

func (s *appService) AuthenticateEmployee(ctx context.Context, email, password string) (*Session, error) {
	e, err := s.employees.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return sessionFrom(e), nil
}

func (s *appService) SessionFor(ctx context.Context, employeeID int) (*Session, error) {
	e, err := s.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if e.Status != core.EmployeeActive {
		return nil, fmt.Errorf("account is inactive")
	}
	return sessionFrom(e), nil
}

// ── Storefront ───────────────────────────────────────────────────────────────

func (s *appService) BrowseCatalog(ctx context.Context, filter CatalogFilter) (*StorefrontResult, error) {
	// Only the unfiltered listing is cached; narrowed views go to the database.
	cacheable := filter.CategoryID == nil && !filter.FeaturedOnly

	var result StorefrontResult
	if cacheable && s.cache.Get(ctx, cache.KeyStorefront, &result) {
		return &result, nil
	}

	var (
		products []core.Product
		err      error
	)
	switch {
	case filter.CategoryID != nil:
		products, err = s.catalog.GetProductsByCategory(ctx, *filter.CategoryID)
	case filter.FeaturedOnly:
		products, err = s.catalog.GetFeaturedProducts(ctx)
	default:
		products, err = s.catalog.GetProducts(ctx)
	}
	if err != nil {
		return nil, err
	}
	offers, err := s.offers.GetActiveOffers(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	result.Products = core.ResolveCatalog(products, offers, time.Now())
	if cacheable {
		s.cache.Set(ctx, cache.KeyStorefront, result)
	}
	return &result, nil
}

func (s *appService) BrowseCategories(ctx context.Context) (*CategoryListResult, error) {
	var result CategoryListResult
	if s.cache.Get(ctx, cache.KeyCategories, &result) {
		return &result, nil
	}

	categories, err := s.catalog.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	result.Categories = categories
	s.cache.Set(ctx, cache.KeyCategories, result)
	return &result, nil
}

func (s *appService) Checkout(ctx context.Context, req CheckoutRequest) (*OrderResult, error) {
	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	offers, err := s.offers.GetActiveOffers(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	// The customer pays the price the storefront showed: offer resolution
	// happens here, at checkout time, and is frozen into the order snapshot.
	quote := core.ResolvePrice(*product, offers, time.Now())

	order, err := s.orders.CreateOrder(ctx, core.OrderInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: quote.Price,
		Source:    core.SourceOnline,
		Shipping:  req.Shipping,
		Tax:       req.Tax,
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

// ── Catalog ──────────────────────────────────────────────────────────────────

func (s *appService) invalidateStorefront(ctx context.Context) {
	s.cache.Invalidate(ctx, cache.KeyStorefront, cache.KeyCategories)
}

func (s *appService) ListProducts(ctx context.Context, session Session) (*ProductListResult, error) {
	if !session.isAdmin() && !session.Permissions.CanViewProducts {
		return nil, ErrForbidden
	}
	products, err := s.catalog.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

func (s *appService) GetProduct(ctx context.Context, session Session, productID int) (*ProductResult, error) {
	if !session.isAdmin() && !session.Permissions.CanViewProducts {
		return nil, ErrForbidden
	}
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

func productFromRequest(req ProductRequest) core.Product {
	return core.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Inventory:   req.Inventory,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
	}
}

func (s *appService) CreateProduct(ctx context.Context, session Session, req ProductRequest) (*ProductResult, error) {
	if !session.isAdmin() && !session.Permissions.CanUpdateProducts {
		return nil, ErrForbidden
	}
	p := productFromRequest(req)
	p.CreatedBy = session.Email
	created, err := s.catalog.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidateStorefront(ctx)
	return &ProductResult{Product: created}, nil
}

func (s *appService) UpdateProduct(ctx context.Context, session Session, productID int, req ProductRequest) (*ProductResult, error) {
	if !session.isAdmin() && !session.Permissions.CanUpdateProducts {
		return nil, ErrForbidden
	}
	p := productFromRequest(req)
	p.ID = productID
	if err := s.catalog.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateStorefront(ctx)
	return s.GetProduct(ctx, session, productID)
}

func (s *appService) DeleteProduct(ctx context.Context, session Session, productID int) error {
	if !session.isAdmin() {
		return ErrForbidden
	}
	if err := s.catalog.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	s.invalidateStorefront(ctx)
	return nil
}

func (s *appService) ListCategories(ctx context.Context, session Session) (*CategoryListResult, error) {
	categories, err := s.catalog.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &CategoryListResult{Categories: categories}, nil
}

func (s *appService) CreateCategory(ctx context.Context, session Session, req CategoryRequest) (*core.Category, error) {
	if !session.isAdmin() && !session.Permissions.CanUpdateProducts {
		return nil, ErrForbidden
	}
	created, err := s.catalog.CreateCategory(ctx, core.Category{Name: req.Name, Description: req.Description})
	if err != nil {
		return nil, err
	}
	s.invalidateStorefront(ctx)
	return created, nil
}

func (s *appService) UpdateCategory(ctx context.Context, session Session, categoryID int, req CategoryRequest) (*core.Category, error) {
	if !session.isAdmin() && !session.Permissions.CanUpdateProducts {
		return nil, ErrForbidden
	}
	c := core.Category{ID: categoryID, Name: req.Name, Description: req.Description}
	if err := s.catalog.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateStorefront(ctx)
	return s.catalog.GetCategory(ctx, categoryID)
}

func (s *appService) DeleteCategory(ctx context.Context, session Session, categoryID int) error {
	if !session.isAdmin() {
		return ErrForbidden
	}
	if err := s.catalog.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}
	s.invalidateStorefront(ctx)
	return nil
}

// ── Offers ───────────────────────────────────────────────────────────────────

func (s *appService) ListOffers(ctx context.Context, session Session) (*OfferListResult, error) {
	offers, err := s.offers.GetOffers(ctx)
	if err != nil {
		return nil, err
	}
	return &OfferListResult{Offers: offers}, nil
}

func offerFromRequest(req OfferRequest) core.Offer {
	return core.Offer{
		Name:               req.Name,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		ProductIDs:         req.ProductIDs,
		CategoryIDs:        req.CategoryIDs,
	}
}

func (s *appService) CreateOffer(ctx context.Context, session Session, req OfferRequest) (*core.Offer, error) {
	if !session.isAdmin() && !session.Permissions.CanManageOffers {
		return nil, ErrForbidden
	}
	created, err := s.offers.CreateOffer(ctx, offerFromRequest(req))
	if err != nil {
		return nil, err
	}
	s.invalidateStorefront(ctx)
	return created, nil
}

func (s *appService) UpdateOffer(ctx context.Context, session Session, offerID int, req OfferRequest) (*core.Offer, error) {
	if !session.isAdmin() && !session.Permissions.CanManageOffers {
		return nil, ErrForbidden
	}
	o := offerFromRequest(req)
	o.ID = offerID
	if err := s.offers.UpdateOffer(ctx, o); err != nil {
		return nil, err
	}
	s.invalidateStorefront(ctx)
	return s.offers.GetOffer(ctx, offerID)
}

func (s *appService) DeleteOffer(ctx context.Context, session Session, offerID int) error {
	if !session.isAdmin() {
		return ErrForbidden
	}
	if err := s.offers.DeleteOffer(ctx, offerID); err != nil {
		return err
	}
	s.invalidateStorefront(ctx)
	return nil
}

// ── Orders ───────────────────────────────────────────────────────────────────

func (s *appService) ListOrders(ctx context.Context, session Session, status *core.OrderStatus, assignedTo *int) (*OrderListResult, error) {
	var (
		orders []core.Order
		err    error
	)
	switch {
	case status != nil:
		orders, err = s.orders.GetOrdersByStatus(ctx, *status)
	case assignedTo != nil:
		orders, err = s.orders.GetOrdersByEmployee(ctx, *assignedTo)
	default:
		orders, err = s.orders.GetOrders(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Orders: orders}, nil
}

func (s *appService) GetOrder(ctx context.Context, session Session, orderID int) (*OrderResult, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) CreateOrder(ctx context.Context, session Session, req StaffOrderRequest) (*OrderResult, error) {
	if !session.isAdmin() && !session.Permissions.CanCreateOrders {
		return nil, ErrForbidden
	}
	source := req.Source
	if source == "" {
		source = core.SourceLocal
	}
	order, err := s.orders.CreateOrder(ctx, core.OrderInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Source:    source,
		Shipping:  req.Shipping,
		Tax:       req.Tax,
		Notes:     req.Notes,
		CreatedBy: session.Email,
	})
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) UpdateOrderStatus(ctx context.Context, session Session, orderID int, to core.OrderStatus) (*OrderResult, error) {
	if !session.isAdmin() && !session.Permissions.CanUpdateOrders {
		return nil, ErrForbidden
	}
	order, err := s.orders.UpdateOrderStatus(ctx, orderID, to, session.Email)
	if err != nil {
		return nil, err
	}
	// Stock moved; the public listing shows stale inventory until refreshed.
	s.cache.Invalidate(ctx, cache.KeyStorefront)
	return &OrderResult{Order: order}, nil
}

func (s *appService) AssignOrder(ctx context.Context, session Session, orderID, employeeID int) error {
	if !session.isAdmin() && !session.Permissions.CanUpdateOrders {
		return ErrForbidden
	}
	e, err := s.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	return s.orders.AssignOrder(ctx, orderID, e.ID, e.DisplayName)
}

func (s *appService) AddCallLog(ctx context.Context, session Session, orderID int, req CallLogRequest) (*core.CallLog, error) {
	if !session.isAdmin() && !session.Permissions.CanUpdateOrders {
		return nil, ErrForbidden
	}
	return s.orders.AddCallLog(ctx, orderID, core.CallLog{
		EmployeeID:       session.EmployeeID,
		EmployeeName:     session.DisplayName,
		Notes:            req.Notes,
		Outcome:          req.Outcome,
		FollowUpRequired: req.FollowUpRequired,
		FollowUpDate:     req.FollowUpDate,
	})
}

func (s *appService) DeleteOrder(ctx context.Context, session Session, orderID int) error {
	if !session.isAdmin() {
		return ErrForbidden
	}
	return s.orders.DeleteOrder(ctx, orderID)
}

// ── Employees ────────────────────────────────────────────────────────────────

func (s *appService) ListEmployees(ctx context.Context, session Session) (*EmployeeListResult, error) {
	if !session.isAdmin() {
		return nil, ErrForbidden
	}
	employees, err := s.employees.GetEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return &EmployeeListResult{Employees: employees}, nil
}

func (s *appService) CreateEmployee(ctx context.Context, session Session, req core.EmployeeInput) (*core.Employee, error) {
	if !session.isAdmin() {
		return nil, ErrForbidden
	}
	req.CreatedBy = session.Email
	return s.employees.CreateEmployee(ctx, req)
}

func (s *appService) UpdateEmployee(ctx context.Context, session Session, employeeID int, req core.EmployeeInput) (*core.Employee, error) {
	if !session.isAdmin() {
		return nil, ErrForbidden
	}
	return s.employees.UpdateEmployee(ctx, employeeID, req)
}

func (s *appService) UpdateEmployeePermissions(ctx context.Context, session Session, employeeID int, perms core.Permissions) error {
	if !session.isAdmin() {
		return ErrForbidden
	}
	return s.employees.UpdatePermissions(ctx, employeeID, perms)
}

func (s *appService) SetEmployeeStatus(ctx context.Context, session Session, employeeID int, status core.EmployeeStatus) error {
	if !session.isAdmin() {
		return ErrForbidden
	}
	if employeeID == session.EmployeeID && status == core.EmployeeInactive {
		return fmt.Errorf("cannot deactivate your own account")
	}
	return s.employees.SetEmployeeStatus(ctx, employeeID, status)
}

func (s *appService) DeleteEmployee(ctx context.Context, session Session, employeeID int) error {
	if !session.isAdmin() {
		return ErrForbidden
	}
	if employeeID == session.EmployeeID {
		return fmt.Errorf("cannot delete your own account")
	}
	return s.employees.DeleteEmployee(ctx, employeeID)
}

// ── Expenses ─────────────────────────────────────────────────────────────────

func (s *appService) ListExpenses(ctx context.Context, session Session) (*ExpenseListResult, error) {
	if !session.isAdmin() && !session.Permissions.CanViewReports {
		return nil, ErrForbidden
	}
	expenses, err := s.expenses.GetExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return &ExpenseListResult{Expenses: expenses, Categories: core.ExpenseCategories}, nil
}

func (s *appService) CreateExpense(ctx context.Context, session Session, req core.ExpenseInput) (*core.Expense, error) {
	if !session.isAdmin() {
		return nil, ErrForbidden
	}
	return s.expenses.CreateExpense(ctx, req)
}

func (s *appService) UpdateExpense(ctx context.Context, session Session, expenseID int, req core.ExpenseInput) (*core.Expense, error) {
	if !session.isAdmin() {
		return nil, ErrForbidden
	}
	return s.expenses.UpdateExpense(ctx, expenseID, req)
}

func (s *appService) DeleteExpense(ctx context.Context, session Session, expenseID int) error {
	if !session.isAdmin() {
		return ErrForbidden
	}
	return s.expenses.DeleteExpense(ctx, expenseID)
}

// ── Reports ──────────────────────────────────────────────────────────────────

func (s *appService) GetProfitAndLoss(ctx context.Context, session Session, filter core.DateFilter, customStart, customEnd time.Time) (*core.PnLReport, error) {
	if !session.isAdmin() && !session.Permissions.CanViewReports {
		return nil, ErrForbidden
	}
	return s.reporting.ProfitAndLoss(ctx, filter, customStart, customEnd)
}

// ── Notifications ────────────────────────────────────────────────────────────

func (s *appService) ListNotifications(ctx context.Context, session Session, limit int) (*NotificationListResult, error) {
	notifications, err := s.notifications.GetNotifications(ctx, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.UnreadCount(ctx)
	if err != nil {
		return nil, err
	}
	return &NotificationListResult{Notifications: notifications, UnreadCount: unread}, nil
}

func (s *appService) UnreadNotificationCount(ctx context.Context, session Session) (int, error) {
	return s.notifications.UnreadCount(ctx)
}

func (s *appService) MarkNotificationRead(ctx context.Context, session Session, notificationID int) error {
	return s.notifications.MarkRead(ctx, notificationID)
}

func (s *appService) MarkAllNotificationsRead(ctx context.Context, session Session) error {
	return s.notifications.MarkAllRead(ctx)
}

func (s *appService) DeleteNotification(ctx context.Context, session Session, notificationID int) error {
	if !session.isAdmin() {
		return ErrForbidden
	}
	return s.notifications.DeleteNotification(ctx, notificationID)
}
