package app

import "herbaldesk/internal/core"

// StorefrontResult is returned by BrowseCatalog.
type StorefrontResult struct {
	Products []core.PricedProduct `json:"products"`
}

// ProductResult is returned by single-product operations.
type ProductResult struct {
	Product *core.Product `json:"product"`
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product `json:"products"`
}

// CategoryListResult is returned by ListCategories and BrowseCategories.
type CategoryListResult struct {
	Categories []core.Category `json:"categories"`
}

// OfferListResult is returned by ListOffers.
type OfferListResult struct {
	Offers []core.Offer `json:"offers"`
}

// OrderResult is returned by order lifecycle operations.
type OrderResult struct {
	Order *core.Order `json:"order"`
}

// OrderListResult is returned by ListOrders.
type OrderListResult struct {
	Orders []core.Order `json:"orders"`
}

// EmployeeListResult is returned by ListEmployees.
type EmployeeListResult struct {
	Employees []core.Employee `json:"employees"`
}

// ExpenseListResult is returned by ListExpenses.
type ExpenseListResult struct {
	Expenses   []core.Expense `json:"expenses"`
	Categories []string       `json:"categories"`
}

// NotificationListResult is returned by ListNotifications.
type NotificationListResult struct {
	Notifications []core.Notification `json:"notifications"`
	UnreadCount   int                 `json:"unread_count"`
}
