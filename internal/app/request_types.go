package app

import (
	"time"

	"github.com/shopspring/decimal"

	"herbaldesk/internal/core"
)

// CatalogFilter narrows the public product listing. The zero value means the
// full catalog.
type CatalogFilter struct {
	CategoryID   *int
	FeaturedOnly bool
}

// CheckoutRequest is a storefront order. Validation tags are enforced by the
// web adapter before the request reaches the service.
type CheckoutRequest struct {
	Name      string          `json:"name" validate:"required"`
	Email     string          `json:"email" validate:"omitempty,email"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address" validate:"required"`
	ProductID int             `json:"product_id" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"required,gte=1"`
	Shipping  decimal.Decimal `json:"shipping"`
	Tax       decimal.Decimal `json:"tax"`
	Notes     string          `json:"notes"`
}

// StaffOrderRequest is a back-office order entered on a customer's behalf.
type StaffOrderRequest struct {
	Name      string           `json:"name" validate:"required"`
	Email     string           `json:"email" validate:"omitempty,email"`
	Phone     string           `json:"phone"`
	Address   string           `json:"address"`
	ProductID int              `json:"product_id" validate:"required,gt=0"`
	Quantity  int              `json:"quantity" validate:"required,gte=1"`
	UnitPrice decimal.Decimal  `json:"unit_price"` // zero means "use catalog price"
	Shipping  decimal.Decimal  `json:"shipping"`
	Tax       decimal.Decimal  `json:"tax"`
	Notes     string           `json:"notes"`
	Source    core.OrderSource `json:"source"`
}

// ProductRequest is the input for creating or updating a product.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Inventory   int             `json:"inventory" validate:"gte=0"`
	CategoryID  int             `json:"category_id"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
	Featured    bool            `json:"featured"`
}

// CategoryRequest is the input for creating or updating a category.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// OfferRequest is the input for creating or updating an offer.
type OfferRequest struct {
	Name               string          `json:"name" validate:"required"`
	Description        string          `json:"description"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	StartDate          time.Time       `json:"start_date" validate:"required"`
	EndDate            time.Time       `json:"end_date" validate:"required"`
	ProductIDs         []int           `json:"product_ids"`
	CategoryIDs        []int           `json:"category_ids"`
}

// CallLogRequest is the input for appending a call record to an order.
type CallLogRequest struct {
	Notes            string           `json:"notes"`
	Outcome          core.CallOutcome `json:"outcome" validate:"required"`
	FollowUpRequired bool             `json:"follow_up_required"`
	FollowUpDate     *time.Time       `json:"follow_up_date"`
}
