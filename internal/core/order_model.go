package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is one of the six order lifecycle states.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusReturned   OrderStatus = "returned"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderSource distinguishes storefront checkouts from staff-entered orders.
type OrderSource string

const (
	SourceOnline OrderSource = "online"
	SourceLocal  OrderSource = "local"
)

// CallOutcome classifies a customer call interaction.
type CallOutcome string

const (
	OutcomeSuccessful   CallOutcome = "successful"
	OutcomeUnsuccessful CallOutcome = "unsuccessful"
	OutcomeVoicemail    CallOutcome = "voicemail"
	OutcomeNoAnswer     CallOutcome = "no-answer"
)

// CallLog is one immutable call-interaction record appended to an order.
// The ID is generated locally (UUID) when the log is appended.
type CallLog struct {
	ID               string      `json:"id"`
	Date             time.Time   `json:"date"`
	EmployeeID       int         `json:"employee_id"`
	EmployeeName     string      `json:"employee_name"`
	Notes            string      `json:"notes"`
	Outcome          CallOutcome `json:"outcome"`
	FollowUpRequired bool        `json:"follow_up_required"`
	FollowUpDate     *time.Time  `json:"follow_up_date,omitempty"`
}

// OrderLineItem is the denormalized product snapshot captured at order time.
// It is deliberately decoupled from the live Product record: later edits to the
// product never change an existing order's pricing.
type OrderLineItem struct {
	ProductID  int             `json:"product_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID int             `json:"category_id"`
}

// Order is a customer order, either from the storefront (online) or entered by
// staff (local). CallLogs is append-only.
type Order struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Product        OrderLineItem   `json:"product"`
	Quantity       int             `json:"quantity"`
	Total          decimal.Decimal `json:"total"`
	Status         OrderStatus     `json:"status"`
	Source         OrderSource     `json:"source"`
	Notes          string          `json:"notes,omitempty"`
	CallLogs       []CallLog       `json:"call_logs"`
	AssignedTo     *int            `json:"assigned_to,omitempty"`
	AssignedToName string          `json:"assigned_to_name,omitempty"`
	Shipping       decimal.Decimal `json:"shipping"`
	Tax            decimal.Decimal `json:"tax"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by,omitempty"`
	LastUpdatedAt  *time.Time      `json:"last_updated_at,omitempty"`
	LastUpdatedBy  string          `json:"last_updated_by,omitempty"`
}

// OrderInput carries the fields needed to create an order. ProductID is resolved
// to a snapshot at creation; UnitPrice, if non-zero, overrides the catalog price
// (the storefront passes the offer-resolved price it showed the customer).
type OrderInput struct {
	Name      string
	Email     string
	Phone     string
	Address   string
	ProductID int
	Quantity  int
	UnitPrice decimal.Decimal // zero means "use the product's catalog price"
	Source    OrderSource
	Notes     string
	Shipping  decimal.Decimal
	Tax       decimal.Decimal
	CreatedBy string
}
