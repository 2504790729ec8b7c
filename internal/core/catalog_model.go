package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Inventory is the on-hand unit count maintained by
// the order lifecycle; Price is the undiscounted catalog price.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Inventory   int             `json:"inventory"`
	CategoryID  int             `json:"category_id"`
	ImageURL    string          `json:"image_url"`
	Featured    bool            `json:"featured"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by,omitempty"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// Category groups products for browsing and for offer targeting.
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
