package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gematelier/ordersync/internal/domain/shared"
)

// AddressSide distinguishes the billing and shipping address of an order
type AddressSide string

const (
	AddressSideBilling  AddressSide = "billing"
	AddressSideShipping AddressSide = "shipping"
)

// IsValid returns true if the side is valid
func (s AddressSide) IsValid() bool {
	return s == AddressSideBilling || s == AddressSideShipping
}

// String returns the string representation of AddressSide
func (s AddressSide) String() string {
	return string(s)
}

// Order is one locally imported order. At most one row should ever exist per
// source order identifier; this is enforced by a unique index on SourceOrderID
// together with the persister's pre-write existence check.
type Order struct {
	shared.BaseEntity
	// CustomerID links to the local customer; nil when the source order
	// carried no resolvable email
	CustomerID *uuid.UUID
	// SourceOrderID is the platform's order identifier
	SourceOrderID string
	// OrderNumber is the human-readable order number from the platform
	OrderNumber string
	// OrderDate is the calendar date of the order ("2006-01-02"); no
	// time-of-day is retained
	OrderDate string
	// TotalAmount is the order total
	TotalAmount decimal.Decimal
	// BillToName and ShipToName are derived display names
	BillToName string
	ShipToName string
}

// OrderItem is one line item of an imported order. Items are created together
// with their order and never revised independently by the sync cycle.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID
	SKU       string
	Details   string
	UnitPrice decimal.Decimal
	Quantity  int
}

// OrderAddress is the billing or shipping address of an imported order,
// one row per order per side (replace-on-conflict).
type OrderAddress struct {
	shared.BaseEntity
	OrderID  uuid.UUID
	Side     AddressSide
	Name     string
	Company  string
	Address1 string
	Address2 string
	City     string
	Province string
	Country  string
	Zip      string
	Phone    string
}

// OrderNote is a free-text note attached to an imported order, used as an
// opportunistic audit trail ("Shopify Order: <id>" markers and the like).
type OrderNote struct {
	shared.BaseEntity
	OrderID uuid.UUID
	Note    string
}
