package orders

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// payloadValidator validates payload structs at construction time. The
// instance is immutable and safe for concurrent use.
var payloadValidator = validator.New()

// ---------------------------------------------------------------------------
// Typed Insert/Upsert Payloads
// ---------------------------------------------------------------------------
// One explicit type per write shape, validated at the constructor, so nothing
// untyped crosses the transform/persist boundary.

// CustomerUpsert carries the fields written when a customer is created or its
// snapshot refreshed
type CustomerUpsert struct {
	Email     string `validate:"required,email"`
	FirstName string
	LastName  string
	Phone     string
	Address1  string
	Address2  string
	City      string
	Province  string
	Country   string
	Zip       string
}

// NewCustomerUpsert validates and returns a customer upsert payload
func NewCustomerUpsert(p CustomerUpsert) (*CustomerUpsert, error) {
	if err := payloadValidator.Struct(p); err != nil {
		return nil, fmt.Errorf("orders: invalid customer payload: %w", err)
	}
	return &p, nil
}

// OrderInsert carries the fields of a new local order row
type OrderInsert struct {
	SourceOrderID string `validate:"required"`
	OrderNumber   string
	// OrderDate must already be truncated to a calendar date
	OrderDate   string `validate:"required,datetime=2006-01-02"`
	TotalAmount decimal.Decimal
	BillToName  string
	ShipToName  string
	// CustomerEmail links the order to a local customer; empty means the
	// order is imported unlinked
	CustomerEmail string `validate:"omitempty,email"`
}

// NewOrderInsert validates and returns an order insert payload
func NewOrderInsert(p OrderInsert) (*OrderInsert, error) {
	if err := payloadValidator.Struct(p); err != nil {
		return nil, fmt.Errorf("orders: invalid order payload: %w", err)
	}
	return &p, nil
}

// OrderItemInsert carries one line item of a new order
type OrderItemInsert struct {
	SKU       string `validate:"required"`
	Details   string
	UnitPrice decimal.Decimal
	Quantity  int `validate:"required,min=1"`
}

// NewOrderItemInsert validates and returns an item insert payload
func NewOrderItemInsert(p OrderItemInsert) (*OrderItemInsert, error) {
	if err := payloadValidator.Struct(p); err != nil {
		return nil, fmt.Errorf("orders: invalid order item payload: %w", err)
	}
	return &p, nil
}

// AddressUpsert carries one side's address of a new order
type AddressUpsert struct {
	Side     AddressSide `validate:"required,oneof=billing shipping"`
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

// NewAddressUpsert validates and returns an address upsert payload
func NewAddressUpsert(p AddressUpsert) (*AddressUpsert, error) {
	if err := payloadValidator.Struct(p); err != nil {
		return nil, fmt.Errorf("orders: invalid address payload: %w", err)
	}
	return &p, nil
}

// OrderPayloads bundles every insertable shape derived from one source order
type OrderPayloads struct {
	// Customer is nil when the source order carries no resolvable email
	Customer *CustomerUpsert
	Order    *OrderInsert
	Items    []OrderItemInsert
	// Billing and Shipping are nil when the source order lacks that side
	Billing  *AddressUpsert
	Shipping *AddressUpsert
}
