// Package models contains the GORM persistence models for the local order
// schema and their conversions to and from domain entities.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gematelier/ordersync/internal/domain/orders"
	"github.com/gematelier/ordersync/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// ---------------------------------------------------------------------------
// Customer
// ---------------------------------------------------------------------------

// CustomerModel is the persistence model for the Customer domain entity
type CustomerModel struct {
	BaseModel
	Email     string `gorm:"type:varchar(200);not null;uniqueIndex:idx_customers_email"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Phone     string `gorm:"type:varchar(50)"`
	Address1  string `gorm:"type:varchar(200)"`
	Address2  string `gorm:"type:varchar(200)"`
	City      string `gorm:"type:varchar(100)"`
	Province  string `gorm:"type:varchar(100)"`
	Country   string `gorm:"type:varchar(100)"`
	Zip       string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity
func (m *CustomerModel) ToDomain() *orders.Customer {
	return &orders.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		Email:      m.Email,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Phone:      m.Phone,
		Address1:   m.Address1,
		Address2:   m.Address2,
		City:       m.City,
		Province:   m.Province,
		Country:    m.Country,
		Zip:        m.Zip,
	}
}

// CustomerModelFromDomain builds a persistence model from a domain Customer
func CustomerModelFromDomain(c *orders.Customer) *CustomerModel {
	m := &CustomerModel{
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Address1:  c.Address1,
		Address2:  c.Address2,
		City:      c.City,
		Province:  c.Province,
		Country:   c.Country,
		Zip:       c.Zip,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ---------------------------------------------------------------------------
// Order
// ---------------------------------------------------------------------------

// OrderModel is the persistence model for the Order domain entity
type OrderModel struct {
	BaseModel
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	SourceOrderID string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_orders_source_order_id"`
	OrderNumber   string          `gorm:"type:varchar(50)"`
	OrderDate     string          `gorm:"type:date;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BillToName    string          `gorm:"type:varchar(200)"`
	ShipToName    string          `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity
func (m *OrderModel) ToDomain() *orders.Order {
	return &orders.Order{
		BaseEntity:    m.BaseModel.ToDomain(),
		CustomerID:    m.CustomerID,
		SourceOrderID: m.SourceOrderID,
		OrderNumber:   m.OrderNumber,
		OrderDate:     m.OrderDate,
		TotalAmount:   m.TotalAmount,
		BillToName:    m.BillToName,
		ShipToName:    m.ShipToName,
	}
}

// OrderModelFromDomain builds a persistence model from a domain Order
func OrderModelFromDomain(o *orders.Order) *OrderModel {
	m := &OrderModel{
		CustomerID:    o.CustomerID,
		SourceOrderID: o.SourceOrderID,
		OrderNumber:   o.OrderNumber,
		OrderDate:     o.OrderDate,
		TotalAmount:   o.TotalAmount,
		BillToName:    o.BillToName,
		ShipToName:    o.ShipToName,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	return m
}

// ---------------------------------------------------------------------------
// Order Item
// ---------------------------------------------------------------------------

// OrderItemModel is the persistence model for the OrderItem domain entity
type OrderItemModel struct {
	BaseModel
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU       string          `gorm:"type:varchar(100);not null"`
	Details   string          `gorm:"type:text"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Quantity  int             `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem entity
func (m *OrderItemModel) ToDomain() *orders.OrderItem {
	return &orders.OrderItem{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		SKU:        m.SKU,
		Details:    m.Details,
		UnitPrice:  m.UnitPrice,
		Quantity:   m.Quantity,
	}
}

// OrderItemModelFromDomain builds a persistence model from a domain OrderItem
func OrderItemModelFromDomain(i *orders.OrderItem) *OrderItemModel {
	m := &OrderItemModel{
		OrderID:   i.OrderID,
		SKU:       i.SKU,
		Details:   i.Details,
		UnitPrice: i.UnitPrice,
		Quantity:  i.Quantity,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// ---------------------------------------------------------------------------
// Order Addresses
// ---------------------------------------------------------------------------

// orderAddressColumns holds the columns shared by both address tables
type orderAddressColumns struct {
	OrderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name     string    `gorm:"type:varchar(200)"`
	Company  string    `gorm:"type:varchar(200)"`
	Address1 string    `gorm:"type:varchar(200)"`
	Address2 string    `gorm:"type:varchar(200)"`
	City     string    `gorm:"type:varchar(100)"`
	Province string    `gorm:"type:varchar(100)"`
	Country  string    `gorm:"type:varchar(100)"`
	Zip      string    `gorm:"type:varchar(20)"`
	Phone    string    `gorm:"type:varchar(50)"`
}

// FromDomainAddress populates the shared address columns from a domain
// OrderAddress; the side is carried by the table, not a column
func (c *orderAddressColumns) FromDomainAddress(a *orders.OrderAddress) {
	c.OrderID = a.OrderID
	c.Name = a.Name
	c.Company = a.Company
	c.Address1 = a.Address1
	c.Address2 = a.Address2
	c.City = a.City
	c.Province = a.Province
	c.Country = a.Country
	c.Zip = a.Zip
	c.Phone = a.Phone
}

func (c *orderAddressColumns) toDomain(base shared.BaseEntity, side orders.AddressSide) *orders.OrderAddress {
	return &orders.OrderAddress{
		BaseEntity: base,
		OrderID:    c.OrderID,
		Side:       side,
		Name:       c.Name,
		Company:    c.Company,
		Address1:   c.Address1,
		Address2:   c.Address2,
		City:       c.City,
		Province:   c.Province,
		Country:    c.Country,
		Zip:        c.Zip,
		Phone:      c.Phone,
	}
}

// OrderBillingAddressModel is the persistence model for the billing side,
// one row per order (replace-on-conflict keyed by order id)
type OrderBillingAddressModel struct {
	BaseModel
	orderAddressColumns
}

// TableName returns the table name for GORM
func (OrderBillingAddressModel) TableName() string {
	return "order_billing_address"
}

// ToDomain converts the persistence model to a domain OrderAddress entity
func (m *OrderBillingAddressModel) ToDomain() *orders.OrderAddress {
	return m.orderAddressColumns.toDomain(m.BaseModel.ToDomain(), orders.AddressSideBilling)
}

// OrderShippingAddressModel is the persistence model for the shipping side,
// one row per order (replace-on-conflict keyed by order id)
type OrderShippingAddressModel struct {
	BaseModel
	orderAddressColumns
}

// TableName returns the table name for GORM
func (OrderShippingAddressModel) TableName() string {
	return "order_shipping_address"
}

// ToDomain converts the persistence model to a domain OrderAddress entity
func (m *OrderShippingAddressModel) ToDomain() *orders.OrderAddress {
	return m.orderAddressColumns.toDomain(m.BaseModel.ToDomain(), orders.AddressSideShipping)
}

// ---------------------------------------------------------------------------
// Order Customer Note
// ---------------------------------------------------------------------------

// OrderCustomerNoteModel is the persistence model for the free-text audit
// trail attached to imported orders
type OrderCustomerNoteModel struct {
	BaseModel
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Note    string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (OrderCustomerNoteModel) TableName() string {
	return "order_customer_notes"
}

// ToDomain converts the persistence model to a domain OrderNote entity
func (m *OrderCustomerNoteModel) ToDomain() *orders.OrderNote {
	return &orders.OrderNote{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		Note:       m.Note,
	}
}

// OrderNoteModelFromDomain builds a persistence model from a domain OrderNote
func OrderNoteModelFromDomain(n *orders.OrderNote) *OrderCustomerNoteModel {
	m := &OrderCustomerNoteModel{
		OrderID: n.OrderID,
		Note:    n.Note,
	}
	m.FromDomainBaseEntity(n.BaseEntity)
	return m
}
