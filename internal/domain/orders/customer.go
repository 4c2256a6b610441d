package orders

import (
	"strings"

	"github.com/gematelier/ordersync/internal/domain/shared"
)

// Customer is a locally stored customer, keyed by email. The source platform
// has no customer identifier guaranteed stable across exports, so email is the
// natural identity key. Address and phone are last-write-wins snapshots.
type Customer struct {
	shared.BaseEntity
	Email     string
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

// NewCustomer creates a customer from an upsert payload
func NewCustomer(payload *CustomerUpsert) *Customer {
	c := &Customer{
		BaseEntity: shared.NewBaseEntity(),
	}
	c.ApplySnapshot(payload)
	c.Email = strings.ToLower(payload.Email)
	return c
}

// ApplySnapshot overwrites the customer's name, phone and address snapshot
// with the payload's values. Email is the identity key and never changes here.
func (c *Customer) ApplySnapshot(payload *CustomerUpsert) {
	c.FirstName = payload.FirstName
	c.LastName = payload.LastName
	c.Phone = payload.Phone
	c.Address1 = payload.Address1
	c.Address2 = payload.Address2
	c.City = payload.City
	c.Province = payload.Province
	c.Country = payload.Country
	c.Zip = payload.Zip
	c.Touch()
}

// DisplayName returns "first last" trimmed, falling back to the email
func (c *Customer) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name != "" {
		return name
	}
	return c.Email
}
