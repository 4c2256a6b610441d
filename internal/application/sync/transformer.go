// Package sync implements the incremental order import pipeline: fetching
// tagged orders from the commerce platform, transforming them into the local
// schema and persisting them, with a per-run audit trail.
package sync

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gematelier/ordersync/internal/domain/commerce"
	"github.com/gematelier/ordersync/internal/domain/orders"
)

var (
	ErrMissingSourceOrderID = errors.New("sync: source order has no identifier")
	ErrInvalidOrderDate     = errors.New("sync: source order has no usable creation date")
)

// orderDateLength is the length of the calendar-date prefix of an ISO-8601
// timestamp ("2006-01-02")
const orderDateLength = 10

// Transformer converts platform source orders into validated local payloads.
// It is pure: no I/O, no clock, no state.
type Transformer struct{}

// NewTransformer creates a new Transformer
func NewTransformer() *Transformer {
	return &Transformer{}
}

// Transform derives the full set of local write payloads from one source
// order. Derivation rules:
//   - the order date is the calendar-date prefix of created_at, the
//     time-of-day is dropped
//   - monetary strings that fail to parse are coerced to zero
//   - display names fall back address name, then customer name, then email
//   - item SKUs fall back sku, then variant id, then line item id
func (t *Transformer) Transform(source *commerce.SourceOrder) (*orders.OrderPayloads, error) {
	if source.ID == 0 {
		return nil, ErrMissingSourceOrderID
	}

	orderDate, err := deriveOrderDate(source.CreatedAt)
	if err != nil {
		return nil, err
	}

	email := resolveEmail(source)
	billToName := deriveName(source.BillingAddress, source, email)
	shipToName := deriveName(source.ShippingAddress, source, email)

	order, err := orders.NewOrderInsert(orders.OrderInsert{
		SourceOrderID: source.IDString(),
		OrderNumber:   source.Name,
		OrderDate:     orderDate,
		TotalAmount:   coerceAmount(source.TotalPrice),
		BillToName:    billToName,
		ShipToName:    shipToName,
		CustomerEmail: email,
	})
	if err != nil {
		return nil, err
	}

	payloads := &orders.OrderPayloads{Order: order}

	if email != "" {
		customer, err := t.customerPayload(source, email)
		if err != nil {
			return nil, err
		}
		payloads.Customer = customer
	}

	items := make([]orders.OrderItemInsert, 0, len(source.LineItems))
	for i := range source.LineItems {
		item, err := t.itemPayload(&source.LineItems[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	payloads.Items = items

	if source.BillingAddress != nil {
		billing, err := addressPayload(source.BillingAddress, orders.AddressSideBilling, billToName)
		if err != nil {
			return nil, err
		}
		payloads.Billing = billing
	}
	if source.ShippingAddress != nil {
		shipping, err := addressPayload(source.ShippingAddress, orders.AddressSideShipping, shipToName)
		if err != nil {
			return nil, err
		}
		payloads.Shipping = shipping
	}

	return payloads, nil
}

// customerPayload builds the customer snapshot from the source order. The
// customer's address snapshot comes from the billing side, falling back to
// shipping.
func (t *Transformer) customerPayload(source *commerce.SourceOrder, email string) (*orders.CustomerUpsert, error) {
	payload := orders.CustomerUpsert{Email: email}

	if source.Customer != nil {
		payload.FirstName = source.Customer.FirstName
		payload.LastName = source.Customer.LastName
		payload.Phone = source.Customer.Phone
	}

	addr := source.BillingAddress
	if addr == nil {
		addr = source.ShippingAddress
	}
	if addr != nil {
		if payload.FirstName == "" && payload.LastName == "" {
			payload.FirstName = addr.FirstName
			payload.LastName = addr.LastName
		}
		if payload.Phone == "" {
			payload.Phone = addr.Phone
		}
		payload.Address1 = addr.Address1
		payload.Address2 = addr.Address2
		payload.City = addr.City
		payload.Province = addr.Province
		payload.Country = addr.Country
		payload.Zip = addr.Zip
	}

	return orders.NewCustomerUpsert(payload)
}

// itemPayload builds one item insert from a source line item
func (t *Transformer) itemPayload(item *commerce.SourceLineItem) (*orders.OrderItemInsert, error) {
	quantity := item.Quantity
	if quantity < 1 {
		quantity = 1
	}
	return orders.NewOrderItemInsert(orders.OrderItemInsert{
		SKU:       deriveSKU(item),
		Details:   item.Title,
		UnitPrice: coerceAmount(item.Price),
		Quantity:  quantity,
	})
}

// addressPayload builds one side's address upsert from a source address
func addressPayload(addr *commerce.SourceAddress, side orders.AddressSide, name string) (*orders.AddressUpsert, error) {
	return orders.NewAddressUpsert(orders.AddressUpsert{
		Side:     side,
		Name:     name,
		Company:  addr.Company,
		Address1: addr.Address1,
		Address2: addr.Address2,
		City:     addr.City,
		Province: addr.Province,
		Country:  addr.Country,
		Zip:      addr.Zip,
		Phone:    addr.Phone,
	})
}

// deriveOrderDate truncates an ISO-8601 timestamp to its calendar date
func deriveOrderDate(createdAt string) (string, error) {
	if len(createdAt) < orderDateLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderDate, createdAt)
	}
	return createdAt[:orderDateLength], nil
}

// resolveEmail picks the buyer email, preferring the order-level field over
// the customer sub-record. Returns the lowercased form, or empty.
func resolveEmail(source *commerce.SourceOrder) string {
	email := strings.TrimSpace(source.Email)
	if email == "" && source.Customer != nil {
		email = strings.TrimSpace(source.Customer.Email)
	}
	return strings.ToLower(email)
}

// deriveName resolves a display name for one address side: the address's own
// name first, then the customer name, then the email; empty when nothing
// applies.
func deriveName(addr *commerce.SourceAddress, source *commerce.SourceOrder, email string) string {
	if addr != nil {
		if name := joinName(addr.FirstName, addr.LastName); name != "" {
			return name
		}
	}
	if source.Customer != nil {
		if name := joinName(source.Customer.FirstName, source.Customer.LastName); name != "" {
			return name
		}
	}
	return email
}

// deriveSKU resolves an item SKU: the explicit sku first, then the variant
// identifier, then the line item identifier
func deriveSKU(item *commerce.SourceLineItem) string {
	if sku := strings.TrimSpace(item.SKU); sku != "" {
		return sku
	}
	if item.VariantID != 0 {
		return fmt.Sprintf("%d", item.VariantID)
	}
	return fmt.Sprintf("%d", item.ID)
}

// coerceAmount parses a platform decimal string, coercing anything
// unparseable to zero
func coerceAmount(amount string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// joinName joins first and last name with a single space, trimming blanks
func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
