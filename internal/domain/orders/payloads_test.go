package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomerUpsert(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		payload, err := NewCustomerUpsert(CustomerUpsert{
			Email:     "jane@example.com",
			FirstName: "Jane",
		})
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", payload.Email)
	})

	t.Run("rejects missing email", func(t *testing.T) {
		_, err := NewCustomerUpsert(CustomerUpsert{FirstName: "Jane"})
		assert.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewCustomerUpsert(CustomerUpsert{Email: "not-an-email"})
		assert.Error(t, err)
	})
}

func TestNewOrderInsert(t *testing.T) {
	valid := OrderInsert{
		SourceOrderID: "900123",
		OrderNumber:   "#1001",
		OrderDate:     "2024-01-10",
		TotalAmount:   decimal.RequireFromString("149.95"),
		CustomerEmail: "jane@example.com",
	}

	t.Run("valid payload", func(t *testing.T) {
		payload, err := NewOrderInsert(valid)
		require.NoError(t, err)
		assert.Equal(t, "900123", payload.SourceOrderID)
	})

	t.Run("empty customer email is allowed", func(t *testing.T) {
		p := valid
		p.CustomerEmail = ""
		_, err := NewOrderInsert(p)
		assert.NoError(t, err)
	})

	t.Run("rejects missing source order id", func(t *testing.T) {
		p := valid
		p.SourceOrderID = ""
		_, err := NewOrderInsert(p)
		assert.Error(t, err)
	})

	t.Run("rejects untruncated timestamp as date", func(t *testing.T) {
		p := valid
		p.OrderDate = "2024-01-10T14:23:00Z"
		_, err := NewOrderInsert(p)
		assert.Error(t, err)
	})
}

func TestNewOrderItemInsert(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		payload, err := NewOrderItemInsert(OrderItemInsert{
			SKU:       "WIDGET-1",
			Details:   "Widget",
			UnitPrice: decimal.RequireFromString("49.95"),
			Quantity:  2,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, payload.Quantity)
	})

	t.Run("rejects missing sku", func(t *testing.T) {
		_, err := NewOrderItemInsert(OrderItemInsert{Quantity: 1})
		assert.Error(t, err)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewOrderItemInsert(OrderItemInsert{SKU: "WIDGET-1", Quantity: 0})
		assert.Error(t, err)
	})
}

func TestNewAddressUpsert(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		payload, err := NewAddressUpsert(AddressUpsert{
			Side: AddressSideShipping,
			Name: "Jane Doe",
		})
		require.NoError(t, err)
		assert.Equal(t, AddressSideShipping, payload.Side)
	})

	t.Run("rejects unknown side", func(t *testing.T) {
		_, err := NewAddressUpsert(AddressUpsert{Side: AddressSide("sideways")})
		assert.Error(t, err)
	})
}

func TestCustomer_ApplySnapshot(t *testing.T) {
	payload, err := NewCustomerUpsert(CustomerUpsert{
		Email:     "Jane@Example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		City:      "Springfield",
	})
	require.NoError(t, err)

	customer := NewCustomer(payload)
	assert.Equal(t, "jane@example.com", customer.Email)
	assert.Equal(t, "Jane Doe", customer.DisplayName())

	refreshed, err := NewCustomerUpsert(CustomerUpsert{
		Email:     "jane@example.com",
		FirstName: "Janet",
		City:      "Chicago",
	})
	require.NoError(t, err)

	customer.ApplySnapshot(refreshed)
	assert.Equal(t, "Janet", customer.FirstName)
	assert.Equal(t, "Chicago", customer.City)
	assert.Equal(t, "jane@example.com", customer.Email)
}

func TestCustomer_DisplayNameFallsBackToEmail(t *testing.T) {
	payload, err := NewCustomerUpsert(CustomerUpsert{Email: "jane@example.com"})
	require.NoError(t, err)

	customer := NewCustomer(payload)
	assert.Equal(t, "jane@example.com", customer.DisplayName())
}
