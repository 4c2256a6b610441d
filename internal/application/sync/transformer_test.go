package sync

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gematelier/ordersync/internal/domain/commerce"
	"github.com/gematelier/ordersync/internal/domain/orders"
)

func fullSourceOrder() *commerce.SourceOrder {
	return &commerce.SourceOrder{
		ID:         900123,
		Name:       "#1001",
		Email:      "jane@example.com",
		CreatedAt:  "2024-01-10T14:23:00-05:00",
		TotalPrice: "149.95",
		Tags:       "import, rush",
		Customer: &commerce.SourceCustomer{
			ID:        42,
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Phone:     "555-0100",
		},
		BillingAddress: &commerce.SourceAddress{
			FirstName: "Jane",
			LastName:  "Doe",
			Company:   "Acme Inc",
			Address1:  "1 Main St",
			City:      "Springfield",
			Province:  "IL",
			Country:   "US",
			Zip:       "62701",
			Phone:     "555-0100",
		},
		ShippingAddress: &commerce.SourceAddress{
			FirstName: "John",
			LastName:  "Smith",
			Address1:  "2 Oak Ave",
			City:      "Chicago",
			Province:  "IL",
			Country:   "US",
			Zip:       "60601",
		},
		LineItems: []commerce.SourceLineItem{
			{ID: 7001, VariantID: 55, SKU: "WIDGET-1", Title: "Widget", Price: "49.95", Quantity: 2},
			{ID: 7002, VariantID: 56, SKU: "GADGET-9", Title: "Gadget", Price: "50.05", Quantity: 1},
		},
	}
}

func TestTransformer_Transform(t *testing.T) {
	transformer := NewTransformer()

	t.Run("transforms a complete order", func(t *testing.T) {
		payloads, err := transformer.Transform(fullSourceOrder())
		require.NoError(t, err)

		assert.Equal(t, "900123", payloads.Order.SourceOrderID)
		assert.Equal(t, "#1001", payloads.Order.OrderNumber)
		assert.Equal(t, "2024-01-10", payloads.Order.OrderDate)
		assert.True(t, payloads.Order.TotalAmount.Equal(decimal.RequireFromString("149.95")))
		assert.Equal(t, "Jane Doe", payloads.Order.BillToName)
		assert.Equal(t, "John Smith", payloads.Order.ShipToName)
		assert.Equal(t, "jane@example.com", payloads.Order.CustomerEmail)

		require.NotNil(t, payloads.Customer)
		assert.Equal(t, "jane@example.com", payloads.Customer.Email)
		assert.Equal(t, "Jane", payloads.Customer.FirstName)
		assert.Equal(t, "1 Main St", payloads.Customer.Address1)

		require.Len(t, payloads.Items, 2)
		assert.Equal(t, "WIDGET-1", payloads.Items[0].SKU)
		assert.Equal(t, "Widget", payloads.Items[0].Details)
		assert.Equal(t, 2, payloads.Items[0].Quantity)

		require.NotNil(t, payloads.Billing)
		assert.Equal(t, orders.AddressSideBilling, payloads.Billing.Side)
		assert.Equal(t, "Acme Inc", payloads.Billing.Company)
		require.NotNil(t, payloads.Shipping)
		assert.Equal(t, orders.AddressSideShipping, payloads.Shipping.Side)
		assert.Equal(t, "2 Oak Ave", payloads.Shipping.Address1)
	})

	t.Run("truncates creation timestamp to calendar date", func(t *testing.T) {
		source := fullSourceOrder()
		source.CreatedAt = "2023-12-31T23:59:59+09:00"

		payloads, err := transformer.Transform(source)
		require.NoError(t, err)
		assert.Equal(t, "2023-12-31", payloads.Order.OrderDate)
	})

	t.Run("rejects unusable creation timestamp", func(t *testing.T) {
		source := fullSourceOrder()
		source.CreatedAt = "2024"

		_, err := transformer.Transform(source)
		assert.ErrorIs(t, err, ErrInvalidOrderDate)
	})

	t.Run("rejects missing order id", func(t *testing.T) {
		source := fullSourceOrder()
		source.ID = 0

		_, err := transformer.Transform(source)
		assert.ErrorIs(t, err, ErrMissingSourceOrderID)
	})

	t.Run("coerces unparseable amounts to zero", func(t *testing.T) {
		source := fullSourceOrder()
		source.TotalPrice = "not-a-number"
		source.LineItems[0].Price = ""

		payloads, err := transformer.Transform(source)
		require.NoError(t, err)
		assert.True(t, payloads.Order.TotalAmount.IsZero())
		assert.True(t, payloads.Items[0].UnitPrice.IsZero())
	})

	t.Run("omits customer when no email anywhere", func(t *testing.T) {
		source := fullSourceOrder()
		source.Email = ""
		source.Customer = nil

		payloads, err := transformer.Transform(source)
		require.NoError(t, err)
		assert.Nil(t, payloads.Customer)
		assert.Equal(t, "", payloads.Order.CustomerEmail)
	})

	t.Run("falls back to customer email", func(t *testing.T) {
		source := fullSourceOrder()
		source.Email = ""

		payloads, err := transformer.Transform(source)
		require.NoError(t, err)
		require.NotNil(t, payloads.Customer)
		assert.Equal(t, "jane@example.com", payloads.Customer.Email)
	})
}

func TestTransformer_NameFallbacks(t *testing.T) {
	transformer := NewTransformer()

	tests := []struct {
		name           string
		mutate         func(*commerce.SourceOrder)
		wantBillToName string
	}{
		{
			name:           "address name wins",
			mutate:         func(o *commerce.SourceOrder) {},
			wantBillToName: "Jane Doe",
		},
		{
			name: "falls back to customer name",
			mutate: func(o *commerce.SourceOrder) {
				o.BillingAddress.FirstName = ""
				o.BillingAddress.LastName = ""
			},
			wantBillToName: "Jane Doe",
		},
		{
			name: "falls back to email",
			mutate: func(o *commerce.SourceOrder) {
				o.BillingAddress.FirstName = ""
				o.BillingAddress.LastName = ""
				o.Customer.FirstName = ""
				o.Customer.LastName = ""
			},
			wantBillToName: "jane@example.com",
		},
		{
			name: "empty when nothing applies",
			mutate: func(o *commerce.SourceOrder) {
				o.BillingAddress.FirstName = ""
				o.BillingAddress.LastName = ""
				o.Customer = nil
				o.Email = ""
			},
			wantBillToName: "",
		},
		{
			name: "first name alone is enough",
			mutate: func(o *commerce.SourceOrder) {
				o.BillingAddress.LastName = ""
			},
			wantBillToName: "Jane",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := fullSourceOrder()
			tt.mutate(source)

			payloads, err := transformer.Transform(source)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBillToName, payloads.Order.BillToName)
		})
	}
}

func TestTransformer_SKUFallbacks(t *testing.T) {
	transformer := NewTransformer()

	tests := []struct {
		name    string
		item    commerce.SourceLineItem
		wantSKU string
	}{
		{
			name:    "explicit sku wins",
			item:    commerce.SourceLineItem{ID: 7001, VariantID: 55, SKU: "WIDGET-1", Quantity: 1},
			wantSKU: "WIDGET-1",
		},
		{
			name:    "falls back to variant id",
			item:    commerce.SourceLineItem{ID: 7001, VariantID: 55, SKU: "", Quantity: 1},
			wantSKU: "55",
		},
		{
			name:    "falls back to line item id",
			item:    commerce.SourceLineItem{ID: 7001, VariantID: 0, SKU: "  ", Quantity: 1},
			wantSKU: "7001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := fullSourceOrder()
			source.LineItems = []commerce.SourceLineItem{tt.item}

			payloads, err := transformer.Transform(source)
			require.NoError(t, err)
			require.Len(t, payloads.Items, 1)
			assert.Equal(t, tt.wantSKU, payloads.Items[0].SKU)
		})
	}
}

func TestTransformer_QuantityFloor(t *testing.T) {
	transformer := NewTransformer()

	source := fullSourceOrder()
	source.LineItems = []commerce.SourceLineItem{
		{ID: 7001, SKU: "WIDGET-1", Quantity: 0},
	}

	payloads, err := transformer.Transform(source)
	require.NoError(t, err)
	require.Len(t, payloads.Items, 1)
	assert.Equal(t, 1, payloads.Items[0].Quantity)
}
