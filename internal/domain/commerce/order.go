package commerce

import (
	"strings"
)

// ---------------------------------------------------------------------------
// Source Order Value Objects
// ---------------------------------------------------------------------------

// SourceOrder represents an order as returned by the remote commerce platform.
// Field shapes mirror the platform's wire format: timestamps stay ISO-8601
// strings and amounts stay strings, so that the transformer owns every
// derivation rule (date truncation, zero coercion) in one place.
type SourceOrder struct {
	// ID is the platform's opaque order identifier
	ID int64 `json:"id"`
	// Name is the human-readable order number (e.g. "#1001")
	Name string `json:"name"`
	// Email is the buyer email; may be empty
	Email string `json:"email"`
	// CreatedAt is the ISO-8601 creation timestamp as sent by the platform
	CreatedAt string `json:"created_at"`
	// TotalPrice is the order total as a decimal string
	TotalPrice string `json:"total_price"`
	// Tags is the free-text comma-separated tag list
	Tags string `json:"tags"`
	// Customer is the platform's customer sub-record; may be nil
	Customer *SourceCustomer `json:"customer"`
	// BillingAddress is the billing side address; may be nil
	BillingAddress *SourceAddress `json:"billing_address"`
	// ShippingAddress is the shipping side address; may be nil
	ShippingAddress *SourceAddress `json:"shipping_address"`
	// LineItems contains the order line items
	LineItems []SourceLineItem `json:"line_items"`
}

// SourceCustomer is the customer sub-record embedded in a SourceOrder
type SourceCustomer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// SourceAddress is a billing or shipping address on a SourceOrder
type SourceAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

// SourceLineItem is a line item on a SourceOrder
type SourceLineItem struct {
	ID        int64  `json:"id"`
	VariantID int64  `json:"variant_id"`
	SKU       string `json:"sku"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

// IDString returns the order identifier as a string
func (o *SourceOrder) IDString() string {
	return formatID(o.ID)
}

// ---------------------------------------------------------------------------
// Tag Handling
// ---------------------------------------------------------------------------

// ParseTags splits a platform tag string ("import, rush") into trimmed tags.
// Empty entries are dropped.
func ParseTags(tags string) []string {
	if tags == "" {
		return []string{}
	}
	parts := strings.Split(tags, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			result = append(result, t)
		}
	}
	return result
}

// JoinTags joins tags back into the platform's comma-separated form
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// HasTag reports whether the order carries the given tag (case-insensitive)
func (o *SourceOrder) HasTag(tag string) bool {
	for _, t := range ParseTags(o.Tags) {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ReplaceTag returns the order's tag set with oldTag swapped for newTag,
// preserving every unrelated tag. newTag is appended if oldTag is absent,
// and deduplicated if already present.
func ReplaceTag(tags string, oldTag, newTag string) []string {
	parsed := ParseTags(tags)
	result := make([]string, 0, len(parsed)+1)
	seen := false
	for _, t := range parsed {
		switch {
		case strings.EqualFold(t, oldTag):
			continue
		case strings.EqualFold(t, newTag):
			seen = true
		}
		result = append(result, t)
	}
	if !seen {
		result = append(result, newTag)
	}
	return result
}
