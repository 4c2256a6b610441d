package shopify

import (
	"github.com/gematelier/ordersync/internal/domain/commerce"
)

// orderFields is the field list requested when listing tagged orders. Keeping
// the projection fixed keeps responses small and the import shape stable.
const orderFields = "id,name,email,created_at,total_price,tags,customer,billing_address,shipping_address,line_items"

// listPageSize is the admin API's maximum page size
const listPageSize = 250

// ordersEnvelope wraps the order list response
type ordersEnvelope struct {
	Orders []commerce.SourceOrder `json:"orders"`
}

// orderEnvelope wraps a single order response
type orderEnvelope struct {
	Order *commerce.SourceOrder `json:"order"`
}

// tagUpdateRequest is the PUT body for a tag update. Only id and tags are
// sent so no other order field can be clobbered.
type tagUpdateRequest struct {
	Order tagUpdateOrder `json:"order"`
}

type tagUpdateOrder struct {
	ID   int64  `json:"id"`
	Tags string `json:"tags"`
}
