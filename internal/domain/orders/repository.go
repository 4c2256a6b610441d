package orders

import (
	"context"
)

// CustomerRepository defines the persistence interface for customers
type CustomerRepository interface {
	// FindByEmail finds a customer by email (lowercased); returns
	// shared.ErrNotFound when no row exists
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Count counts all customers
	Count(ctx context.Context) (int64, error)
}

// OrderRepository defines the persistence interface for imported orders
type OrderRepository interface {
	// ExistsBySourceOrderID reports whether an order was already imported for
	// the given source order identifier
	ExistsBySourceOrderID(ctx context.Context, sourceOrderID string) (bool, error)

	// FindBySourceOrderID finds an imported order by its source identifier;
	// returns shared.ErrNotFound when no row exists
	FindBySourceOrderID(ctx context.Context, sourceOrderID string) (*Order, error)

	// CreateWithChildren inserts the order, its items, its addresses and the
	// audit note in a single transaction. Items are batch-inserted; any
	// invalid item fails the whole batch.
	CreateWithChildren(ctx context.Context, order *Order, items []OrderItem, addresses []OrderAddress, note *OrderNote) error

	// Count counts all imported orders
	Count(ctx context.Context) (int64, error)
}
