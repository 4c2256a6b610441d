package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gematelier/ordersync/internal/domain/orders"
	"github.com/gematelier/ordersync/internal/domain/shared"
	"github.com/gematelier/ordersync/internal/infrastructure/telemetry"
)

// ErrAlreadyImported signals that a local order already exists for the
// source order identifier and nothing was written
var ErrAlreadyImported = errors.New("sync: order already imported")

// PersistResult reports what the persister wrote for one order
type PersistResult struct {
	OrderID    uuid.UUID
	CustomerID *uuid.UUID
	ItemCount  int
}

// Persister writes one transformed order to the local database: customer
// upsert, order insert, item batch, address upserts and the audit note, the
// order and its children in a single transaction.
type Persister struct {
	customerRepo  orders.CustomerRepository
	orderRepo     orders.OrderRepository
	dedupeEnabled bool
	logger        *zap.Logger
}

// NewPersister creates a new Persister
func NewPersister(
	customerRepo orders.CustomerRepository,
	orderRepo orders.OrderRepository,
	dedupeEnabled bool,
	logger *zap.Logger,
) *Persister {
	return &Persister{
		customerRepo:  customerRepo,
		orderRepo:     orderRepo,
		dedupeEnabled: dedupeEnabled,
		logger:        logger,
	}
}

// Persist writes one order's payloads. When dedupe is enabled and a local
// order already exists for the source identifier, nothing is written and
// ErrAlreadyImported is returned; the unique index on the source identifier
// backstops the check either way.
func (p *Persister) Persist(ctx context.Context, payloads *orders.OrderPayloads) (*PersistResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "sync.persist",
		telemetry.Attr(telemetry.SpanAttrSourceOrderID, payloads.Order.SourceOrderID))
	defer span.End()

	if p.dedupeEnabled {
		exists, err := p.orderRepo.ExistsBySourceOrderID(ctx, payloads.Order.SourceOrderID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("checking for existing order: %w", err)
		}
		if exists {
			return nil, ErrAlreadyImported
		}
	}

	customerID, err := p.resolveCustomer(ctx, payloads.Customer)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	order := &orders.Order{
		BaseEntity:    shared.NewBaseEntity(),
		CustomerID:    customerID,
		SourceOrderID: payloads.Order.SourceOrderID,
		OrderNumber:   payloads.Order.OrderNumber,
		OrderDate:     payloads.Order.OrderDate,
		TotalAmount:   payloads.Order.TotalAmount,
		BillToName:    payloads.Order.BillToName,
		ShipToName:    payloads.Order.ShipToName,
	}

	items := make([]orders.OrderItem, 0, len(payloads.Items))
	for _, item := range payloads.Items {
		items = append(items, orders.OrderItem{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    order.ID,
			SKU:        item.SKU,
			Details:    item.Details,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
		})
	}

	addresses := make([]orders.OrderAddress, 0, 2)
	for _, addr := range []*orders.AddressUpsert{payloads.Billing, payloads.Shipping} {
		if addr == nil {
			continue
		}
		addresses = append(addresses, orders.OrderAddress{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    order.ID,
			Side:       addr.Side,
			Name:       addr.Name,
			Company:    addr.Company,
			Address1:   addr.Address1,
			Address2:   addr.Address2,
			City:       addr.City,
			Province:   addr.Province,
			Country:    addr.Country,
			Zip:        addr.Zip,
			Phone:      addr.Phone,
		})
	}

	note := &orders.OrderNote{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    order.ID,
		Note:       fmt.Sprintf("Shopify Order: %s", order.SourceOrderID),
	}

	if err := p.orderRepo.CreateWithChildren(ctx, order, items, addresses, note); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("writing order %s: %w", order.SourceOrderID, err)
	}

	p.logger.Info("Order imported",
		zap.String("source_order_id", order.SourceOrderID),
		zap.String("order_id", order.ID.String()),
		zap.Int("items", len(items)),
	)

	return &PersistResult{
		OrderID:    order.ID,
		CustomerID: customerID,
		ItemCount:  len(items),
	}, nil
}

// resolveCustomer upserts the customer keyed by email and returns its local
// id, or nil when the order carries no customer payload. An existing
// customer's snapshot is refreshed last-write-wins.
func (p *Persister) resolveCustomer(ctx context.Context, payload *orders.CustomerUpsert) (*uuid.UUID, error) {
	if payload == nil {
		return nil, nil
	}

	existing, err := p.customerRepo.FindByEmail(ctx, payload.Email)
	switch {
	case err == nil:
		existing.ApplySnapshot(payload)
		if err := p.customerRepo.Save(ctx, existing); err != nil {
			return nil, fmt.Errorf("updating customer %s: %w", payload.Email, err)
		}
		return &existing.ID, nil
	case errors.Is(err, shared.ErrNotFound):
		customer := orders.NewCustomer(payload)
		if err := p.customerRepo.Save(ctx, customer); err != nil {
			return nil, fmt.Errorf("creating customer %s: %w", payload.Email, err)
		}
		p.logger.Debug("Customer created", zap.String("email", customer.Email))
		return &customer.ID, nil
	default:
		return nil, fmt.Errorf("looking up customer %s: %w", payload.Email, err)
	}
}
