package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gematelier/ordersync/internal/domain/orders"
	"github.com/gematelier/ordersync/internal/domain/shared"
	"github.com/gematelier/ordersync/internal/infrastructure/persistence/models"
)

// itemInsertBatchSize bounds a single multi-row INSERT for order items
const itemInsertBatchSize = 100

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// ExistsBySourceOrderID reports whether an order was already imported for the
// given source order identifier
func (r *GormOrderRepository) ExistsBySourceOrderID(ctx context.Context, sourceOrderID string) (bool, error) {
	if sourceOrderID == "" {
		return false, shared.NewDomainError("INVALID_SOURCE_ORDER_ID", "Source order ID cannot be empty")
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("source_order_id = ?", sourceOrderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindBySourceOrderID finds an imported order by its source identifier
func (r *GormOrderRepository) FindBySourceOrderID(ctx context.Context, sourceOrderID string) (*orders.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("source_order_id = ?", sourceOrderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CreateWithChildren inserts the order together with its items, addresses and
// audit note in a single transaction. Addresses are upserted keyed by order id,
// so re-running against a partially written order replaces rather than
// duplicates. Any failure rolls the whole order back.
func (r *GormOrderRepository) CreateWithChildren(ctx context.Context, order *orders.Order, items []orders.OrderItem, addresses []orders.OrderAddress, note *orders.OrderNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.OrderModelFromDomain(order)).Error; err != nil {
			return err
		}

		if len(items) > 0 {
			itemModels := make([]*models.OrderItemModel, len(items))
			for i := range items {
				itemModels[i] = models.OrderItemModelFromDomain(&items[i])
			}
			if err := tx.CreateInBatches(itemModels, itemInsertBatchSize).Error; err != nil {
				return err
			}
		}

		for i := range addresses {
			if err := r.upsertAddress(tx, &addresses[i]); err != nil {
				return err
			}
		}

		if note != nil {
			if err := tx.Create(models.OrderNoteModelFromDomain(note)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// upsertAddress writes one address row, replacing any existing row for the
// same order on the same side
func (r *GormOrderRepository) upsertAddress(tx *gorm.DB, address *orders.OrderAddress) error {
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		UpdateAll: true,
	}

	switch address.Side {
	case orders.AddressSideBilling:
		model := &models.OrderBillingAddressModel{}
		model.FromDomainBaseEntity(address.BaseEntity)
		model.FromDomainAddress(address)
		return tx.Clauses(onConflict).Create(model).Error
	case orders.AddressSideShipping:
		model := &models.OrderShippingAddressModel{}
		model.FromDomainBaseEntity(address.BaseEntity)
		model.FromDomainAddress(address)
		return tx.Clauses(onConflict).Create(model).Error
	default:
		return shared.NewDomainError("INVALID_ADDRESS_SIDE", "Address side must be billing or shipping")
	}
}

// Count counts all imported orders
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ orders.OrderRepository = (*GormOrderRepository)(nil)
