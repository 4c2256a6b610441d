package sync

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gematelier/ordersync/internal/domain/commerce"
	"github.com/gematelier/ordersync/internal/domain/orders"
	"github.com/gematelier/ordersync/internal/domain/runs"
)

// MockCommercePlatform is a mock implementation of commerce.CommercePlatform
type MockCommercePlatform struct {
	mock.Mock
}

func (m *MockCommercePlatform) ListOrdersByTag(ctx context.Context, opts commerce.ListOptions) ([]commerce.SourceOrder, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commerce.SourceOrder), args.Error(1)
}

func (m *MockCommercePlatform) GetOrder(ctx context.Context, orderID string) (*commerce.SourceOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.SourceOrder), args.Error(1)
}

func (m *MockCommercePlatform) UpdateTags(ctx context.Context, orderID string, tags []string) error {
	args := m.Called(ctx, orderID, tags)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of orders.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*orders.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *orders.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository is a mock implementation of orders.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) ExistsBySourceOrderID(ctx context.Context, sourceOrderID string) (bool, error) {
	args := m.Called(ctx, sourceOrderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) FindBySourceOrderID(ctx context.Context, sourceOrderID string) (*orders.Order, error) {
	args := m.Called(ctx, sourceOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateWithChildren(ctx context.Context, order *orders.Order, items []orders.OrderItem, addresses []orders.OrderAddress, note *orders.OrderNote) error {
	args := m.Called(ctx, order, items, addresses, note)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRunLog is a mock implementation of runs.RunLog
type MockRunLog struct {
	mock.Mock
}

func (m *MockRunLog) WriteManifest(run *runs.Run, snapshots []runs.OrderSnapshot) error {
	args := m.Called(run, snapshots)
	return args.Error(0)
}

func (m *MockRunLog) WriteOutcome(outcome *runs.OrderOutcome) error {
	args := m.Called(outcome)
	return args.Error(0)
}
