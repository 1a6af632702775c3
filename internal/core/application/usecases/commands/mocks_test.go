package commands_test

import (
	"context"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/notification"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Add(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}
func (m *MockCartRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}
func (m *MockCartRepository) GetByUser(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}
func (m *MockCartRepository) Lines(ctx context.Context, cartID kernel.UUID) ([]cart.Line, error) {
	args := m.Called(ctx, cartID)
	lines, _ := args.Get(0).([]cart.Line)
	return lines, args.Error(1)
}
func (m *MockCartRepository) DeleteLines(ctx context.Context, ids []kernel.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}
func (m *MockProductRepository) AdjustStock(ctx context.Context, adj product.Adjustment) error {
	return m.Called(ctx, adj).Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*notification.Notification)
	return n, args.Error(1)
}
func (m *MockNotificationRepository) ListUnbroadcast(ctx context.Context, limit int) ([]*notification.Notification, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]*notification.Notification)
	return list, args.Error(1)
}
func (m *MockNotificationRepository) Claim(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockNotificationRepository) MarkAllRead(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockTx struct{ mock.Mock }

func (m *MockTx) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockTx) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockTx) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

// MockUoW satisfies every narrowed unit of work interface.
type MockUoW struct {
	MockTx
	Orders        *MockOrderRepository
	Carts         *MockCartRepository
	Users         *MockUserRepository
	Products      *MockProductRepository
	Notifications *MockNotificationRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		Orders:        new(MockOrderRepository),
		Carts:         new(MockCartRepository),
		Users:         new(MockUserRepository),
		Products:      new(MockProductRepository),
		Notifications: new(MockNotificationRepository),
	}
}

func (m *MockUoW) OrderRepository() ports.OrderRepository               { return m.Orders }
func (m *MockUoW) CartRepository() ports.CartRepository                 { return m.Carts }
func (m *MockUoW) UserRepository() ports.UserRepository                 { return m.Users }
func (m *MockUoW) ProductRepository() ports.ProductRepository           { return m.Products }
func (m *MockUoW) NotificationRepository() ports.NotificationRepository { return m.Notifications }

// expectCommitted sets up Begin, Commit and the deferred Rollback.
func (m *MockUoW) expectCommitted() {
	m.On("Begin", mock.Anything).Return(nil).Once()
	m.On("Commit", mock.Anything).Return(nil).Once()
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
}

// expectRolledBack sets up Begin and Rollback with no Commit.
func (m *MockUoW) expectRolledBack() {
	m.On("Begin", mock.Anything).Return(nil).Once()
	m.On("Rollback", mock.Anything).Return(nil).Once()
}

type uowFactory struct {
	uows []*MockUoW
	next int
}

func factoryOf(uows ...*MockUoW) *uowFactory {
	return &uowFactory{uows: uows}
}

func (f *uowFactory) create() *MockUoW {
	u := f.uows[f.next]
	f.next++
	return u
}

type checkoutFactory struct{ *uowFactory }

func (f checkoutFactory) Create() commands.CheckoutUoW { return f.create() }

type orderFactory struct{ *uowFactory }

func (f orderFactory) Create() commands.OrderUoW { return f.create() }

type notificationFactory struct{ *uowFactory }

func (f notificationFactory) Create() commands.NotificationUoW { return f.create() }

type MockBroadcaster struct{ mock.Mock }

func (m *MockBroadcaster) Broadcast(ctx context.Context, payload []byte) (int, error) {
	args := m.Called(ctx, payload)
	return args.Int(0), args.Error(1)
}
