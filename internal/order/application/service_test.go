package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumacart/storefront/internal/order/domain"
	"github.com/lumacart/storefront/internal/rpc"
)

type fakeOrderRepo struct {
	created      *domain.Order
	createdItems []domain.OrderItem
	createErr    error
	orders       map[uint]*domain.Order
	listErr      error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uint]*domain.Order{}}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *domain.Order, items []domain.OrderItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	o.ID = 1
	r.created = o
	r.createdItems = items
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, opts domain.OrderListOptions) ([]domain.Order, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) ItemsByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	return r.createdItems, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, id uint, u domain.OrderUpdate) error {
	return nil
}

func (r *fakeOrderRepo) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (r *fakeOrderRepo) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakeCartRepo struct {
	carts   map[uint]*domain.AbandonedCart
	updates []domain.CartUpdate
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[uint]*domain.AbandonedCart{}}
}

func (r *fakeCartRepo) List(ctx context.Context, opts domain.CartListOptions) ([]domain.AbandonedCart, error) {
	return nil, nil
}

func (r *fakeCartRepo) GetByID(ctx context.Context, id uint) (*domain.AbandonedCart, error) {
	return r.carts[id], nil
}

func (r *fakeCartRepo) Create(ctx context.Context, c *domain.AbandonedCart) error {
	c.ID = uint(len(r.carts) + 1)
	r.carts[c.ID] = c
	return nil
}

func (r *fakeCartRepo) Update(ctx context.Context, id uint, u domain.CartUpdate) error {
	r.updates = append(r.updates, u)
	return nil
}

func (r *fakeCartRepo) CountUnrecovered(ctx context.Context) (int64, error) { return 0, nil }

type capturedEvent struct {
	topic string
	key   string
	value any
}

type fakePublisher struct {
	events []capturedEvent
	err    error
}

func (p *fakePublisher) Send(ctx context.Context, topic, key string, value any) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, capturedEvent{topic: topic, key: key, value: value})
	return nil
}

func validOrder() *domain.Order {
	return &domain.Order{
		CustomerName:  "Maria Silva",
		Subtotal:      decimal.RequireFromString("100.00"),
		ShippingCost:  decimal.RequireFromString("15.00"),
		Discount:      decimal.RequireFromString("5.00"),
		Tax:           decimal.RequireFromString("2.00"),
		Total:         decimal.RequireFromString("112.00"),
		PaymentMethod: domain.PaymentPix,
	}
}

func validItems() []domain.OrderItem {
	return []domain.OrderItem{
		{ProductID: 1, ProductName: "Fone", Quantity: 2, UnitPrice: decimal.RequireFromString("50.00")},
	}
}

func TestCreateOrderHappyPath(t *testing.T) {
	orders := newFakeOrderRepo()
	pub := &fakePublisher{}
	svc := NewService(orders, newFakeCartRepo(), pub, nil)

	order, err := svc.CreateOrder(context.Background(), validOrder(), validItems())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
	assert.Equal(t, domain.StatusPending, order.OrderStatus)
	assert.Equal(t, "100", orders.createdItems[0].TotalPrice.String())

	require.Len(t, pub.events, 1)
	assert.Equal(t, TopicOrderCreated, pub.events[0].topic)
	assert.Equal(t, order.OrderNumber, pub.events[0].key)
}

func TestCreateOrderRejectsTotalMismatch(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeCartRepo(), nil, nil)

	order := validOrder()
	order.Total = decimal.RequireFromString("999.99")
	_, err := svc.CreateOrder(context.Background(), order, validItems())
	require.Error(t, err)
	assert.Equal(t, rpc.CodeBadRequest, rpc.AsError(err).Code)
}

func TestCreateOrderAcceptsEmptyItems(t *testing.T) {
	// A header-only order is valid; no item rows are written.
	orders := newFakeOrderRepo()
	svc := NewService(orders, newFakeCartRepo(), nil, nil)

	order, err := svc.CreateOrder(context.Background(), validOrder(), nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Empty(t, orders.createdItems)
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeCartRepo(), nil, nil)

	items := validItems()
	items[0].Quantity = 0
	_, err := svc.CreateOrder(context.Background(), validOrder(), items)
	require.Error(t, err)
	assert.Equal(t, rpc.CodeBadRequest, rpc.AsError(err).Code)
}

func TestCreateOrderSucceedsWhenPublisherFails(t *testing.T) {
	// The write already committed; a broker outage must not fail the call.
	svc := NewService(newFakeOrderRepo(), newFakeCartRepo(), &fakePublisher{err: errors.New("broker down")}, nil)

	_, err := svc.CreateOrder(context.Background(), validOrder(), validItems())
	assert.NoError(t, err)
}

func TestListOrdersDegradesOnStoreError(t *testing.T) {
	orders := newFakeOrderRepo()
	orders.listErr = errors.New("connection refused")
	svc := NewService(orders, newFakeCartRepo(), nil, nil)

	result := svc.ListOrders(context.Background(), domain.OrderListOptions{})
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestUpdateOrderStatusMissingIsNotFound(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeCartRepo(), nil, nil)

	err := svc.UpdateOrderStatus(context.Background(), 404, domain.OrderUpdate{})
	require.Error(t, err)
	assert.Equal(t, rpc.CodeNotFound, rpc.AsError(err).Code)
}

func TestMarkCartRecovered(t *testing.T) {
	carts := newFakeCartRepo()
	carts.carts[1] = &domain.AbandonedCart{ID: 1, CustomerEmail: "maria@example.com"}
	svc := NewService(newFakeOrderRepo(), carts, nil, nil)

	orderID := uint(33)
	require.NoError(t, svc.MarkCartRecovered(context.Background(), 1, &orderID))

	require.Len(t, carts.updates, 1)
	require.NotNil(t, carts.updates[0].IsRecovered)
	assert.True(t, *carts.updates[0].IsRecovered)
	assert.Equal(t, orderID, *carts.updates[0].RecoveredOrderID)
}

func TestMarkCartRecoveredMissingIsNotFound(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeCartRepo(), nil, nil)

	err := svc.MarkCartRecovered(context.Background(), 404, nil)
	require.Error(t, err)
	assert.Equal(t, rpc.CodeNotFound, rpc.AsError(err).Code)
}

func TestRequestRecoveryEmailMarksAndPublishes(t *testing.T) {
	carts := newFakeCartRepo()
	carts.carts[2] = &domain.AbandonedCart{ID: 2, CustomerEmail: "joao@example.com"}
	pub := &fakePublisher{}
	svc := NewService(newFakeOrderRepo(), carts, pub, nil)

	require.NoError(t, svc.RequestRecoveryEmail(context.Background(), 2))

	require.Len(t, carts.updates, 1)
	require.NotNil(t, carts.updates[0].RecoveryEmailSent)
	assert.True(t, *carts.updates[0].RecoveryEmailSent)
	assert.WithinDuration(t, time.Now(), *carts.updates[0].RecoveryEmailSentAt, time.Minute)

	require.Len(t, pub.events, 1)
	assert.Equal(t, TopicCartRecoveryEmail, pub.events[0].topic)
}

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	number := NewOrderNumber(now)
	assert.True(t, strings.HasPrefix(number, "ORD-20260828-"))
	assert.Len(t, number, len("ORD-20260828-")+8)
	assert.NotEqual(t, number, NewOrderNumber(now))
}
