package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lumacart/storefront/internal/order/domain"
	"github.com/lumacart/storefront/internal/rpc"
	"github.com/lumacart/storefront/pkg/db"
	"github.com/lumacart/storefront/pkg/logger"
	"github.com/lumacart/storefront/pkg/metrics"
)

// Topics the order flow publishes to.
const (
	TopicOrderCreated      = "storefront.order.created"
	TopicOrderStatusMoved  = "storefront.order.status_updated"
	TopicCartRecoveryEmail = "storefront.cart.recovery_requested"
)

// EventPublisher is the slice of the message producer the order flow needs.
// A nil publisher disables events without branching at every call site.
type EventPublisher interface {
	Send(ctx context.Context, topic, key string, value any) error
}

// Service owns the order lifecycle and abandoned cart recovery.
type Service struct {
	orders  domain.OrderRepository
	carts   domain.CartRepository
	events  EventPublisher
	metrics *metrics.Metrics
}

// NewService wires the order service. events and m may be nil.
func NewService(orders domain.OrderRepository, carts domain.CartRepository, events EventPublisher, m *metrics.Metrics) *Service {
	return &Service{orders: orders, carts: carts, events: events, metrics: m}
}

// CreateOrder validates the arithmetic, stamps an order number and writes the
// header and items atomically. An empty item batch is valid; only the header
// is written.
func (s *Service) CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	for i := range items {
		if items[i].Quantity <= 0 {
			return nil, rpc.BadRequest("item quantity must be positive", nil)
		}
		items[i].TotalPrice = items[i].UnitPrice.Mul(decimalFromInt(items[i].Quantity))
	}
	if !order.Total.Equal(order.ExpectedTotal()) {
		return nil, rpc.BadRequest(
			fmt.Sprintf("total %s does not match subtotal + shipping + tax - discount = %s",
				order.Total, order.ExpectedTotal()),
			nil,
		)
	}

	if order.OrderNumber == "" {
		order.OrderNumber = NewOrderNumber(time.Now())
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = domain.PaymentPending
	}
	if order.OrderStatus == "" {
		order.OrderStatus = domain.StatusPending
	}

	if err := s.orders.Create(ctx, order, items); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, rpc.Conflict("order number already exists", err)
		}
		if db.IsForeignKeyViolation(err) {
			return nil, rpc.Conflict("order references an unknown product", err)
		}
		return nil, rpc.Internal(err)
	}

	if s.metrics != nil {
		s.metrics.OrdersCreatedTotal.Inc()
	}
	s.publish(ctx, TopicOrderCreated, order.OrderNumber, order)
	logger.Info(ctx, "order created", "orderNumber", order.OrderNumber, "total", order.Total)
	return order, nil
}

// ListOrders returns orders newest first, degrading to empty on store errors.
func (s *Service) ListOrders(ctx context.Context, opts domain.OrderListOptions) []domain.Order {
	orders, err := s.orders.List(ctx, opts)
	if err != nil {
		logger.Error(ctx, "order listing failed", "error", err)
		return []domain.Order{}
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders
}

// OrderDetail is an order header with its lines.
type OrderDetail struct {
	Order *domain.Order      `json:"order"`
	Items []domain.OrderItem `json:"items"`
}

// GetOrder returns an order with its items.
func (s *Service) GetOrder(ctx context.Context, id uint) (*OrderDetail, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, rpc.Internal(err)
	}
	if order == nil {
		return nil, rpc.NotFound("order not found")
	}
	items, err := s.orders.ItemsByOrderID(ctx, id)
	if err != nil {
		return nil, rpc.Internal(err)
	}
	if items == nil {
		items = []domain.OrderItem{}
	}
	return &OrderDetail{Order: order, Items: items}, nil
}

// UpdateOrderStatus applies fulfilment and payment transitions.
func (s *Service) UpdateOrderStatus(ctx context.Context, id uint, u domain.OrderUpdate) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return rpc.Internal(err)
	}
	if order == nil {
		return rpc.NotFound("order not found")
	}
	if err := s.orders.Update(ctx, id, u); err != nil {
		return rpc.Internal(err)
	}
	s.publish(ctx, TopicOrderStatusMoved, order.OrderNumber, map[string]any{
		"orderId":       id,
		"orderNumber":   order.OrderNumber,
		"orderStatus":   u.OrderStatus,
		"paymentStatus": u.PaymentStatus,
	})
	return nil
}

// ListCarts returns abandoned carts, degrading to empty on store errors.
func (s *Service) ListCarts(ctx context.Context, opts domain.CartListOptions) []domain.AbandonedCart {
	carts, err := s.carts.List(ctx, opts)
	if err != nil {
		logger.Error(ctx, "abandoned cart listing failed", "error", err)
		return []domain.AbandonedCart{}
	}
	if carts == nil {
		carts = []domain.AbandonedCart{}
	}
	return carts
}

// RecordCart snapshots a stalled checkout.
func (s *Service) RecordCart(ctx context.Context, cart *domain.AbandonedCart) (*domain.AbandonedCart, error) {
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, rpc.Internal(err)
	}
	return cart, nil
}

// MarkCartRecovered flags a cart as converted, optionally linking the order
// that recovered it.
func (s *Service) MarkCartRecovered(ctx context.Context, id uint, recoveredOrderID *uint) error {
	cart, err := s.carts.GetByID(ctx, id)
	if err != nil {
		return rpc.Internal(err)
	}
	if cart == nil {
		return rpc.NotFound("abandoned cart not found")
	}

	recovered := true
	if err := s.carts.Update(ctx, id, domain.CartUpdate{
		IsRecovered:      &recovered,
		RecoveredOrderID: recoveredOrderID,
	}); err != nil {
		return rpc.Internal(err)
	}
	if s.metrics != nil {
		s.metrics.CartsRecoveredTotal.Inc()
	}
	return nil
}

// RequestRecoveryEmail marks the cart as contacted and hands the send off to
// the mail worker via the broker.
func (s *Service) RequestRecoveryEmail(ctx context.Context, id uint) error {
	cart, err := s.carts.GetByID(ctx, id)
	if err != nil {
		return rpc.Internal(err)
	}
	if cart == nil {
		return rpc.NotFound("abandoned cart not found")
	}

	sent := true
	now := time.Now()
	if err := s.carts.Update(ctx, id, domain.CartUpdate{
		RecoveryEmailSent:   &sent,
		RecoveryEmailSentAt: &now,
	}); err != nil {
		return rpc.Internal(err)
	}
	s.publish(ctx, TopicCartRecoveryEmail, fmt.Sprintf("cart-%d", id), map[string]any{
		"cartId":        id,
		"customerEmail": cart.CustomerEmail,
		"totalValue":    cart.TotalValue,
		"items":         cart.Items,
	})
	return nil
}

// NewOrderNumber builds a human-quotable unique order number.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

func (s *Service) publish(ctx context.Context, topic, key string, value any) {
	if s.events == nil {
		return
	}
	if err := s.events.Send(ctx, topic, key, value); err != nil {
		// Events are best-effort; the write already committed.
		logger.Warn(ctx, "event publish failed", "topic", topic, "error", err)
	}
}
