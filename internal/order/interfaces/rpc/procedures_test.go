package rpc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumacart/storefront/internal/order/application"
	"github.com/lumacart/storefront/internal/order/domain"
	"github.com/lumacart/storefront/internal/rpc"
)

type stubOrderRepo struct {
	created      *domain.Order
	createdItems []domain.OrderItem
}

func (r *stubOrderRepo) Create(ctx context.Context, o *domain.Order, items []domain.OrderItem) error {
	o.ID = 1
	r.created = o
	r.createdItems = items
	return nil
}

func (r *stubOrderRepo) List(ctx context.Context, opts domain.OrderListOptions) ([]domain.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) ItemsByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	return nil, nil
}

func (r *stubOrderRepo) Update(ctx context.Context, id uint, u domain.OrderUpdate) error {
	return nil
}

func (r *stubOrderRepo) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (r *stubOrderRepo) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubCartRepo struct{}

func (r *stubCartRepo) List(ctx context.Context, opts domain.CartListOptions) ([]domain.AbandonedCart, error) {
	return nil, nil
}

func (r *stubCartRepo) GetByID(ctx context.Context, id uint) (*domain.AbandonedCart, error) {
	return nil, nil
}

func (r *stubCartRepo) Create(ctx context.Context, c *domain.AbandonedCart) error { return nil }

func (r *stubCartRepo) Update(ctx context.Context, id uint, u domain.CartUpdate) error { return nil }

func (r *stubCartRepo) CountUnrecovered(ctx context.Context) (int64, error) { return 0, nil }

func newOrderEngine(orders *stubOrderRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := application.NewService(orders, &stubCartRepo{}, nil, nil)
	r := rpc.NewRouter()
	Register(r, svc)

	e := gin.New()
	r.Mount(e)
	return e
}

func postJSON(e *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(w, req)
	return w
}

func TestCreateOrderWithoutItems(t *testing.T) {
	// A header-only order passes input validation and is stored without
	// item rows.
	orders := &stubOrderRepo{}
	e := newOrderEngine(orders)

	w := postJSON(e, "/api/rpc/orders.create", `{
		"customerName": "Maria Silva",
		"subtotal": "100.00",
		"total": "100.00",
		"paymentMethod": "pix",
		"items": []
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NotNil(t, orders.created)
	assert.True(t, strings.HasPrefix(orders.created.OrderNumber, "ORD-"))
	assert.Empty(t, orders.createdItems)
}

func TestCreateOrderTotalMismatchIsBadRequest(t *testing.T) {
	e := newOrderEngine(&stubOrderRepo{})

	w := postJSON(e, "/api/rpc/orders.create", `{
		"customerName": "Maria Silva",
		"subtotal": "100.00",
		"total": "999.99",
		"paymentMethod": "pix",
		"items": [{"productId": 1, "productName": "Fone", "quantity": 1, "unitPrice": "100.00"}]
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
