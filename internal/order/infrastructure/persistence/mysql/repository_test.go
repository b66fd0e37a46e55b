package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lumacart/storefront/internal/order/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		OrderNumber:   "ORD-20260828-ABCDEF01",
		CustomerName:  "Maria Silva",
		Subtotal:      decimal.RequireFromString("100.00"),
		ShippingCost:  decimal.RequireFromString("10.00"),
		Total:         decimal.RequireFromString("110.00"),
		PaymentMethod: domain.PaymentPix,
		PaymentStatus: domain.PaymentPending,
		OrderStatus:   domain.StatusPending,
	}
}

func sampleItems() []domain.OrderItem {
	return []domain.OrderItem{
		{
			ProductID:   1,
			ProductName: "Fone de Ouvido",
			Quantity:    2,
			UnitPrice:   decimal.RequireFromString("50.00"),
			TotalPrice:  decimal.RequireFromString("100.00"),
		},
	}
}

func TestCreateCommitsHeaderAndItemsTogether(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewOrderRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `order_items`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	order := sampleOrder()
	items := sampleItems()
	require.NoError(t, repo.Create(context.Background(), order, items))
	assert.Equal(t, uint(7), order.ID)
	assert.Equal(t, uint(7), items[0].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRollsBackWhenItemInsertFails(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewOrderRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectExec("INSERT INTO `order_items`").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), sampleOrder(), sampleItems())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSkipsItemInsertWhenEmpty(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewOrderRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), sampleOrder(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderListSearchSpansCustomerFields(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewOrderRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `orders` WHERE \\(order_number LIKE .+ OR customer_name LIKE .+ OR customer_email LIKE .+\\) ORDER BY created_at DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "customer_name", "subtotal", "total"}))

	_, err := repo.List(context.Background(), domain.OrderListOptions{Search: "maria"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderListComposesStatusFilters(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewOrderRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `orders` WHERE order_status = .+ AND payment_status = .+ ORDER BY created_at DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number"}))

	_, err := repo.List(context.Background(), domain.OrderListOptions{
		Status:        domain.StatusShipped,
		PaymentStatus: domain.PaymentPaid,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaidRevenueSumsOnlySettledPayments(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewOrderRepository(gdb)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total\\), 0\\) FROM `orders` WHERE payment_status = .+").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("1234.56"))

	revenue, err := repo.PaidRevenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1234.56", revenue.String())
}

func TestCartListFiltersRecovered(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCartRepository(gdb)

	recovered := false
	mock.ExpectQuery("SELECT \\* FROM `abandoned_carts` WHERE is_recovered = .+ ORDER BY created_at DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_email", "total_value", "is_recovered"}).
			AddRow(1, "maria@example.com", "59.90", false))

	carts, err := repo.List(context.Background(), domain.CartListOptions{IsRecovered: &recovered})
	require.NoError(t, err)
	require.Len(t, carts, 1)
	assert.False(t, carts[0].IsRecovered)
}

func TestCountUnrecovered(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCartRepository(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `abandoned_carts` WHERE is_recovered = .+").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	total, err := repo.CountUnrecovered(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}
