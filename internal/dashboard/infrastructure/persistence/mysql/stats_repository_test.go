package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
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

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestCollectAggregatesAllTables(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewStatsRepository(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `orders`").WillReturnRows(countRows(12))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `products`").WillReturnRows(countRows(40))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `categories`").WillReturnRows(countRows(6))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").WillReturnRows(countRows(200))
	// Revenue sums paid orders only.
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total\\), 0\\) FROM `orders` WHERE payment_status = .+").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("999.90"))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `abandoned_carts` WHERE is_recovered = .+").
		WillReturnRows(countRows(3))

	stats, err := repo.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalOrders)
	assert.Equal(t, int64(40), stats.TotalProducts)
	assert.Equal(t, int64(6), stats.TotalCategories)
	assert.Equal(t, int64(200), stats.TotalUsers)
	assert.Equal(t, "999.9", stats.TotalRevenue.String())
	assert.Equal(t, int64(3), stats.AbandonedCarts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectZeroRevenueWhenNoPaidOrders(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewStatsRepository(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `orders`").WillReturnRows(countRows(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `products`").WillReturnRows(countRows(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `categories`").WillReturnRows(countRows(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").WillReturnRows(countRows(0))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total\\), 0\\) FROM `orders` WHERE payment_status = .+").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `abandoned_carts` WHERE is_recovered = .+").
		WillReturnRows(countRows(0))

	stats, err := repo.Collect(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.TotalRevenue.IsZero())
}
