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

	"github.com/lumacart/storefront/internal/promo/domain"
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

func TestShippingRulesListByNameAscending(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewShippingRuleRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `shipping_rules` ORDER BY name ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "price", "is_active"}).
			AddRow(2, "Expresso", "fixed", "25.00", true).
			AddRow(1, "PAC", "weight_based", "12.50", true))

	rules, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Expresso", rules[0].Name)
	assert.Equal(t, domain.ShippingFixed, rules[0].Type)
}

func TestFeesListByNameAscending(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewFeeRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `fees` ORDER BY name ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "value", "applies_to"}).
			AddRow(1, "Taxa cartão", "percentage", "3.4999", "credit_card"))

	fees, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, fees, 1)
	// Four decimal places survive the round trip.
	assert.Equal(t, "3.4999", fees[0].Value.String())
}

func TestOrderBumpsListNewestFirst(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewOrderBumpRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `order_bumps` ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "product_id", "discount_type", "discount_value"}))

	_, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGiftUpdateOnlyTouchesGivenFields(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGiftRepository(gdb)

	stock := 50
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `gifts` SET .*`stock`.* WHERE id = .+").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), 3, domain.GiftUpdate{Stock: &stock})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShippingRuleUpdateWithNoFieldsIsNoop(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewShippingRuleRepository(gdb)

	err := repo.Update(context.Background(), 1, domain.ShippingRuleUpdate{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
