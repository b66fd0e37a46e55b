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

	"github.com/lumacart/storefront/internal/settings/domain"
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

func TestSettingUpsertUsesOnDuplicateKey(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewSettingRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `store_settings` .*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Upsert(context.Background(), domain.UpsertSetting{
		Key:      "store_name",
		Value:    "LumaCart",
		Type:     domain.SettingString,
		Category: "general",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingGetMissingReturnsNil(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewSettingRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `store_settings` WHERE `key` = .+").
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value"}))

	setting, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, setting)
}

func TestSettingListFiltersByCategory(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewSettingRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `store_settings` WHERE category = .+").
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value", "category"}).
			AddRow(1, "store_name", "LumaCart", "general"))

	settings, err := repo.List(context.Background(), "general")
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "store_name", settings[0].Key)
}

func TestCardSetDefaultClearsOthersFirst(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCardRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `payment_cards` SET .*`is_default`.* WHERE user_id = .+").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE `payment_cards` SET .*`is_default`.* WHERE id = .+ AND user_id = .+").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetDefault(context.Background(), 3, 12)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardDeleteIsScopedToOwner(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCardRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `payment_cards` WHERE id = .+ AND user_id = .+").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 3, 12)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScriptListOrdersHeaderFirst(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewScriptRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `custom_scripts` ORDER BY position ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "position", "content"}).
			AddRow(1, "GA", "header", "<script></script>").
			AddRow(2, "Chat", "footer", "<script></script>"))

	scripts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, scripts, 2)
	assert.Equal(t, domain.ScriptHeader, scripts[0].Position)
}
