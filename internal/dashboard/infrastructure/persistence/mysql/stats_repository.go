package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lumacart/storefront/internal/dashboard/application"
	orderdomain "github.com/lumacart/storefront/internal/order/domain"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository builds the cross-table aggregate reader.
func NewStatsRepository(db *gorm.DB) application.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Collect(ctx context.Context) (*application.Stats, error) {
	stats := &application.Stats{TotalRevenue: decimal.Zero}
	db := r.db.WithContext(ctx)

	counts := []struct {
		table string
		dest  *int64
	}{
		{"orders", &stats.TotalOrders},
		{"products", &stats.TotalProducts},
		{"categories", &stats.TotalCategories},
		{"users", &stats.TotalUsers},
	}
	for _, c := range counts {
		if err := db.Table(c.table).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	var revenue decimal.NullDecimal
	err := db.Table("orders").
		Select("COALESCE(SUM(total), 0)").
		Where("payment_status = ?", orderdomain.PaymentPaid).
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue.Valid {
		stats.TotalRevenue = revenue.Decimal
	}

	err = db.Table("abandoned_carts").
		Where("is_recovered = ?", false).
		Count(&stats.AbandonedCarts).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
