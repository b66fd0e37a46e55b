package application

import (
	"context"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/lumacart/storefront/internal/catalog/domain"
	orderdomain "github.com/lumacart/storefront/internal/order/domain"
	"github.com/lumacart/storefront/internal/rpc"
	"github.com/lumacart/storefront/pkg/logger"
)

// Stats is the admin landing page summary. Revenue counts paid orders only;
// abandoned carts counts unrecovered ones only.
type Stats struct {
	TotalOrders     int64           `json:"totalOrders"`
	TotalProducts   int64           `json:"totalProducts"`
	TotalCategories int64           `json:"totalCategories"`
	TotalUsers      int64           `json:"totalUsers"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	AbandonedCarts  int64           `json:"abandonedCarts"`
}

// StatsRepository collects the cross-table aggregates in one place.
type StatsRepository interface {
	Collect(ctx context.Context) (*Stats, error)
}

// Service serves the admin dashboard reads.
type Service struct {
	stats    StatsRepository
	orders   orderdomain.OrderRepository
	products catalogdomain.ProductRepository
}

// NewService wires the dashboard service.
func NewService(stats StatsRepository, orders orderdomain.OrderRepository, products catalogdomain.ProductRepository) *Service {
	return &Service{stats: stats, orders: orders, products: products}
}

// Stats returns the aggregate summary.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.stats.Collect(ctx)
	if err != nil {
		return nil, rpc.Internal(err)
	}
	return stats, nil
}

// RecentOrders returns the newest orders, degrading to empty on store errors.
func (s *Service) RecentOrders(ctx context.Context, limit int) []orderdomain.Order {
	if limit <= 0 {
		limit = 5
	}
	orders, err := s.orders.Recent(ctx, limit)
	if err != nil {
		logger.Error(ctx, "recent order listing failed", "error", err)
		return []orderdomain.Order{}
	}
	if orders == nil {
		orders = []orderdomain.Order{}
	}
	return orders
}

// TopProducts returns the best sellers, degrading to empty on store errors.
func (s *Service) TopProducts(ctx context.Context, limit int) []catalogdomain.Product {
	if limit <= 0 {
		limit = 5
	}
	products, err := s.products.Top(ctx, limit)
	if err != nil {
		logger.Error(ctx, "top product listing failed", "error", err)
		return []catalogdomain.Product{}
	}
	if products == nil {
		products = []catalogdomain.Product{}
	}
	return products
}
