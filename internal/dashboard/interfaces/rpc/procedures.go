package rpc

import (
	"context"

	catalogdomain "github.com/lumacart/storefront/internal/catalog/domain"
	"github.com/lumacart/storefront/internal/dashboard/application"
	orderdomain "github.com/lumacart/storefront/internal/order/domain"
	"github.com/lumacart/storefront/internal/rpc"
)

type emptyInput struct{}

type limitInput struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=100"`
}

// Register mounts the dashboard namespace.
func Register(r *rpc.Router, svc *application.Service) {
	r.Namespace("dashboard",
		rpc.Query("stats", rpc.Admin, func(ctx context.Context, call *rpc.Call, _ emptyInput) (*application.Stats, error) {
			return svc.Stats(ctx)
		}),
		rpc.Query("recentOrders", rpc.Admin, func(ctx context.Context, call *rpc.Call, in limitInput) ([]orderdomain.Order, error) {
			return svc.RecentOrders(ctx, in.Limit), nil
		}),
		rpc.Query("topProducts", rpc.Admin, func(ctx context.Context, call *rpc.Call, in limitInput) ([]catalogdomain.Product, error) {
			return svc.TopProducts(ctx, in.Limit), nil
		}),
	)
}
