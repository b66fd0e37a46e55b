package rpc

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lumacart/storefront/internal/order/application"
	"github.com/lumacart/storefront/internal/order/domain"
	"github.com/lumacart/storefront/internal/rpc"
)

type idInput struct {
	ID uint `json:"id" validate:"required"`
}

type listOrdersInput struct {
	Search        string `json:"search"`
	Status        string `json:"status" validate:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	PaymentStatus string `json:"paymentStatus" validate:"omitempty,oneof=pending paid failed refunded"`
	Limit         int    `json:"limit" validate:"omitempty,min=1,max=500"`
	Offset        int    `json:"offset" validate:"omitempty,min=0"`
}

type orderItemInput struct {
	ProductID    uint                `json:"productId" validate:"required"`
	ProductName  string              `json:"productName" validate:"required"`
	ProductImage string              `json:"productImage"`
	Variant      *domain.ItemVariant `json:"variant"`
	Quantity     int                 `json:"quantity" validate:"required,min=1"`
	UnitPrice    decimal.Decimal     `json:"unitPrice" validate:"required"`
}

type createOrderInput struct {
	CustomerName    string           `json:"customerName" validate:"required"`
	CustomerEmail   string           `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone   string           `json:"customerPhone"`
	ShippingAddress *domain.Address  `json:"shippingAddress"`
	BillingAddress  *domain.Address  `json:"billingAddress"`
	Subtotal        decimal.Decimal  `json:"subtotal" validate:"required"`
	ShippingCost    decimal.Decimal  `json:"shippingCost"`
	Discount        decimal.Decimal  `json:"discount"`
	Tax             decimal.Decimal  `json:"tax"`
	Total           decimal.Decimal  `json:"total" validate:"required"`
	PaymentMethod   string           `json:"paymentMethod" validate:"required,oneof=credit_card debit_card pix boleto"`
	ShippingMethod  string           `json:"shippingMethod"`
	Notes           string           `json:"notes"`
	Items           []orderItemInput `json:"items" validate:"omitempty,dive"`
}

type updateOrderStatusInput struct {
	ID            uint    `json:"id" validate:"required"`
	OrderStatus   *string `json:"orderStatus" validate:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	PaymentStatus *string `json:"paymentStatus" validate:"omitempty,oneof=pending paid failed refunded"`
	TrackingCode  *string `json:"trackingCode"`
	Notes         *string `json:"notes"`
}

type listCartsInput struct {
	Search      string `json:"search"`
	IsRecovered *bool  `json:"isRecovered"`
	Limit       int    `json:"limit" validate:"omitempty,min=1,max=500"`
}

type createCartInput struct {
	SessionID     string              `json:"sessionId"`
	UserID        *uint               `json:"userId"`
	CustomerEmail string              `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone string              `json:"customerPhone"`
	Items         domain.CartItemList `json:"items" validate:"required,min=1"`
	TotalValue    decimal.Decimal     `json:"totalValue" validate:"required"`
}

type markRecoveredInput struct {
	ID               uint  `json:"id" validate:"required"`
	RecoveredOrderID *uint `json:"recoveredOrderId"`
}

// Register mounts the orders and abandonedCarts namespaces.
func Register(r *rpc.Router, svc *application.Service) {
	r.Namespace("orders",
		rpc.Query("list", rpc.Admin, func(ctx context.Context, call *rpc.Call, in listOrdersInput) ([]domain.Order, error) {
			return svc.ListOrders(ctx, domain.OrderListOptions{
				Search:        in.Search,
				Status:        domain.Status(in.Status),
				PaymentStatus: domain.PaymentStatus(in.PaymentStatus),
				Limit:         in.Limit,
				Offset:        in.Offset,
			}), nil
		}),
		rpc.Query("getById", rpc.Admin, func(ctx context.Context, call *rpc.Call, in idInput) (*application.OrderDetail, error) {
			return svc.GetOrder(ctx, in.ID)
		}),
		rpc.Mutation("create", rpc.Public, func(ctx context.Context, call *rpc.Call, in createOrderInput) (*domain.Order, error) {
			order := &domain.Order{
				CustomerName:    in.CustomerName,
				CustomerEmail:   in.CustomerEmail,
				CustomerPhone:   in.CustomerPhone,
				ShippingAddress: in.ShippingAddress,
				BillingAddress:  in.BillingAddress,
				Subtotal:        in.Subtotal,
				ShippingCost:    in.ShippingCost,
				Discount:        in.Discount,
				Tax:             in.Tax,
				Total:           in.Total,
				PaymentMethod:   domain.PaymentMethod(in.PaymentMethod),
				ShippingMethod:  in.ShippingMethod,
				Notes:           in.Notes,
			}
			if call.Identity != nil {
				order.UserID = &call.Identity.ID
			}
			items := make([]domain.OrderItem, 0, len(in.Items))
			for _, it := range in.Items {
				items = append(items, domain.OrderItem{
					ProductID:    it.ProductID,
					ProductName:  it.ProductName,
					ProductImage: it.ProductImage,
					Variant:      it.Variant,
					Quantity:     it.Quantity,
					UnitPrice:    it.UnitPrice,
				})
			}
			return svc.CreateOrder(ctx, order, items)
		}),
		rpc.Mutation("updateStatus", rpc.Admin, func(ctx context.Context, call *rpc.Call, in updateOrderStatusInput) (bool, error) {
			update := domain.OrderUpdate{
				TrackingCode: in.TrackingCode,
				Notes:        in.Notes,
			}
			if in.OrderStatus != nil {
				status := domain.Status(*in.OrderStatus)
				update.OrderStatus = &status
			}
			if in.PaymentStatus != nil {
				status := domain.PaymentStatus(*in.PaymentStatus)
				update.PaymentStatus = &status
			}
			if err := svc.UpdateOrderStatus(ctx, in.ID, update); err != nil {
				return false, err
			}
			return true, nil
		}),
	)

	r.Namespace("abandonedCarts",
		rpc.Query("list", rpc.Admin, func(ctx context.Context, call *rpc.Call, in listCartsInput) ([]domain.AbandonedCart, error) {
			return svc.ListCarts(ctx, domain.CartListOptions{
				Search:      in.Search,
				IsRecovered: in.IsRecovered,
				Limit:       in.Limit,
			}), nil
		}),
		rpc.Mutation("create", rpc.Public, func(ctx context.Context, call *rpc.Call, in createCartInput) (*domain.AbandonedCart, error) {
			cart := &domain.AbandonedCart{
				SessionID:     in.SessionID,
				UserID:        in.UserID,
				CustomerEmail: in.CustomerEmail,
				CustomerPhone: in.CustomerPhone,
				Items:         in.Items,
				TotalValue:    in.TotalValue,
			}
			if cart.UserID == nil && call.Identity != nil {
				cart.UserID = &call.Identity.ID
			}
			return svc.RecordCart(ctx, cart)
		}),
		rpc.Mutation("markRecovered", rpc.Admin, func(ctx context.Context, call *rpc.Call, in markRecoveredInput) (bool, error) {
			if err := svc.MarkCartRecovered(ctx, in.ID, in.RecoveredOrderID); err != nil {
				return false, err
			}
			return true, nil
		}),
		rpc.Mutation("sendRecoveryEmail", rpc.Admin, func(ctx context.Context, call *rpc.Call, in idInput) (bool, error) {
			if err := svc.RequestRecoveryEmail(ctx, in.ID); err != nil {
				return false, err
			}
			return true, nil
		}),
	)
}
