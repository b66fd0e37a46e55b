package rpc

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumacart/storefront/internal/promo/application"
	"github.com/lumacart/storefront/internal/promo/domain"
	"github.com/lumacart/storefront/internal/rpc"
)

type idInput struct {
	ID uint `json:"id" validate:"required"`
}

type emptyInput struct{}

type createShippingRuleInput struct {
	Name          string            `json:"name" validate:"required"`
	Type          string            `json:"type" validate:"required,oneof=fixed weight_based price_based free"`
	MinOrderValue *decimal.Decimal  `json:"minOrderValue"`
	MaxOrderValue *decimal.Decimal  `json:"maxOrderValue"`
	MinWeight     *decimal.Decimal  `json:"minWeight"`
	MaxWeight     *decimal.Decimal  `json:"maxWeight"`
	Price         decimal.Decimal   `json:"price"`
	EstimatedDays int               `json:"estimatedDays"`
	Regions       domain.RegionList `json:"regions"`
	IsActive      *bool             `json:"isActive"`
}

type updateShippingRuleInput struct {
	ID            uint              `json:"id" validate:"required"`
	Name          *string           `json:"name"`
	Type          *string           `json:"type" validate:"omitempty,oneof=fixed weight_based price_based free"`
	MinOrderValue *decimal.Decimal  `json:"minOrderValue"`
	MaxOrderValue *decimal.Decimal  `json:"maxOrderValue"`
	MinWeight     *decimal.Decimal  `json:"minWeight"`
	MaxWeight     *decimal.Decimal  `json:"maxWeight"`
	Price         *decimal.Decimal  `json:"price"`
	EstimatedDays *int              `json:"estimatedDays"`
	Regions       domain.RegionList `json:"regions"`
	IsActive      *bool             `json:"isActive"`
}

type createFeeInput struct {
	Name      string          `json:"name" validate:"required"`
	Type      string          `json:"type" validate:"required,oneof=percentage fixed"`
	Value     decimal.Decimal `json:"value" validate:"required"`
	AppliesTo string          `json:"appliesTo" validate:"omitempty,oneof=all credit_card debit_card pix boleto"`
	IsActive  *bool           `json:"isActive"`
}

type updateFeeInput struct {
	ID        uint             `json:"id" validate:"required"`
	Name      *string          `json:"name"`
	Type      *string          `json:"type" validate:"omitempty,oneof=percentage fixed"`
	Value     *decimal.Decimal `json:"value"`
	AppliesTo *string          `json:"appliesTo" validate:"omitempty,oneof=all credit_card debit_card pix boleto"`
	IsActive  *bool            `json:"isActive"`
}

type createOrderBumpInput struct {
	Name              string               `json:"name" validate:"required"`
	Description       string               `json:"description"`
	ProductID         uint                 `json:"productId" validate:"required"`
	DiscountType      string               `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue     decimal.Decimal      `json:"discountValue" validate:"required"`
	TriggerProductIDs domain.ProductIDList `json:"triggerProductIds"`
	TriggerMinValue   *decimal.Decimal     `json:"triggerMinValue"`
	DisplayPosition   string               `json:"displayPosition" validate:"omitempty,oneof=before_checkout after_checkout cart_page"`
	IsActive          *bool                `json:"isActive"`
}

type updateOrderBumpInput struct {
	ID                uint                 `json:"id" validate:"required"`
	Name              *string              `json:"name"`
	Description       *string              `json:"description"`
	ProductID         *uint                `json:"productId"`
	DiscountType      *string              `json:"discountType" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue     *decimal.Decimal     `json:"discountValue"`
	TriggerProductIDs domain.ProductIDList `json:"triggerProductIds"`
	TriggerMinValue   *decimal.Decimal     `json:"triggerMinValue"`
	DisplayPosition   *string              `json:"displayPosition" validate:"omitempty,oneof=before_checkout after_checkout cart_page"`
	IsActive          *bool                `json:"isActive"`
}

type createGiftInput struct {
	Name          string           `json:"name" validate:"required"`
	Description   string           `json:"description"`
	ImageURL      string           `json:"imageUrl"`
	MinOrderValue decimal.Decimal  `json:"minOrderValue" validate:"required"`
	MaxOrderValue *decimal.Decimal `json:"maxOrderValue"`
	Stock         int              `json:"stock"`
	IsActive      *bool            `json:"isActive"`
	StartDate     *time.Time       `json:"startDate"`
	EndDate       *time.Time       `json:"endDate"`
}

type updateGiftInput struct {
	ID            uint             `json:"id" validate:"required"`
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	ImageURL      *string          `json:"imageUrl"`
	MinOrderValue *decimal.Decimal `json:"minOrderValue"`
	MaxOrderValue *decimal.Decimal `json:"maxOrderValue"`
	Stock         *int             `json:"stock"`
	IsActive      *bool            `json:"isActive"`
	StartDate     *time.Time       `json:"startDate"`
	EndDate       *time.Time       `json:"endDate"`
}

// Register mounts the shippingRules, fees, orderBumps and gifts namespaces.
// The whole surface is admin-only configuration.
func Register(r *rpc.Router, svc *application.Service) {
	r.Namespace("shippingRules",
		rpc.Query("list", rpc.Admin, func(ctx context.Context, call *rpc.Call, _ emptyInput) ([]domain.ShippingRule, error) {
			return svc.ListShippingRules(ctx), nil
		}),
		rpc.Mutation("create", rpc.Admin, func(ctx context.Context, call *rpc.Call, in createShippingRuleInput) (*domain.ShippingRule, error) {
			rule := &domain.ShippingRule{
				Name:          in.Name,
				Type:          domain.ShippingType(in.Type),
				MinOrderValue: in.MinOrderValue,
				MaxOrderValue: in.MaxOrderValue,
				MinWeight:     in.MinWeight,
				MaxWeight:     in.MaxWeight,
				Price:         in.Price,
				EstimatedDays: in.EstimatedDays,
				Regions:       in.Regions,
				IsActive:      in.IsActive == nil || *in.IsActive,
			}
			return svc.CreateShippingRule(ctx, rule)
		}),
		rpc.Mutation("update", rpc.Admin, func(ctx context.Context, call *rpc.Call, in updateShippingRuleInput) (bool, error) {
			update := domain.ShippingRuleUpdate{
				Name:          in.Name,
				MinOrderValue: in.MinOrderValue,
				MaxOrderValue: in.MaxOrderValue,
				MinWeight:     in.MinWeight,
				MaxWeight:     in.MaxWeight,
				Price:         in.Price,
				EstimatedDays: in.EstimatedDays,
				Regions:       in.Regions,
				IsActive:      in.IsActive,
			}
			if in.Type != nil {
				t := domain.ShippingType(*in.Type)
				update.Type = &t
			}
			if err := svc.UpdateShippingRule(ctx, in.ID, update); err != nil {
				return false, err
			}
			return true, nil
		}),
		rpc.Mutation("delete", rpc.Admin, func(ctx context.Context, call *rpc.Call, in idInput) (bool, error) {
			if err := svc.DeleteShippingRule(ctx, in.ID); err != nil {
				return false, err
			}
			return true, nil
		}),
	)

	r.Namespace("fees",
		rpc.Query("list", rpc.Admin, func(ctx context.Context, call *rpc.Call, _ emptyInput) ([]domain.Fee, error) {
			return svc.ListFees(ctx), nil
		}),
		rpc.Mutation("create", rpc.Admin, func(ctx context.Context, call *rpc.Call, in createFeeInput) (*domain.Fee, error) {
			scope := domain.FeeScope(in.AppliesTo)
			if scope == "" {
				scope = domain.FeeAll
			}
			fee := &domain.Fee{
				Name:      in.Name,
				Type:      domain.FeeType(in.Type),
				Value:     in.Value,
				AppliesTo: scope,
				IsActive:  in.IsActive == nil || *in.IsActive,
			}
			return svc.CreateFee(ctx, fee)
		}),
		rpc.Mutation("update", rpc.Admin, func(ctx context.Context, call *rpc.Call, in updateFeeInput) (bool, error) {
			update := domain.FeeUpdate{
				Name:     in.Name,
				Value:    in.Value,
				IsActive: in.IsActive,
			}
			if in.Type != nil {
				t := domain.FeeType(*in.Type)
				update.Type = &t
			}
			if in.AppliesTo != nil {
				scope := domain.FeeScope(*in.AppliesTo)
				update.AppliesTo = &scope
			}
			if err := svc.UpdateFee(ctx, in.ID, update); err != nil {
				return false, err
			}
			return true, nil
		}),
		rpc.Mutation("delete", rpc.Admin, func(ctx context.Context, call *rpc.Call, in idInput) (bool, error) {
			if err := svc.DeleteFee(ctx, in.ID); err != nil {
				return false, err
			}
			return true, nil
		}),
	)

	r.Namespace("orderBumps",
		rpc.Query("list", rpc.Admin, func(ctx context.Context, call *rpc.Call, _ emptyInput) ([]domain.OrderBump, error) {
			return svc.ListOrderBumps(ctx), nil
		}),
		rpc.Mutation("create", rpc.Admin, func(ctx context.Context, call *rpc.Call, in createOrderBumpInput) (*domain.OrderBump, error) {
			position := domain.DisplayPosition(in.DisplayPosition)
			if position == "" {
				position = domain.DisplayBeforeCheckout
			}
			bump := &domain.OrderBump{
				Name:              in.Name,
				Description:       in.Description,
				ProductID:         in.ProductID,
				DiscountType:      domain.DiscountType(in.DiscountType),
				DiscountValue:     in.DiscountValue,
				TriggerProductIDs: in.TriggerProductIDs,
				TriggerMinValue:   in.TriggerMinValue,
				DisplayPosition:   position,
				IsActive:          in.IsActive == nil || *in.IsActive,
			}
			return svc.CreateOrderBump(ctx, bump)
		}),
		rpc.Mutation("update", rpc.Admin, func(ctx context.Context, call *rpc.Call, in updateOrderBumpInput) (bool, error) {
			update := domain.OrderBumpUpdate{
				Name:              in.Name,
				Description:       in.Description,
				ProductID:         in.ProductID,
				DiscountValue:     in.DiscountValue,
				TriggerProductIDs: in.TriggerProductIDs,
				TriggerMinValue:   in.TriggerMinValue,
				IsActive:          in.IsActive,
			}
			if in.DiscountType != nil {
				t := domain.DiscountType(*in.DiscountType)
				update.DiscountType = &t
			}
			if in.DisplayPosition != nil {
				p := domain.DisplayPosition(*in.DisplayPosition)
				update.DisplayPosition = &p
			}
			if err := svc.UpdateOrderBump(ctx, in.ID, update); err != nil {
				return false, err
			}
			return true, nil
		}),
		rpc.Mutation("delete", rpc.Admin, func(ctx context.Context, call *rpc.Call, in idInput) (bool, error) {
			if err := svc.DeleteOrderBump(ctx, in.ID); err != nil {
				return false, err
			}
			return true, nil
		}),
	)

	r.Namespace("gifts",
		rpc.Query("list", rpc.Admin, func(ctx context.Context, call *rpc.Call, _ emptyInput) ([]domain.Gift, error) {
			return svc.ListGifts(ctx), nil
		}),
		rpc.Mutation("create", rpc.Admin, func(ctx context.Context, call *rpc.Call, in createGiftInput) (*domain.Gift, error) {
			gift := &domain.Gift{
				Name:          in.Name,
				Description:   in.Description,
				ImageURL:      in.ImageURL,
				MinOrderValue: in.MinOrderValue,
				MaxOrderValue: in.MaxOrderValue,
				Stock:         in.Stock,
				IsActive:      in.IsActive == nil || *in.IsActive,
				StartDate:     in.StartDate,
				EndDate:       in.EndDate,
			}
			return svc.CreateGift(ctx, gift)
		}),
		rpc.Mutation("update", rpc.Admin, func(ctx context.Context, call *rpc.Call, in updateGiftInput) (bool, error) {
			update := domain.GiftUpdate{
				Name:          in.Name,
				Description:   in.Description,
				ImageURL:      in.ImageURL,
				MinOrderValue: in.MinOrderValue,
				MaxOrderValue: in.MaxOrderValue,
				Stock:         in.Stock,
				IsActive:      in.IsActive,
				StartDate:     in.StartDate,
				EndDate:       in.EndDate,
			}
			if err := svc.UpdateGift(ctx, in.ID, update); err != nil {
				return false, err
			}
			return true, nil
		}),
		rpc.Mutation("delete", rpc.Admin, func(ctx context.Context, call *rpc.Call, in idInput) (bool, error) {
			if err := svc.DeleteGift(ctx, in.ID); err != nil {
				return false, err
			}
			return true, nil
		}),
	)
}
