package application

import (
	"context"

	"github.com/lumacart/storefront/internal/promo/domain"
	"github.com/lumacart/storefront/internal/rpc"
	"github.com/lumacart/storefront/pkg/db"
	"github.com/lumacart/storefront/pkg/logger"
)

// Service manages the checkout incentive configuration. All four entity
// families share the degrade-on-read, propagate-on-write policy.
type Service struct {
	shippingRules domain.ShippingRuleRepository
	fees          domain.FeeRepository
	bumps         domain.OrderBumpRepository
	gifts         domain.GiftRepository
}

// NewService wires the promo service.
func NewService(
	shippingRules domain.ShippingRuleRepository,
	fees domain.FeeRepository,
	bumps domain.OrderBumpRepository,
	gifts domain.GiftRepository,
) *Service {
	return &Service{shippingRules: shippingRules, fees: fees, bumps: bumps, gifts: gifts}
}

func (s *Service) ListShippingRules(ctx context.Context) []domain.ShippingRule {
	rules, err := s.shippingRules.List(ctx)
	if err != nil {
		logger.Error(ctx, "shipping rule listing failed", "error", err)
		return []domain.ShippingRule{}
	}
	if rules == nil {
		rules = []domain.ShippingRule{}
	}
	return rules
}

func (s *Service) CreateShippingRule(ctx context.Context, rule *domain.ShippingRule) (*domain.ShippingRule, error) {
	if err := s.shippingRules.Create(ctx, rule); err != nil {
		return nil, writeError(err)
	}
	return rule, nil
}

func (s *Service) UpdateShippingRule(ctx context.Context, id uint, u domain.ShippingRuleUpdate) error {
	if err := s.shippingRules.Update(ctx, id, u); err != nil {
		return writeError(err)
	}
	return nil
}

func (s *Service) DeleteShippingRule(ctx context.Context, id uint) error {
	if err := s.shippingRules.Delete(ctx, id); err != nil {
		return rpc.Internal(err)
	}
	return nil
}

func (s *Service) ListFees(ctx context.Context) []domain.Fee {
	fees, err := s.fees.List(ctx)
	if err != nil {
		logger.Error(ctx, "fee listing failed", "error", err)
		return []domain.Fee{}
	}
	if fees == nil {
		fees = []domain.Fee{}
	}
	return fees
}

func (s *Service) CreateFee(ctx context.Context, fee *domain.Fee) (*domain.Fee, error) {
	if err := s.fees.Create(ctx, fee); err != nil {
		return nil, writeError(err)
	}
	return fee, nil
}

func (s *Service) UpdateFee(ctx context.Context, id uint, u domain.FeeUpdate) error {
	if err := s.fees.Update(ctx, id, u); err != nil {
		return writeError(err)
	}
	return nil
}

func (s *Service) DeleteFee(ctx context.Context, id uint) error {
	if err := s.fees.Delete(ctx, id); err != nil {
		return rpc.Internal(err)
	}
	return nil
}

func (s *Service) ListOrderBumps(ctx context.Context) []domain.OrderBump {
	bumps, err := s.bumps.List(ctx)
	if err != nil {
		logger.Error(ctx, "order bump listing failed", "error", err)
		return []domain.OrderBump{}
	}
	if bumps == nil {
		bumps = []domain.OrderBump{}
	}
	return bumps
}

func (s *Service) CreateOrderBump(ctx context.Context, bump *domain.OrderBump) (*domain.OrderBump, error) {
	if err := s.bumps.Create(ctx, bump); err != nil {
		return nil, writeError(err)
	}
	return bump, nil
}

func (s *Service) UpdateOrderBump(ctx context.Context, id uint, u domain.OrderBumpUpdate) error {
	if err := s.bumps.Update(ctx, id, u); err != nil {
		return writeError(err)
	}
	return nil
}

func (s *Service) DeleteOrderBump(ctx context.Context, id uint) error {
	if err := s.bumps.Delete(ctx, id); err != nil {
		return rpc.Internal(err)
	}
	return nil
}

func (s *Service) ListGifts(ctx context.Context) []domain.Gift {
	gifts, err := s.gifts.List(ctx)
	if err != nil {
		logger.Error(ctx, "gift listing failed", "error", err)
		return []domain.Gift{}
	}
	if gifts == nil {
		gifts = []domain.Gift{}
	}
	return gifts
}

func (s *Service) CreateGift(ctx context.Context, gift *domain.Gift) (*domain.Gift, error) {
	if err := s.gifts.Create(ctx, gift); err != nil {
		return nil, writeError(err)
	}
	return gift, nil
}

func (s *Service) UpdateGift(ctx context.Context, id uint, u domain.GiftUpdate) error {
	if err := s.gifts.Update(ctx, id, u); err != nil {
		return writeError(err)
	}
	return nil
}

func (s *Service) DeleteGift(ctx context.Context, id uint) error {
	if err := s.gifts.Delete(ctx, id); err != nil {
		return rpc.Internal(err)
	}
	return nil
}

func writeError(err error) error {
	if db.IsForeignKeyViolation(err) {
		return rpc.Conflict("referenced product does not exist", err)
	}
	return rpc.Internal(err)
}
