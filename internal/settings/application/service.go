package application

import (
	"context"
	"time"

	"github.com/lumacart/storefront/internal/rpc"
	"github.com/lumacart/storefront/internal/settings/domain"
	"github.com/lumacart/storefront/pkg/logger"
)

// settingTTL bounds staleness when an invalidation is missed.
const settingTTL = 5 * time.Minute

// Cache is the slice of the Redis wrapper the settings flow needs. A nil
// cache turns every read into a store read.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Service manages store settings (with a Redis read-through), tracking
// pixels, custom scripts and saved payment cards.
type Service struct {
	settings domain.SettingRepository
	pixels   domain.PixelRepository
	scripts  domain.ScriptRepository
	cards    domain.CardRepository
	cache    Cache
}

// NewService wires the settings service. cache may be nil.
func NewService(
	settings domain.SettingRepository,
	pixels domain.PixelRepository,
	scripts domain.ScriptRepository,
	cards domain.CardRepository,
	cache Cache,
) *Service {
	return &Service{settings: settings, pixels: pixels, scripts: scripts, cards: cards, cache: cache}
}

func settingKey(key string) string     { return "settings:key:" + key }
func settingListKey(cat string) string { return "settings:list:" + cat }

// ListSettings returns settings, optionally narrowed to a category. Cache
// failures fall through to the store.
func (s *Service) ListSettings(ctx context.Context, category string) []domain.StoreSetting {
	var cached []domain.StoreSetting
	if s.cache != nil {
		if hit, err := s.cache.GetJSON(ctx, settingListKey(category), &cached); err == nil && hit {
			return cached
		}
	}

	settings, err := s.settings.List(ctx, category)
	if err != nil {
		logger.Error(ctx, "setting listing failed", "error", err)
		return []domain.StoreSetting{}
	}
	if settings == nil {
		settings = []domain.StoreSetting{}
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, settingListKey(category), settings, settingTTL); err != nil {
			logger.Warn(ctx, "setting cache fill failed", "error", err)
		}
	}
	return settings
}

// GetSetting returns one setting by key, nil when absent.
func (s *Service) GetSetting(ctx context.Context, key string) (*domain.StoreSetting, error) {
	if s.cache != nil {
		var cached domain.StoreSetting
		if hit, err := s.cache.GetJSON(ctx, settingKey(key), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		return nil, rpc.Internal(err)
	}
	if setting != nil && s.cache != nil {
		if err := s.cache.SetJSON(ctx, settingKey(key), setting, settingTTL); err != nil {
			logger.Warn(ctx, "setting cache fill failed", "key", key, "error", err)
		}
	}
	return setting, nil
}

// UpsertSetting writes a setting and invalidates its cache entries.
func (s *Service) UpsertSetting(ctx context.Context, u domain.UpsertSetting) error {
	if u.Type == "" {
		u.Type = domain.SettingString
	}
	if err := s.settings.Upsert(ctx, u); err != nil {
		return rpc.Internal(err)
	}
	if s.cache != nil {
		keys := []string{settingKey(u.Key), settingListKey(""), settingListKey(u.Category)}
		if err := s.cache.Delete(ctx, keys...); err != nil {
			logger.Warn(ctx, "setting cache invalidation failed", "key", u.Key, "error", err)
		}
	}
	return nil
}

// ListPixels returns tracking pixels, degrading to empty on store errors.
func (s *Service) ListPixels(ctx context.Context) []domain.TrackingPixel {
	pixels, err := s.pixels.List(ctx)
	if err != nil {
		logger.Error(ctx, "pixel listing failed", "error", err)
		return []domain.TrackingPixel{}
	}
	if pixels == nil {
		pixels = []domain.TrackingPixel{}
	}
	return pixels
}

func (s *Service) CreatePixel(ctx context.Context, p *domain.TrackingPixel) (*domain.TrackingPixel, error) {
	if err := s.pixels.Create(ctx, p); err != nil {
		return nil, rpc.Internal(err)
	}
	return p, nil
}

func (s *Service) UpdatePixel(ctx context.Context, id uint, u domain.PixelUpdate) error {
	if err := s.pixels.Update(ctx, id, u); err != nil {
		return rpc.Internal(err)
	}
	return nil
}

func (s *Service) DeletePixel(ctx context.Context, id uint) error {
	if err := s.pixels.Delete(ctx, id); err != nil {
		return rpc.Internal(err)
	}
	return nil
}

// ListScripts returns custom scripts, degrading to empty on store errors.
func (s *Service) ListScripts(ctx context.Context) []domain.CustomScript {
	scripts, err := s.scripts.List(ctx)
	if err != nil {
		logger.Error(ctx, "script listing failed", "error", err)
		return []domain.CustomScript{}
	}
	if scripts == nil {
		scripts = []domain.CustomScript{}
	}
	return scripts
}

func (s *Service) CreateScript(ctx context.Context, sc *domain.CustomScript) (*domain.CustomScript, error) {
	if err := s.scripts.Create(ctx, sc); err != nil {
		return nil, rpc.Internal(err)
	}
	return sc, nil
}

func (s *Service) UpdateScript(ctx context.Context, id uint, u domain.ScriptUpdate) error {
	if err := s.scripts.Update(ctx, id, u); err != nil {
		return rpc.Internal(err)
	}
	return nil
}

func (s *Service) DeleteScript(ctx context.Context, id uint) error {
	if err := s.scripts.Delete(ctx, id); err != nil {
		return rpc.Internal(err)
	}
	return nil
}

// ListCards returns the caller's saved cards.
func (s *Service) ListCards(ctx context.Context, userID uint) ([]domain.PaymentCard, error) {
	cards, err := s.cards.ListByUser(ctx, userID)
	if err != nil {
		return nil, rpc.Internal(err)
	}
	if cards == nil {
		cards = []domain.PaymentCard{}
	}
	return cards, nil
}

// SaveCard stores a tokenized card for the caller.
func (s *Service) SaveCard(ctx context.Context, card *domain.PaymentCard) (*domain.PaymentCard, error) {
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, rpc.Internal(err)
	}
	return card, nil
}

// DeleteCard removes one of the caller's cards. Deleting another user's card
// is indistinguishable from deleting a card that never existed.
func (s *Service) DeleteCard(ctx context.Context, id, userID uint) error {
	if err := s.cards.Delete(ctx, id, userID); err != nil {
		return rpc.Internal(err)
	}
	return nil
}

// SetDefaultCard marks one of the caller's cards as default.
func (s *Service) SetDefaultCard(ctx context.Context, id, userID uint) error {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return rpc.Internal(err)
	}
	if card == nil || card.UserID != userID {
		return rpc.NotFound("payment card not found")
	}
	if err := s.cards.SetDefault(ctx, id, userID); err != nil {
		return rpc.Internal(err)
	}
	return nil
}
