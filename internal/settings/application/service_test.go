package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumacart/storefront/internal/rpc"
	"github.com/lumacart/storefront/internal/settings/domain"
)

type fakeSettingRepo struct {
	settings map[string]*domain.StoreSetting
	getCalls int
	upserts  []domain.UpsertSetting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: map[string]*domain.StoreSetting{}}
}

func (r *fakeSettingRepo) List(ctx context.Context, category string) ([]domain.StoreSetting, error) {
	var out []domain.StoreSetting
	for _, s := range r.settings {
		if category == "" || s.Category == category {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSettingRepo) Get(ctx context.Context, key string) (*domain.StoreSetting, error) {
	r.getCalls++
	return r.settings[key], nil
}

func (r *fakeSettingRepo) Upsert(ctx context.Context, s domain.UpsertSetting) error {
	r.upserts = append(r.upserts, s)
	r.settings[s.Key] = &domain.StoreSetting{
		Key: s.Key, Value: s.Value, Type: s.Type, Category: s.Category, Description: s.Description,
	}
	return nil
}

type memoryCache struct {
	entries map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) SetJSON(ctx context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

type stubCardRepo struct {
	cards map[uint]*domain.PaymentCard
}

func (r *stubCardRepo) ListByUser(ctx context.Context, userID uint) ([]domain.PaymentCard, error) {
	var out []domain.PaymentCard
	for _, c := range r.cards {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCardRepo) GetByID(ctx context.Context, id uint) (*domain.PaymentCard, error) {
	return r.cards[id], nil
}

func (r *stubCardRepo) Create(ctx context.Context, c *domain.PaymentCard) error { return nil }

func (r *stubCardRepo) Delete(ctx context.Context, id, userID uint) error { return nil }

func (r *stubCardRepo) SetDefault(ctx context.Context, id, userID uint) error { return nil }

type stubPixelRepo struct{}

func (stubPixelRepo) List(ctx context.Context) ([]domain.TrackingPixel, error)       { return nil, nil }
func (stubPixelRepo) Create(ctx context.Context, p *domain.TrackingPixel) error      { return nil }
func (stubPixelRepo) Update(ctx context.Context, id uint, u domain.PixelUpdate) error { return nil }
func (stubPixelRepo) Delete(ctx context.Context, id uint) error                      { return nil }

type stubScriptRepo struct{}

func (stubScriptRepo) List(ctx context.Context) ([]domain.CustomScript, error)         { return nil, nil }
func (stubScriptRepo) Create(ctx context.Context, s *domain.CustomScript) error        { return nil }
func (stubScriptRepo) Update(ctx context.Context, id uint, u domain.ScriptUpdate) error { return nil }
func (stubScriptRepo) Delete(ctx context.Context, id uint) error                       { return nil }

func newTestService(settings *fakeSettingRepo, cards *stubCardRepo, cache Cache) *Service {
	if cards == nil {
		cards = &stubCardRepo{cards: map[uint]*domain.PaymentCard{}}
	}
	return NewService(settings, stubPixelRepo{}, stubScriptRepo{}, cards, cache)
}

func TestGetSettingFillsAndServesCache(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.settings["store_name"] = &domain.StoreSetting{Key: "store_name", Value: "LumaCart", Type: domain.SettingString}
	cache := newMemoryCache()
	svc := newTestService(repo, nil, cache)

	first, err := svc.GetSetting(context.Background(), "store_name")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, repo.getCalls)

	second, err := svc.GetSetting(context.Background(), "store_name")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "LumaCart", second.Value)
	// Served from cache, no second store read.
	assert.Equal(t, 1, repo.getCalls)
}

func TestUpsertSettingInvalidatesCache(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.settings["store_name"] = &domain.StoreSetting{Key: "store_name", Value: "Old", Category: "general"}
	cache := newMemoryCache()
	svc := newTestService(repo, nil, cache)

	_, err := svc.GetSetting(context.Background(), "store_name")
	require.NoError(t, err)

	require.NoError(t, svc.UpsertSetting(context.Background(), domain.UpsertSetting{
		Key: "store_name", Value: "New", Category: "general",
	}))
	assert.Contains(t, cache.deleted, "settings:key:store_name")
	assert.Contains(t, cache.deleted, "settings:list:general")
	assert.Contains(t, cache.deleted, "settings:list:")

	setting, err := svc.GetSetting(context.Background(), "store_name")
	require.NoError(t, err)
	assert.Equal(t, "New", setting.Value)
}

func TestUpsertSettingDefaultsTypeToString(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := newTestService(repo, nil, nil)

	require.NoError(t, svc.UpsertSetting(context.Background(), domain.UpsertSetting{Key: "k", Value: "v"}))
	require.Len(t, repo.upserts, 1)
	assert.Equal(t, domain.SettingString, repo.upserts[0].Type)
}

func TestSettingsWorkWithoutCache(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.settings["a"] = &domain.StoreSetting{Key: "a", Value: "1"}
	svc := newTestService(repo, nil, nil)

	setting, err := svc.GetSetting(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "1", setting.Value)

	list := svc.ListSettings(context.Background(), "")
	assert.Len(t, list, 1)
}

func TestSetDefaultCardRejectsForeignCard(t *testing.T) {
	cards := &stubCardRepo{cards: map[uint]*domain.PaymentCard{
		5: {ID: 5, UserID: 77, CardBrand: "visa"},
	}}
	svc := newTestService(newFakeSettingRepo(), cards, nil)

	err := svc.SetDefaultCard(context.Background(), 5, 12)
	require.Error(t, err)
	assert.Equal(t, rpc.CodeNotFound, rpc.AsError(err).Code)
}

func TestSetDefaultCardAcceptsOwnCard(t *testing.T) {
	cards := &stubCardRepo{cards: map[uint]*domain.PaymentCard{
		5: {ID: 5, UserID: 12, CardBrand: "visa"},
	}}
	svc := newTestService(newFakeSettingRepo(), cards, nil)

	assert.NoError(t, svc.SetDefaultCard(context.Background(), 5, 12))
}
