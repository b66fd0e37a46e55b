package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lumacart/storefront/internal/settings/domain"
)

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository builds the MySQL-backed store settings repository.
func NewSettingRepository(db *gorm.DB) domain.SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) List(ctx context.Context, category string) ([]domain.StoreSetting, error) {
	query := r.db.WithContext(ctx).Model(&domain.StoreSetting{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var settings []domain.StoreSetting
	if err := query.Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) Get(ctx context.Context, key string) (*domain.StoreSetting, error) {
	var setting domain.StoreSetting
	err := r.db.WithContext(ctx).Where("`key` = ?", key).First(&setting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Upsert(ctx context.Context, s domain.UpsertSetting) error {
	record := domain.StoreSetting{
		Key:         s.Key,
		Value:       s.Value,
		Type:        s.Type,
		Category:    s.Category,
		Description: s.Description,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "category", "description"}),
	}).Create(&record).Error
}

type pixelRepository struct {
	db *gorm.DB
}

// NewPixelRepository builds the MySQL-backed tracking pixel store.
func NewPixelRepository(db *gorm.DB) domain.PixelRepository {
	return &pixelRepository{db: db}
}

func (r *pixelRepository) List(ctx context.Context) ([]domain.TrackingPixel, error) {
	var pixels []domain.TrackingPixel
	err := r.db.WithContext(ctx).Order("name ASC").Find(&pixels).Error
	if err != nil {
		return nil, err
	}
	return pixels, nil
}

func (r *pixelRepository) Create(ctx context.Context, p *domain.TrackingPixel) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pixelRepository) Update(ctx context.Context, id uint, u domain.PixelUpdate) error {
	values := map[string]any{}
	if u.Name != nil {
		values["name"] = *u.Name
	}
	if u.Platform != nil {
		values["platform"] = *u.Platform
	}
	if u.PixelID != nil {
		values["pixel_id"] = *u.PixelID
	}
	if u.IsActive != nil {
		values["is_active"] = *u.IsActive
	}
	if u.Events != nil {
		values["events"] = u.Events
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.TrackingPixel{}).Where("id = ?", id).Updates(values).Error
}

func (r *pixelRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.TrackingPixel{}).Error
}

type scriptRepository struct {
	db *gorm.DB
}

// NewScriptRepository builds the MySQL-backed custom script store.
func NewScriptRepository(db *gorm.DB) domain.ScriptRepository {
	return &scriptRepository{db: db}
}

func (r *scriptRepository) List(ctx context.Context) ([]domain.CustomScript, error) {
	var scripts []domain.CustomScript
	err := r.db.WithContext(ctx).Order("position ASC").Find(&scripts).Error
	if err != nil {
		return nil, err
	}
	return scripts, nil
}

func (r *scriptRepository) Create(ctx context.Context, s *domain.CustomScript) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *scriptRepository) Update(ctx context.Context, id uint, u domain.ScriptUpdate) error {
	values := map[string]any{}
	if u.Name != nil {
		values["name"] = *u.Name
	}
	if u.Position != nil {
		values["position"] = *u.Position
	}
	if u.Content != nil {
		values["content"] = *u.Content
	}
	if u.IsActive != nil {
		values["is_active"] = *u.IsActive
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.CustomScript{}).Where("id = ?", id).Updates(values).Error
}

func (r *scriptRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.CustomScript{}).Error
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository builds the MySQL-backed payment card store.
func NewCardRepository(db *gorm.DB) domain.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) ListByUser(ctx context.Context, userID uint) ([]domain.PaymentCard, error) {
	var cards []domain.PaymentCard
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) GetByID(ctx context.Context, id uint) (*domain.PaymentCard, error) {
	var card domain.PaymentCard
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) Create(ctx context.Context, c *domain.PaymentCard) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cardRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.PaymentCard{}).Error
}

// SetDefault flips the flag inside one transaction so the user never ends up
// with two defaults.
func (r *cardRepository) SetDefault(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.PaymentCard{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&domain.PaymentCard{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", true).Error
	})
}
