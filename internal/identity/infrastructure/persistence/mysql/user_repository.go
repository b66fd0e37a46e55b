package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lumacart/storefront/internal/identity/domain"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds the MySQL-backed user store.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Upsert(ctx context.Context, u domain.UpsertUser) error {
	if u.LastSignedIn.IsZero() {
		u.LastSignedIn = time.Now()
	}

	record := domain.User{
		OpenID:       u.OpenID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		LoginMethod:  u.LoginMethod,
		LastSignedIn: u.LastSignedIn,
	}
	updates := []string{"last_signed_in"}
	if u.Name != "" {
		updates = append(updates, "name")
	}
	if u.Email != "" {
		updates = append(updates, "email")
	}
	if u.Phone != "" {
		updates = append(updates, "phone")
	}
	if u.LoginMethod != "" {
		updates = append(updates, "login_method")
	}
	if u.Role != "" {
		record.Role = u.Role
		updates = append(updates, "role")
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "open_id"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&record).Error
}

func (r *userRepository) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("open_id = ?", openID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error
	return total, err
}
