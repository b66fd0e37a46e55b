package domain

import (
	"context"
	"time"
)

// PaymentCard is a tokenized card saved by a customer. Only the brand, the
// last four digits and the gateway token are stored, never the number.
type PaymentCard struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"column:user_id;not null;index" json:"userId"`
	CardBrand      string    `gorm:"column:card_brand;size:50;not null" json:"cardBrand"`
	LastFourDigits string    `gorm:"column:last_four_digits;size:4;not null" json:"lastFourDigits"`
	HolderName     string    `gorm:"column:holder_name;size:255;not null" json:"holderName"`
	ExpiryMonth    int       `gorm:"column:expiry_month;not null" json:"expiryMonth"`
	ExpiryYear     int       `gorm:"column:expiry_year;not null" json:"expiryYear"`
	TokenizedID    string    `gorm:"column:tokenized_id;size:255" json:"-"`
	IsDefault      bool      `gorm:"column:is_default;default:false;not null" json:"isDefault"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (PaymentCard) TableName() string { return "payment_cards" }

// CardRepository is the persistence port for saved cards. Every operation is
// scoped to a user so one customer can never touch another's cards.
type CardRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]PaymentCard, error)
	// GetByID returns the card or nil when absent.
	GetByID(ctx context.Context, id uint) (*PaymentCard, error)
	Create(ctx context.Context, c *PaymentCard) error
	Delete(ctx context.Context, id, userID uint) error
	// SetDefault marks one card as default and clears the flag on the
	// user's other cards.
	SetDefault(ctx context.Context, id, userID uint) error
}
