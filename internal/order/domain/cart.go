package domain

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumacart/storefront/pkg/jsonfield"
)

// CartItem is one line of an abandoned cart snapshot.
type CartItem struct {
	ProductID    uint            `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage,omitempty"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

// CartItemList is a JSON column of cart lines.
type CartItemList []CartItem

func (l CartItemList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return jsonfield.Value(l)
}

func (l *CartItemList) Scan(src any) error { return jsonfield.Scan(l, src) }

// AbandonedCart records a checkout that stalled, for recovery campaigns.
type AbandonedCart struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	SessionID           string          `gorm:"column:session_id;size:100" json:"sessionId"`
	UserID              *uint           `gorm:"column:user_id" json:"userId"`
	CustomerEmail       string          `gorm:"column:customer_email;size:320" json:"customerEmail"`
	CustomerPhone       string          `gorm:"column:customer_phone;size:20" json:"customerPhone"`
	Items               CartItemList    `gorm:"type:json" json:"items"`
	TotalValue          decimal.Decimal `gorm:"column:total_value;type:decimal(10,2);not null" json:"totalValue"`
	RecoveryEmailSent   bool            `gorm:"column:recovery_email_sent;default:false;not null" json:"recoveryEmailSent"`
	RecoveryEmailSentAt *time.Time      `gorm:"column:recovery_email_sent_at" json:"recoveryEmailSentAt"`
	IsRecovered         bool            `gorm:"column:is_recovered;default:false;not null" json:"isRecovered"`
	RecoveredOrderID    *uint           `gorm:"column:recovered_order_id" json:"recoveredOrderId"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

func (AbandonedCart) TableName() string { return "abandoned_carts" }

// CartListOptions narrows a cart listing. Search matches email and phone.
type CartListOptions struct {
	Search      string
	IsRecovered *bool
	Limit       int
}

// CartUpdate carries recovery bookkeeping changes. Nil fields are untouched.
type CartUpdate struct {
	IsRecovered         *bool
	RecoveredOrderID    *uint
	RecoveryEmailSent   *bool
	RecoveryEmailSentAt *time.Time
}

// CartRepository is the persistence port for abandoned carts.
type CartRepository interface {
	List(ctx context.Context, opts CartListOptions) ([]AbandonedCart, error)
	// GetByID returns the cart or nil when absent.
	GetByID(ctx context.Context, id uint) (*AbandonedCart, error)
	Create(ctx context.Context, c *AbandonedCart) error
	Update(ctx context.Context, id uint, u CartUpdate) error
	// CountUnrecovered counts carts not yet converted back into orders.
	CountUnrecovered(ctx context.Context) (int64, error)
}
