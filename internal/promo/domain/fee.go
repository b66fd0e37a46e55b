package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FeeType selects whether a fee is a percentage or a flat amount.
type FeeType string

const (
	FeePercentage FeeType = "percentage"
	FeeFixed      FeeType = "fixed"
)

// FeeScope names which payment method a fee applies to.
type FeeScope string

const (
	FeeAll        FeeScope = "all"
	FeeCreditCard FeeScope = "credit_card"
	FeeDebitCard  FeeScope = "debit_card"
	FeePix        FeeScope = "pix"
	FeeBoleto     FeeScope = "boleto"
)

// Fee is a platform or payment surcharge. Value uses four decimal places so
// percentage rates like 3.4999 survive intact.
type Fee struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Type      FeeType         `gorm:"type:enum('percentage','fixed');not null" json:"type"`
	Value     decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"value"`
	AppliesTo FeeScope        `gorm:"column:applies_to;type:enum('all','credit_card','debit_card','pix','boleto');default:'all';not null" json:"appliesTo"`
	IsActive  bool            `gorm:"column:is_active;default:true;not null" json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (Fee) TableName() string { return "fees" }

// FeeUpdate carries partial changes. Nil fields are untouched.
type FeeUpdate struct {
	Name      *string
	Type      *FeeType
	Value     *decimal.Decimal
	AppliesTo *FeeScope
	IsActive  *bool
}

// FeeRepository is the persistence port for fees.
type FeeRepository interface {
	// List returns fees by name ascending.
	List(ctx context.Context) ([]Fee, error)
	Create(ctx context.Context, f *Fee) error
	Update(ctx context.Context, id uint, u FeeUpdate) error
	Delete(ctx context.Context, id uint) error
}
