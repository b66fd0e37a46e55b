package domain

import (
	"context"
	"time"
)

// ScriptPosition names where in the page a script is injected.
type ScriptPosition string

const (
	ScriptHeader ScriptPosition = "header"
	ScriptFooter ScriptPosition = "footer"
)

// CustomScript is a raw snippet injected into the storefront header or footer.
type CustomScript struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Position  ScriptPosition `gorm:"type:enum('header','footer');not null" json:"position"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	IsActive  bool           `gorm:"column:is_active;default:true;not null" json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (CustomScript) TableName() string { return "custom_scripts" }

// ScriptUpdate carries partial changes. Nil fields are untouched.
type ScriptUpdate struct {
	Name     *string
	Position *ScriptPosition
	Content  *string
	IsActive *bool
}

// ScriptRepository is the persistence port for custom scripts.
type ScriptRepository interface {
	// List returns scripts ordered by position, headers before footers.
	List(ctx context.Context) ([]CustomScript, error)
	Create(ctx context.Context, s *CustomScript) error
	Update(ctx context.Context, id uint, u ScriptUpdate) error
	Delete(ctx context.Context, id uint) error
}
