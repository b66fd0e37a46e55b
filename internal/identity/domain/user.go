package domain

import (
	"context"
	"time"
)

// Role is the sole authorization signal on a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is created on first login and refreshed on re-login. Never hard-deleted.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OpenID       string    `gorm:"column:open_id;size:64;uniqueIndex;not null" json:"openId"`
	Name         string    `gorm:"size:255" json:"name"`
	Email        string    `gorm:"size:320" json:"email"`
	Phone        string    `gorm:"size:20" json:"phone"`
	LoginMethod  string    `gorm:"column:login_method;size:64" json:"loginMethod"`
	Role         Role      `gorm:"type:enum('user','admin');default:'user';not null" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastSignedIn time.Time `gorm:"column:last_signed_in" json:"lastSignedIn"`
}

// TableName pins the table name.
func (User) TableName() string { return "users" }

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// UpsertUser is the payload applied on login. Empty optional fields leave the
// stored value untouched on conflict.
type UpsertUser struct {
	OpenID       string
	Name         string
	Email        string
	Phone        string
	LoginMethod  string
	Role         Role
	LastSignedIn time.Time
}

// UserRepository is the persistence port for users.
type UserRepository interface {
	// Upsert inserts the user or refreshes profile fields on open_id conflict.
	Upsert(ctx context.Context, u UpsertUser) error
	// GetByOpenID returns the user or nil when absent.
	GetByOpenID(ctx context.Context, openID string) (*User, error)
	// GetByID returns the user or nil when absent.
	GetByID(ctx context.Context, id uint) (*User, error)
	// Count reports the total number of users.
	Count(ctx context.Context) (int64, error)
}
