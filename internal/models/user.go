package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User describes an account. Email is the uniqueness key and is stored
// trimmed and lowercased. PasswordHash is nil for OAuth-only accounts.
type User struct {
	ID    string `gorm:"primaryKey;type:uuid" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	PasswordHash *string `gorm:"column:password_hash" json:"-"`

	EmailVerified *time.Time `json:"email_verified,omitempty"`
	Role          string     `gorm:"default:user" json:"role"`
	Image         string     `json:"image,omitempty"`

	Workspaces []WorkspaceMember `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate ensures a UUID and a default role are present before persisting.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// IsVerified reports whether the account completed email verification.
func (u *User) IsVerified() bool {
	return u.EmailVerified != nil
}
