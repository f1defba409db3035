package models

import "time"

// VerificationToken stores single-use email verification secrets. At most
// one active token exists per email: issuance purges older rows first.
type VerificationToken struct {
	BaseModel

	Email     string    `gorm:"index;not null" json:"email"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}
