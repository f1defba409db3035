package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/RazanRezq/munjiz/internal/models"
	"github.com/RazanRezq/munjiz/internal/validation"
	"github.com/RazanRezq/munjiz/pkg/crypto"
	apperrors "github.com/RazanRezq/munjiz/pkg/errors"
)

// Identity is the minimal authenticated principal handed to session
// issuance. The password hash never crosses this boundary.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Image    string `json:"image,omitempty"`
	Verified bool   `json:"verified"`
}

// Authenticator validates credential sign-ins.
type Authenticator struct {
	db *gorm.DB
}

// NewAuthenticator constructs a credential authenticator.
func NewAuthenticator(db *gorm.DB) (*Authenticator, error) {
	if db == nil {
		return nil, errors.New("authenticator: db is required")
	}
	return &Authenticator{db: db}, nil
}

// Authenticate checks the supplied credentials. Missing users and
// OAuth-only accounts (no stored hash) fail identically so the response
// never reveals which condition matched. Unverified accounts fail with the
// distinguished ErrEmailNotVerified so callers can offer a resend flow.
func (a *Authenticator) Authenticate(ctx context.Context, in validation.SignInInput) (*Identity, error) {
	email, fieldErrs := validation.ValidateSignIn(in)
	if len(fieldErrs) > 0 {
		return nil, apperrors.ErrInvalidCredentials
	}

	var user models.User
	if err := a.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticator: find user: %w", err)
	}

	if user.PasswordHash == nil || *user.PasswordHash == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.EmailVerified == nil {
		return nil, apperrors.ErrEmailNotVerified
	}

	if !crypto.VerifyPassword(*user.PasswordHash, in.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &Identity{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Image:    user.Image,
		Verified: true,
	}, nil
}
