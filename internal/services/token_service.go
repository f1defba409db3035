package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RazanRezq/munjiz/internal/models"
	"github.com/RazanRezq/munjiz/internal/validation"
	"github.com/RazanRezq/munjiz/pkg/crypto"
	"github.com/RazanRezq/munjiz/pkg/logger"
)

const (
	defaultTokenExpiry = time.Hour
	defaultTokenBytes  = 32 // 256 bits of entropy, hex encoded
)

// ErrTokenNotFound indicates the token does not exist or has expired.
var ErrTokenNotFound = errors.New("verification token: not found")

// TokenOption customises the TokenService.
type TokenOption func(*TokenService)

// WithTokenExpiry overrides the token lifetime.
func WithTokenExpiry(d time.Duration) TokenOption {
	return func(s *TokenService) {
		if d > 0 {
			s.expiry = d
		}
	}
}

// WithTokenSize adjusts the number of random bytes in generated tokens.
func WithTokenSize(size int) TokenOption {
	return func(s *TokenService) {
		if size > 0 {
			s.tokenBytes = size
		}
	}
}

// WithTokenClock injects a custom time source.
func WithTokenClock(clock func() time.Time) TokenOption {
	return func(s *TokenService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// TokenService issues and consumes single-use email verification tokens.
// Expired rows are removed lazily when a lookup touches them.
type TokenService struct {
	db         *gorm.DB
	expiry     time.Duration
	tokenBytes int
	now        func() time.Time
	log        *zap.Logger
}

// NewTokenService constructs a token service with the provided dependencies.
func NewTokenService(db *gorm.DB, opts ...TokenOption) (*TokenService, error) {
	if db == nil {
		return nil, errors.New("token service: db is required")
	}

	service := &TokenService{
		db:         db,
		expiry:     defaultTokenExpiry,
		tokenBytes: defaultTokenBytes,
		now:        time.Now,
		log:        logger.WithComponent("tokens"),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// Issue generates a fresh token for the email, replacing any prior tokens
// so at most one active token exists per address.
func (s *TokenService) Issue(ctx context.Context, email string) (*models.VerificationToken, error) {
	email = validation.NormalizeEmail(email)
	if email == "" {
		return nil, errors.New("token service: email is required")
	}

	token, err := crypto.RandomToken(s.tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("token service: generate token: %w", err)
	}

	record := models.VerificationToken{
		Email:     email,
		Token:     token,
		ExpiresAt: s.now().Add(s.expiry),
	}

	if err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&models.VerificationToken{}).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("token service: purge existing: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("token service: create token: %w", err)
	}

	return &record, nil
}

// Consume looks up a token by exact match. Expired tokens are deleted on
// read and reported as not found; a token expiring exactly now counts as
// expired. The record is returned without being deleted: the caller removes
// it once finished with the email.
func (s *TokenService) Consume(ctx context.Context, token string) (*models.VerificationToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenNotFound
	}

	var record models.VerificationToken
	if err := s.db.WithContext(ctx).
		Where("token = ?", token).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("token service: find token: %w", err)
	}

	if !record.ExpiresAt.After(s.now()) {
		s.deleteRecord(ctx, record.Token)
		return nil, ErrTokenNotFound
	}

	return &record, nil
}

// Delete removes a token unconditionally. Failure to delete a consumed
// token is not user-facing, so errors are logged rather than propagated.
func (s *TokenService) Delete(ctx context.Context, token string) {
	s.deleteRecord(ctx, strings.TrimSpace(token))
}

// LookupByEmail returns the most recently created unexpired token for the
// email, or nil when none exists. Used by resend-style flows.
func (s *TokenService) LookupByEmail(ctx context.Context, email string) (*models.VerificationToken, error) {
	email = validation.NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}

	var record models.VerificationToken
	if err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("token service: lookup by email: %w", err)
	}

	if !record.ExpiresAt.After(s.now()) {
		s.deleteRecord(ctx, record.Token)
		return nil, nil
	}

	return &record, nil
}

func (s *TokenService) deleteRecord(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.VerificationToken{}).Error; err != nil {
		s.log.Warn("failed to delete verification token", zap.Error(err))
	}
}
