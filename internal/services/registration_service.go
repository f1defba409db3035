package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RazanRezq/munjiz/internal/models"
	"github.com/RazanRezq/munjiz/internal/validation"
	"github.com/RazanRezq/munjiz/pkg/crypto"
	apperrors "github.com/RazanRezq/munjiz/pkg/errors"
	"github.com/RazanRezq/munjiz/pkg/logger"
)

var (
	// ErrUserExists is returned when the normalized email is already registered.
	ErrUserExists = apperrors.New("USER_EXISTS", "User already exists", http.StatusBadRequest)
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = apperrors.New("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	// ErrTokenInvalid covers unknown and expired verification tokens alike.
	ErrTokenInvalid = apperrors.New("TOKEN_INVALID", "Invalid or expired verification token", http.StatusBadRequest)
)

const domainUnreachableMessage = "email domain does not exist or cannot receive emails"

// DomainChecker reports whether an email's domain can receive mail.
type DomainChecker interface {
	CanReceiveMail(ctx context.Context, email string) bool
}

// VerificationMailer dispatches verification emails.
type VerificationMailer interface {
	SendVerification(ctx context.Context, email, token string) error
}

// RegistrationService orchestrates sign-up and email verification.
type RegistrationService struct {
	db      *gorm.DB
	tokens  *TokenService
	domains DomainChecker
	sender  VerificationMailer
	now     func() time.Time
	log     *zap.Logger
}

// RegistrationOption customises the RegistrationService.
type RegistrationOption func(*RegistrationService)

// WithRegistrationClock injects a custom time source.
func WithRegistrationClock(clock func() time.Time) RegistrationOption {
	return func(s *RegistrationService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewRegistrationService wires the registration flow dependencies.
func NewRegistrationService(db *gorm.DB, tokens *TokenService, domains DomainChecker, sender VerificationMailer, opts ...RegistrationOption) (*RegistrationService, error) {
	if db == nil {
		return nil, errors.New("registration service: db is required")
	}
	if tokens == nil {
		return nil, errors.New("registration service: token service is required")
	}
	if domains == nil {
		return nil, errors.New("registration service: domain checker is required")
	}
	if sender == nil {
		return nil, errors.New("registration service: verification mailer is required")
	}

	service := &RegistrationService{
		db:      db,
		tokens:  tokens,
		domains: domains,
		sender:  sender,
		now:     time.Now,
		log:     logger.WithComponent("registration"),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// Register runs the single-pass sign-up flow: validate, domain check,
// duplicate check, hash, create, issue token, send email. The created
// user's hash never reaches the caller.
func (s *RegistrationService) Register(ctx context.Context, in validation.SignUpInput) (*models.User, error) {
	data, fieldErrs := validation.ValidateSignUp(in)
	if len(fieldErrs) > 0 {
		return nil, apperrors.NewValidation(fieldErrs)
	}

	if !s.domains.CanReceiveMail(ctx, data.Email) {
		return nil, apperrors.NewValidation([]apperrors.FieldError{{
			Field:   "email",
			Message: domainUnreachableMessage,
		}})
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", data.Email).Take(&existing).Error
	switch {
	case err == nil:
		// Duplicate registration always rejects, even while unverified;
		// the resend endpoint covers stale sign-ups.
		return nil, ErrUserExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("registration service: duplicate lookup: %w", err)
	}

	hash, err := crypto.HashPassword(data.Password)
	if err != nil {
		return nil, fmt.Errorf("registration service: hash password: %w", err)
	}

	user := models.User{
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: &hash,
		Role:         models.RoleUser,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("registration service: create user: %w", err)
	}

	token, err := s.tokens.Issue(ctx, data.Email)
	if err != nil {
		return nil, fmt.Errorf("registration service: issue token: %w", err)
	}

	if err := s.sender.SendVerification(ctx, data.Email, token.Token); err != nil {
		return nil, apperrors.Wrap(err, "Could not send verification email, please try again")
	}

	return &user, nil
}

// VerifyEmail consumes a token and marks the matching user verified.
// Verifying an already-verified account succeeds idempotently without
// touching the original timestamp.
func (s *RegistrationService) VerifyEmail(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.NewBadRequest("verification token is required")
	}

	record, err := s.tokens.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return "", ErrTokenInvalid
		}
		return "", fmt.Errorf("registration service: consume token: %w", err)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", record.Email).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("registration service: find user: %w", err)
	}

	if user.EmailVerified != nil {
		s.tokens.Delete(ctx, token)
		return "Email already verified", nil
	}

	now := s.now()
	if err := s.db.WithContext(ctx).
		Model(&user).
		Update("email_verified", now).Error; err != nil {
		return "", fmt.Errorf("registration service: mark verified: %w", err)
	}

	// Set-then-delete: a crash between the two steps can leave a
	// consumed-but-valid token until expiry. Accepted, not guaranteed atomic.
	s.tokens.Delete(ctx, token)

	return "Email verified successfully", nil
}

// ResendVerification re-sends the verification link for an unverified
// account, reusing the active token when one exists. The outcome is always
// reported as success so addresses cannot be enumerated.
func (s *RegistrationService) ResendVerification(ctx context.Context, rawEmail string) error {
	email, fieldErrs := validation.ValidateEmail(rawEmail)
	if len(fieldErrs) > 0 {
		return apperrors.NewValidation(fieldErrs)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("registration service: find user: %w", err)
	}
	if user.EmailVerified != nil {
		return nil
	}

	token, err := s.tokens.LookupByEmail(ctx, email)
	if err != nil {
		return err
	}
	if token == nil {
		token, err = s.tokens.Issue(ctx, email)
		if err != nil {
			return err
		}
	}

	if err := s.sender.SendVerification(ctx, email, token.Token); err != nil {
		s.log.Error("resend verification delivery failed", zap.String("email", email), zap.Error(err))
	}

	return nil
}
