package mail

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/RazanRezq/munjiz/pkg/logger"
)

// VerificationSender builds verification links and dispatches the
// confirmation email. When delivery fails outside production the link is
// logged instead so local sign-ups are not blocked by sender restrictions.
type VerificationSender struct {
	mailer     Mailer
	baseURL    string
	appName    string
	production bool
}

// NewVerificationSender constructs a sender. baseURL is the public
// application URL the verification path is appended to.
func NewVerificationSender(mailer Mailer, baseURL, appName string, production bool) (*VerificationSender, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("mail: verification base url is required")
	}
	if appName == "" {
		appName = "Munjiz"
	}
	return &VerificationSender{
		mailer:     mailer,
		baseURL:    baseURL,
		appName:    appName,
		production: production,
	}, nil
}

// VerificationLink returns the link embedded in verification emails.
func (s *VerificationSender) VerificationLink(token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, url.QueryEscape(token))
}

// SendVerification dispatches the confirmation email for the given token.
// In non-production environments delivery failures degrade to logging the
// link and returning nil; in production the error propagates to the caller.
func (s *VerificationSender) SendVerification(ctx context.Context, email, token string) error {
	link := s.VerificationLink(token)

	msg := Message{
		To:      []string{email},
		Subject: fmt.Sprintf("Verify your %s account", s.appName),
		Body: fmt.Sprintf(
			"Welcome to %s!\n\nPlease confirm your email address by visiting the link below:\n%s\n\nThe link expires in one hour. If you did not create an account, you can ignore this message.\n",
			s.appName, link,
		),
	}

	err := s.mailer.Send(ctx, msg)
	if err == nil {
		return nil
	}

	if !s.production {
		logger.WithComponent("mail").Warn("email delivery failed; logging verification link",
			zap.String("email", email),
			zap.String("link", link),
			zap.Error(err),
		)
		return nil
	}

	return fmt.Errorf("mail: send verification: %w", err)
}
