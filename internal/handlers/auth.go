package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	iauth "github.com/RazanRezq/munjiz/internal/auth"
	"github.com/RazanRezq/munjiz/internal/services"
	"github.com/RazanRezq/munjiz/internal/validation"
	apperrors "github.com/RazanRezq/munjiz/pkg/errors"
	"github.com/RazanRezq/munjiz/pkg/metrics"
	"github.com/RazanRezq/munjiz/pkg/response"
)

// AuthHandler manages registration, email verification, and sign-in.
type AuthHandler struct {
	registrations *services.RegistrationService
	authenticator *services.Authenticator
	jwt           *iauth.JWTService
}

// NewAuthHandler wires the auth flow dependencies.
func NewAuthHandler(registrations *services.RegistrationService, authenticator *services.Authenticator, jwt *iauth.JWTService) *AuthHandler {
	return &AuthHandler{
		registrations: registrations,
		authenticator: authenticator,
		jwt:           jwt,
	}
}

// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req validation.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid JSON payload"))
		return
	}

	if _, err := h.registrations.Register(c.Request.Context(), req); err != nil {
		if apperrors.FromError(err).StatusCode < http.StatusInternalServerError {
			metrics.Registrations.WithLabelValues("rejected").Inc()
		} else {
			metrics.Registrations.WithLabelValues("error").Inc()
		}
		fail(c, err)
		return
	}

	metrics.Registrations.WithLabelValues("created").Inc()
	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration successful. Please check your email to verify your account.",
	})
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

// POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid JSON payload"))
		return
	}

	message, err := h.registrations.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		metrics.EmailVerifications.WithLabelValues("invalid").Inc()
		fail(c, err)
		return
	}

	if message == "Email already verified" {
		metrics.EmailVerifications.WithLabelValues("already_verified").Inc()
	} else {
		metrics.EmailVerifications.WithLabelValues("verified").Inc()
	}
	response.Success(c, http.StatusOK, gin.H{"message": message})
}

type resendRequest struct {
	Email string `json:"email"`
}

// POST /api/auth/resend-verification
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req resendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid JSON payload"))
		return
	}

	if err := h.registrations.ResendVerification(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "If the account exists and is unverified, a new verification email has been sent.",
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req validation.SignInInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid JSON payload"))
		return
	}

	identity, err := h.authenticator.Authenticate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailNotVerified) {
			metrics.AuthAttempts.WithLabelValues("unverified").Inc()
		} else {
			metrics.AuthAttempts.WithLabelValues("failure").Inc()
		}
		fail(c, err)
		return
	}

	token, err := h.jwt.IssueSessionToken(identity)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		fail(c, err)
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user":  identity,
	})
}
