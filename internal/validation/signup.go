package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/RazanRezq/munjiz/pkg/errors"
	"github.com/RazanRezq/munjiz/pkg/validator"
)

const (
	nameMinLen     = 2
	nameMaxLen     = 50
	emailMaxLen    = 254
	passwordMinLen = 8
	passwordMaxLen = 100

	// forbiddenNameChars would allow markup or path injection in rendered
	// names and are rejected outright.
	forbiddenNameChars = "<>/\\{}[]`|"

	// passwordSpecialChars is the accepted special character set for the
	// complexity rule.
	passwordSpecialChars = "!@#$%^&*()_+-=[]{}|;:'\",.<>/?~`\\"
)

// SignUpInput is the raw registration payload as received from the client.
type SignUpInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// SignUpData holds the normalized result of a successful validation. Name
// is trimmed with inner whitespace collapsed; Email is trimmed and
// lowercased; Password carries the exact bytes the client sent.
type SignUpData struct {
	Name     string
	Email    string
	Password string
}

// SignInInput is the raw credential payload for sign-in.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateSignUp checks a registration payload and returns either the
// normalized data or the full list of field errors.
func ValidateSignUp(in SignUpInput) (*SignUpData, []apperrors.FieldError) {
	var fieldErrs []apperrors.FieldError

	name, nameErrs := validateName(in.Name)
	fieldErrs = append(fieldErrs, nameErrs...)

	email, emailErrs := ValidateEmail(in.Email)
	fieldErrs = append(fieldErrs, emailErrs...)

	fieldErrs = append(fieldErrs, validatePassword(in.Password)...)

	if in.ConfirmPassword != in.Password {
		fieldErrs = append(fieldErrs, apperrors.FieldError{
			Field:   "confirmPassword",
			Message: "passwords do not match",
		})
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	return &SignUpData{
		Name:     name,
		Email:    email,
		Password: in.Password,
	}, nil
}

// ValidateSignIn applies the sign-in rules: presence only, so legacy
// passwords that predate the complexity requirements still authenticate.
// The returned email is normalized.
func ValidateSignIn(in SignInInput) (string, []apperrors.FieldError) {
	var fieldErrs []apperrors.FieldError

	email := NormalizeEmail(in.Email)
	if email == "" {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "email", Message: "email is required"})
	}
	if in.Password == "" {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "password", Message: "password is required"})
	}

	return email, fieldErrs
}

// NormalizeEmail returns the trimmed, lowercased form used as the
// uniqueness key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail normalizes and validates an address, including the
// known-typo domain check. Exposed for the resend-verification flow.
func ValidateEmail(raw string) (string, []apperrors.FieldError) {
	email := NormalizeEmail(raw)

	if email == "" {
		return "", []apperrors.FieldError{{Field: "email", Message: "email is required"}}
	}
	if len(email) > emailMaxLen {
		return "", []apperrors.FieldError{{Field: "email", Message: fmt.Sprintf("email must be at most %d characters", emailMaxLen)}}
	}
	if err := validator.ValidateVar(email, "email"); err != nil {
		return "", []apperrors.FieldError{{Field: "email", Message: "email must be a valid email address"}}
	}

	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	if corrected, ok := suggestDomain(domain); ok {
		suggestion := email[:at+1] + corrected
		return "", []apperrors.FieldError{{
			Field:   "email",
			Message: fmt.Sprintf("email domain %q looks misspelled, did you mean %s?", domain, suggestion),
		}}
	}

	return email, nil
}

func validateName(raw string) (string, []apperrors.FieldError) {
	name := strings.Join(strings.Fields(raw), " ")

	if name == "" {
		return "", []apperrors.FieldError{{Field: "name", Message: "name is required"}}
	}
	if strings.ContainsAny(name, forbiddenNameChars) {
		return "", []apperrors.FieldError{{Field: "name", Message: "name contains invalid characters"}}
	}
	if count := utf8.RuneCountInString(name); count < nameMinLen || count > nameMaxLen {
		return "", []apperrors.FieldError{{
			Field:   "name",
			Message: fmt.Sprintf("name must be between %d and %d characters", nameMinLen, nameMaxLen),
		}}
	}

	return name, nil
}

func validatePassword(password string) []apperrors.FieldError {
	var fieldErrs []apperrors.FieldError

	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		fieldErrs = append(fieldErrs, apperrors.FieldError{
			Field:   "password",
			Message: fmt.Sprintf("password must be between %d and %d characters", passwordMinLen, passwordMaxLen),
		})
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "password", Message: "password must contain at least one uppercase letter"})
	}
	if !hasLower {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "password", Message: "password must contain at least one lowercase letter"})
	}
	if !hasDigit {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "password", Message: "password must contain at least one digit"})
	}
	if !hasSpecial {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "password", Message: "password must contain at least one special character"})
	}

	return fieldErrs
}
