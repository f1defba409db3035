package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RazanRezq/munjiz/internal/middleware"
	appErrors "github.com/RazanRezq/munjiz/pkg/errors"
	"github.com/RazanRezq/munjiz/pkg/logger"
	"github.com/RazanRezq/munjiz/pkg/response"
	appValidator "github.com/RazanRezq/munjiz/pkg/validator"
)

// bindAndValidate binds the JSON payload into dest and runs struct
// validation rules. When it fails, an error response is written and false
// is returned.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid JSON payload"))
		return false
	}

	if err := appValidator.ValidateStruct(dest); err != nil {
		if ve, ok := err.(appValidator.ValidationErrors); ok {
			response.Error(c, appErrors.NewValidation(toFieldErrors(ve)))
		} else {
			response.Error(c, appErrors.NewBadRequest("invalid request payload"))
		}
		return false
	}

	return true
}

func toFieldErrors(ve appValidator.ValidationErrors) []appErrors.FieldError {
	out := make([]appErrors.FieldError, 0, len(ve))
	for _, failure := range ve {
		field := failure.Field
		var message string
		switch failure.Tag {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, failure.Param)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, failure.Param)
		default:
			if failure.Param != "" {
				message = fmt.Sprintf("%s failed validation: %s=%s", field, failure.Tag, failure.Param)
			} else {
				message = fmt.Sprintf("%s failed validation: %s", field, failure.Tag)
			}
		}
		out = append(out, appErrors.FieldError{Field: field, Message: message})
	}
	return out
}

// currentUserID returns the authenticated user id placed by the Auth middleware.
func currentUserID(c *gin.Context) string {
	v, _ := c.Get(middleware.CtxUserIDKey)
	id, _ := v.(string)
	return id
}

// currentUserEmail returns the authenticated user email from the session claims.
func currentUserEmail(c *gin.Context) string {
	v, _ := c.Get(middleware.CtxUserEmailKey)
	email, _ := v.(string)
	return email
}

// fail renders err through the error taxonomy, logging internal detail
// server-side for anything that surfaces as a 5xx.
func fail(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.WithComponent("http").Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	response.Error(c, appErr)
}
