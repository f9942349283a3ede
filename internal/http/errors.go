package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bci-users/internal/repository"
	"bci-users/internal/service"
)

const (
	msgUnexpected     = "An unexpected error occurred"
	msgConflict       = "The request conflicts with the current state of the resource"
	msgInvalidToken   = "Invalid or expired token"
	msgHeaderRequired = "Authorization header required"
)

// errorResponse es el cuerpo de todo error: siempre un unico mensaje.
type errorResponse struct {
	Mensaje string `json:"mensaje"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Mensaje: msg})
}

func signUpError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrAccountExists):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, msgConflict
	default:
		return http.StatusInternalServerError, msgUnexpected
	}
}

// tokenLoginError responde 401 tambien para usuario inexistente, para no
// distinguir un token valido de un sujeto que ya no existe.
func tokenLoginError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMalformedRequest):
		return http.StatusBadRequest, msgHeaderRequired
	case errors.Is(err, service.ErrTokenInvalid):
		return http.StatusUnauthorized, msgInvalidToken
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusUnauthorized, "User not found"
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, msgConflict
	default:
		return http.StatusInternalServerError, msgUnexpected
	}
}

func credentialLoginError(err error, email string) (int, string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "User not found with email: " + email
	case errors.Is(err, service.ErrAccountDisabled):
		return http.StatusBadRequest, "User account is disabled"
	case errors.Is(err, service.ErrInvalidPassword):
		return http.StatusBadRequest, "Invalid password"
	case errors.Is(err, service.ErrValidationFailed):
		return http.StatusBadRequest, "Validation failed"
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, msgConflict
	default:
		return http.StatusInternalServerError, msgUnexpected
	}
}
