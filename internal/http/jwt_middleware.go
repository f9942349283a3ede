package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bci-users/internal/service"
)

const authEmailKey = "auth_email"

var publicPrefixes = []string{
	"/actuator/",
	"/v3/api-docs",
	"/swagger-ui",
	"/swagger-resources",
	"/api-docs",
	"/webjars",
}

var publicPaths = map[string]struct{}{
	"/health":                 {},
	"/info":                   {},
	"/metrics":                {},
	"/api/user/sign-up":       {},
	"/api/login/authenticate": {},
}

// AuthGate intenta resolver la identidad del request a partir del header Bearer.
//
// El gate es fail-open: si el header falta o el token no valida, el request
// sigue sin identidad adjunta. Los handlers que necesiten autenticacion deben
// exigirla con GetAuthEmail.
func AuthGate(tokens *service.JWTService, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if tokens == nil || isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			email, err := tokens.Validate(header[len("Bearer "):])
			if err != nil {
				logger.Warn("jwt validation failed",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
			} else {
				c.Set(authEmailKey, email)
			}
		}
		c.Next()
	}
}

// GetAuthEmail devuelve el email autenticado por AuthGate, si lo hay.
func GetAuthEmail(c *gin.Context) (string, bool) {
	val, ok := c.Get(authEmailKey)
	if !ok {
		return "", false
	}
	email, ok := val.(string)
	return email, ok && email != ""
}

func isPublicPath(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
