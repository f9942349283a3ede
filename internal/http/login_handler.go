package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bci-users/internal/service"
)

// LoginHandler expone los dos modos de login.
type LoginHandler struct {
	logger    *zap.Logger
	loginServ *service.LoginService
}

func NewLoginHandler(logger *zap.Logger, loginServ *service.LoginService) *LoginHandler {
	registerValidators()
	return &LoginHandler{
		logger:    logger,
		loginServ: loginServ,
	}
}

// LoginWithToken maneja GET /api/login/validate.
func (h *LoginHandler) LoginWithToken(c *gin.Context) {
	view, err := h.loginServ.LoginWithToken(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		status, msg := tokenLoginError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("token login failed", zap.Error(err))
		} else {
			h.logger.Warn("token login rejected", zap.Int("status", status), zap.Error(err))
		}
		writeError(c, status, msg)
		return
	}
	c.JSON(http.StatusOK, view)
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginWithCredentials maneja POST /api/login/authenticate.
func (h *LoginHandler) LoginWithCredentials(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid credentials request", zap.Error(err))
		writeError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	view, err := h.loginServ.LoginWithCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := credentialLoginError(err, req.Email)
		if status >= http.StatusInternalServerError {
			h.logger.Error("credential login failed", zap.Error(err))
		} else {
			h.logger.Warn("credential login rejected", zap.String("email", req.Email), zap.Int("status", status))
		}
		writeError(c, status, msg)
		return
	}
	c.JSON(http.StatusOK, view)
}
