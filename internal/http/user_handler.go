package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bci-users/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService) *UserHandler {
	registerValidators()
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
	}
}

type phoneRequest struct {
	Number      string `json:"number" binding:"required,number,min=7,max=15"`
	CityCode    int    `json:"citycode" binding:"required,gt=0"`
	CountryCode string `json:"countrycode" binding:"required,number,min=1,max=4"`
}

type signUpRequest struct {
	Name     string          `json:"name" binding:"required,min=2,max=50"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,password"`
	Phones   []*phoneRequest `json:"phones" binding:"omitempty,dive"`
}

// SignUp maneja POST /api/user/sign-up.
func (h *UserHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sign-up request", zap.Error(err))
		writeError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	phones := make([]*service.PhoneInput, 0, len(req.Phones))
	for _, p := range req.Phones {
		if p == nil {
			phones = append(phones, nil)
			continue
		}
		phones = append(phones, &service.PhoneInput{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}

	view, err := h.userServ.SignUp(c.Request.Context(), service.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phones:   phones,
	})
	if err != nil {
		status, msg := signUpError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("sign-up failed", zap.Error(err))
		} else {
			h.logger.Warn("sign-up rejected", zap.String("email", req.Email), zap.Error(err))
		}
		writeError(c, status, msg)
		return
	}

	c.JSON(http.StatusCreated, view)
}
