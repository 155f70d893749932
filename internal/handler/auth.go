package handler

import (
	"net/http"

	"stockdash/internal/apierror"
	"stockdash/internal/dto"
	"stockdash/internal/middleware"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary      Authenticate and obtain a token pair
// @Tags         auth
// @Param        payload  body  dto.LoginRequest  true  "Credentials"
// @Success      200  {object}  dto.LoginResponse
// @Failure      401  {object}  apierror.APIError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := dto.LoginRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new pair
// @Tags         auth
// @Param        payload  body  dto.RefreshRequest  true  "Refresh token"
// @Success      200  {object}  dto.LoginResponse
// @Failure      401  {object}  apierror.APIError
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	req := dto.RefreshRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary      Current token identity
// @Tags         auth
// @Success      200  {object}  middleware.JWTClaims
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	c.JSON(http.StatusOK, claims)
}
