package handler

import (
	"github.com/gin-gonic/gin"

	"voucherhub/internal/service"
	"voucherhub/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Passcode string `json:"passcode" binding:"required"`
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and passcode required")
		return
	}

	tokens, err := h.authService.AdminLogin(c.Request.Context(), req.Email, req.Passcode)
	if err != nil {
		writeServiceError(c, err, "login failed")
		return
	}
	response.Success(c, tokens)
}

func (h *AuthHandler) AttendantLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and passcode required")
		return
	}

	tokens, err := h.authService.AttendantLogin(c.Request.Context(), req.Email, req.Passcode)
	if err != nil {
		writeServiceError(c, err, "login failed")
		return
	}
	response.Success(c, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, err := getClaims(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		writeServiceError(c, err, "logout failed")
		return
	}
	response.Success(c, nil)
}
