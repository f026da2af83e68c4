package handlers

import (
	"net/http"
	"voidwebsite/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth  services.AuthService
	users services.UserService
}

func NewAuthHandler(auth services.AuthService, users services.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Login failed. Please try again.")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Me returns the signed-in admin.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	user, err := h.users.GetUserByID(c.Request.Context(), claims.Subject)
	if err != nil {
		respondError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, user)
}
