package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/xylem-api/internal/application/service"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/request"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/response"
	"github.com/sangkips/xylem-api/internal/presentation/http/middleware"
	"github.com/sangkips/xylem-api/pkg/apperror"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges a username or email and password for a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Login(),
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Login successful", tokenBody(output))
}

// RefreshToken issues a new token pair from a refresh token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.Refresh)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Token refreshed", tokenBody(output))
}

// Profile returns the logged in user
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}
	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profile retrieved successfully", user)
}

// ChangePassword replaces the logged in user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}
	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		response.Error(c, apperror.NewFieldError("confirm_password", "The two password fields didn't match."))
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), userID, &service.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "New password has been saved.", nil)
}

func tokenBody(out *service.LoginOutput) gin.H {
	return gin.H{
		"user": gin.H{
			"id":                          out.User.ID,
			"username":                    out.User.Username,
			"email":                       out.User.Email,
			"first_name":                  out.User.FirstName,
			"is_admin":                    out.User.IsAdmin,
			"is_marketing_representative": out.User.IsMarketingRepresentative,
		},
		"access":     out.AccessToken,
		"refresh":    out.RefreshToken,
		"token_type": "Bearer",
	}
}
