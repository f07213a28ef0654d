package request

// LoginRequest accepts either a username or an email address
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Login returns whichever identifier the client sent
func (r *LoginRequest) Login() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}
