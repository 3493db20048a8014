package dto

// LoginForm represents the form body for the /auth/login endpoint.
// The username field carries the email, OAuth2 password-grant style.
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}
