package dto

// ResetRequestReq represents the body for /auth/password-reset-request.
type ResetRequestReq struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetConfirmReq represents the body for /auth/password-reset.
type ResetConfirmReq struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}
