package dto

import "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/domain/entity"

// UserResponse is the public projection of a user returned by the API.
// The password hash is never part of it.
type UserResponse struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name,omitempty"`
	IsVerified bool   `json:"is_verified"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

// NewUserResponse builds a UserResponse from a user entity.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		IsVerified: u.IsVerified,
		AvatarURL:  u.AvatarURL,
	}
}
