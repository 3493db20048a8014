// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user. Immutable once assigned.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:150;not null"`

	// HashedPassword is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	HashedPassword string `gorm:"size:200;not null"`

	// FullName is the user's optional display name.
	FullName string `gorm:"size:200"`

	// AvatarURL points at the user's avatar on the image host.
	AvatarURL string `gorm:"size:500"`

	// IsVerified reports whether the user's email has been verified.
	IsVerified bool `gorm:"not null;default:false"`

	// IsActive reports whether the account is active.
	IsActive bool `gorm:"not null;default:true"`

	// Role is the user's authorization role: "user" or "admin".
	Role string `gorm:"size:20;not null;default:user"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
