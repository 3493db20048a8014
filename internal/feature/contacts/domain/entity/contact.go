// Package entity defines the domain entities for the contacts feature.
package entity

import "time"

// Contact represents an address-book entry owned by a user.
type Contact struct {
	ID        uint      `gorm:"primaryKey"`
	FirstName string    `gorm:"size:100;not null"`
	LastName  string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:100;index;not null"`
	Phone     string    `gorm:"size:50;not null"`
	Birthday  time.Time `gorm:"type:date;not null"`
	ExtraData string    `gorm:"type:text"`

	// OwnerID ties the contact to the user who created it. Every query is
	// scoped by it.
	OwnerID uint `gorm:"index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
