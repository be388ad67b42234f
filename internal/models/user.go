package models

import "gorm.io/gorm"

// DefaultRole is assigned to every self-registered user. Roles are a display
// tag only; nothing is authorized by them.
const DefaultRole = "engineer"

type User struct {
	gorm.Model
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:120;uniqueIndex;not null"` // stored lower-cased
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null;default:engineer"`

	// optional profile fields, free-form
	Phone   string `gorm:"size:20"`
	Address string `gorm:"size:255"`
	DOB     string `gorm:"size:20"`

	Records []BBSRecord `gorm:"foreignKey:OwnerID"`
}
