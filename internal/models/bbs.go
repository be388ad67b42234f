package models

import "gorm.io/gorm"

// BBSRecord is a single bar bending schedule entry. TotalWeight is derived
// from the geometric fields on every write and never taken from the client.
type BBSRecord struct {
	gorm.Model
	ProjectName string  `gorm:"size:100"`
	ElementType string  `gorm:"size:50"`
	Diameter    float64 // mm
	Length      float64 // m
	Quantity    int
	TotalWeight float64 // kg

	OwnerID uint `gorm:"index;not null"`
}
