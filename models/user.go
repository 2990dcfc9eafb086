package models

import (
	"time"

	"food-marketplace-api/authgate"
)

type User struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Name          string        `json:"name" gorm:"not null"`
	Email         string        `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string        `json:"-" gorm:"not null"`
	Role          authgate.Role `json:"role" gorm:"not null;default:'customer'"`
	Phone         string        `json:"phone"`
	LoyaltyPoints int           `json:"loyalty_points" gorm:"default:0"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
