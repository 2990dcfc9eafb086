package models

import "time"

// HygieneStatus tracks a vendor's hygiene-badge application
type HygieneStatus string

const (
	HygieneNotApplied HygieneStatus = "not_applied"
	HygienePending    HygieneStatus = "pending"
	HygieneApproved   HygieneStatus = "approved"
	HygieneRejected   HygieneStatus = "rejected"
)

type Vendor struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	OwnerID      uint          `json:"owner_id" gorm:"not null"`
	Owner        User          `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name         string        `json:"name" gorm:"not null"`
	Cuisine      string        `json:"cuisine"`
	Address      string        `json:"address"`
	Description  string        `json:"description"`
	IsOpen       bool          `json:"is_open" gorm:"default:true"`
	Rating       float64       `json:"rating" gorm:"default:0"`
	HygieneBadge HygieneStatus `json:"hygiene_badge" gorm:"default:'not_applied'"`
	MenuItems    []MenuItem    `json:"menu_items,omitempty" gorm:"foreignKey:VendorID"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type MenuItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	VendorID    uint      `json:"vendor_id" gorm:"not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category"`
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	IsVeg       bool      `json:"is_veg" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HygieneApplication is one badge application with its review outcome.
// The current status is also denormalized onto Vendor.HygieneBadge so the
// storefront can show it without a join.
type HygieneApplication struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	VendorID  uint          `json:"vendor_id" gorm:"not null"`
	Vendor    Vendor        `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Status    HygieneStatus `json:"status" gorm:"not null;default:'pending'"`
	Checklist string        `json:"checklist"` // vendor-submitted compliance notes
	Note      string        `json:"note"`      // reviewer note
	DecidedBy *uint         `json:"decided_by"`
	DecidedAt *time.Time    `json:"decided_at"`
	CreatedAt time.Time     `json:"created_at"`
}
