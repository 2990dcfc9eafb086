package models

import "time"

type Review struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	VendorID   uint       `json:"vendor_id" gorm:"not null"`
	CustomerID uint       `json:"customer_id" gorm:"not null"`
	Customer   User       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Rating     int        `json:"rating" gorm:"not null"` // 1-5
	Comment    string     `json:"comment"`
	Reply      string     `json:"reply"` // vendor's reply, empty until answered
	RepliedAt  *time.Time `json:"replied_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

type Reward struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	PointsCost  int       `json:"points_cost" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

type RewardRedemption struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null"`
	RewardID    uint      `json:"reward_id" gorm:"not null"`
	Reward      Reward    `json:"reward,omitempty" gorm:"foreignKey:RewardID"`
	PointsSpent int       `json:"points_spent" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

type InventoryItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SupplierID uint      `json:"supplier_id" gorm:"not null"`
	Name       string    `json:"name" gorm:"not null"`
	Unit       string    `json:"unit"` // kg, litre, crate...
	Price      float64   `json:"price" gorm:"not null"`
	Stock      int       `json:"stock" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// QuoteStatus is the vendor's answer to a supplier quote
type QuoteStatus string

const (
	QuotePending  QuoteStatus = "pending"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteDeclined QuoteStatus = "declined"
)

type Quote struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	SupplierID  uint        `json:"supplier_id" gorm:"not null"`
	Supplier    User        `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	VendorID    uint        `json:"vendor_id" gorm:"not null"`
	Description string      `json:"description" gorm:"not null"`
	Amount      float64     `json:"amount" gorm:"not null"`
	Status      QuoteStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// InvoiceStatus follows the supplier invoicing flow
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
)

type Invoice struct {
	ID         string        `json:"id" gorm:"primaryKey"` // uuid
	Number     string        `json:"number" gorm:"uniqueIndex;not null"`
	SupplierID uint          `json:"supplier_id" gorm:"not null"`
	VendorID   uint          `json:"vendor_id" gorm:"not null"`
	Vendor     Vendor        `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Status     InvoiceStatus `json:"status" gorm:"not null;default:'draft'"`
	Total      float64       `json:"total"`
	IssuedAt   time.Time     `json:"issued_at"`
	DueAt      time.Time     `json:"due_at"`
	Items      []InvoiceItem `json:"items,omitempty" gorm:"foreignKey:InvoiceID"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type InvoiceItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	InvoiceID   string  `json:"invoice_id" gorm:"not null;index"`
	Description string  `json:"description" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	UnitPrice   float64 `json:"unit_price" gorm:"not null"`
}
