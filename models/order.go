package models

import (
	"strconv"
	"time"

	"food-marketplace-api/lifecycle"
)

// Order is the persisted record of one customer purchase. The live board
// works on lifecycle.Order snapshots instead; Live() bridges the two.
type Order struct {
	ID                  string                 `json:"id" gorm:"primaryKey"` // uuid
	CustomerID          uint                   `json:"customer_id" gorm:"not null"`
	Customer            User                   `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	VendorID            uint                   `json:"vendor_id" gorm:"not null"`
	Vendor              Vendor                 `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Status              lifecycle.Status       `json:"status" gorm:"not null;default:'preparing'"`
	DeliveryType        lifecycle.DeliveryType `json:"delivery_type" gorm:"not null;default:'delivery'"`
	Address             string                 `json:"address"`
	Phone               string                 `json:"phone"`
	SpecialInstructions string                 `json:"special_instructions"`
	PreparationTime     int                    `json:"preparation_time"` // estimated minutes
	TotalPrice          float64                `json:"total_price"`
	CompletedAt         *time.Time             `json:"completed_at"`
	Items               []OrderItem            `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

type OrderItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    string   `json:"order_id" gorm:"not null;index"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
	Price      float64  `json:"price" gorm:"not null"` // snapshot price at time of order
	Name       string   `json:"name"`                  // snapshot name
}

// Live converts the persisted order into its live-board view
func (o Order) Live() lifecycle.Order {
	items := make([]lifecycle.Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, lifecycle.Item{
			ID:        strconv.FormatUint(uint64(it.MenuItemID), 10),
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
		})
	}
	return lifecycle.Order{
		ID:                  o.ID,
		Customer:            o.Customer.Name,
		Items:               items,
		Status:              o.Status,
		DeliveryType:        o.DeliveryType,
		OrderTime:           o.CreatedAt,
		Address:             o.Address,
		Phone:               o.Phone,
		SpecialInstructions: o.SpecialInstructions,
		PreparationTime:     o.PreparationTime,
		CompletedTime:       o.CompletedAt,
	}
}
