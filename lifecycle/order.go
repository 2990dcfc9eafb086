package lifecycle

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status represents all possible states of a marketplace order
type Status string

const (
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// DeliveryType is how the customer receives the order
type DeliveryType string

const (
	DeliveryDelivery DeliveryType = "delivery"
	DeliveryPickup   DeliveryType = "pickup"
)

// DefaultPreparationMinutes is assumed when an inbound order carries no estimate
const DefaultPreparationMinutes = 15

// Item is a single order line as shown on the live board
type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order is the live-board view of one customer purchase. Instances are
// immutable once published in a snapshot: the engine replaces the whole
// struct on every change instead of mutating it in place.
type Order struct {
	ID                  string       `json:"id"`
	Customer            string       `json:"customer"`
	Items               []Item       `json:"items"`
	Status              Status       `json:"status"`
	DeliveryType        DeliveryType `json:"delivery_type"`
	OrderTime           time.Time    `json:"order_time"`
	Address             string       `json:"address,omitempty"`
	Phone               string       `json:"phone,omitempty"`
	SpecialInstructions string       `json:"special_instructions,omitempty"`
	PreparationTime     int          `json:"preparation_time"` // minutes

	// Derived preparation-window fields, maintained by the engine.
	IsPreparing        bool       `json:"is_preparing"`
	StartedPreparingAt *time.Time `json:"started_preparing_at,omitempty"`
	EstimatedReady     *time.Time `json:"estimated_ready,omitempty"`
	TimeElapsed        int        `json:"time_elapsed"` // seconds, meaningful only while preparing
	CompletedTime      *time.Time `json:"completed_time,omitempty"`
}

// DecodeOrder parses an inbound push payload. Only syntactically broken JSON
// is an error; missing or unknown fields are left for Normalize to repair.
func DecodeOrder(payload []byte) (Order, error) {
	var o Order
	if err := json.Unmarshal(payload, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Normalize repairs a raw order into a consistent engine entry: unknown
// status and delivery type fall back to their defaults, quantities and
// prices are floored, and a preparation window is opened for orders that
// enter in the preparing state.
func Normalize(o Order, now time.Time) Order {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	switch o.Status {
	case StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
	default:
		o.Status = StatusPreparing
	}
	switch o.DeliveryType {
	case DeliveryDelivery, DeliveryPickup:
	default:
		o.DeliveryType = DeliveryDelivery
	}
	if o.PreparationTime <= 0 {
		o.PreparationTime = DefaultPreparationMinutes
	}
	if o.OrderTime.IsZero() {
		o.OrderTime = now
	}

	items := make([]Item, len(o.Items))
	for i, it := range o.Items {
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if it.UnitPrice < 0 {
			it.UnitPrice = 0
		}
		items[i] = it
	}
	o.Items = items

	if o.Status == StatusPreparing {
		started := now
		ready := now.Add(time.Duration(o.PreparationTime) * time.Minute)
		o.IsPreparing = true
		o.StartedPreparingAt = &started
		o.EstimatedReady = &ready
		o.TimeElapsed = 0
	} else {
		o.IsPreparing = false
		o.StartedPreparingAt = nil
		o.TimeElapsed = 0
	}
	if o.Status == StatusCompleted && o.CompletedTime == nil {
		completed := now
		o.CompletedTime = &completed
	}
	return o
}
