package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"food-marketplace-api/config"
	"food-marketplace-api/lifecycle"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/push"
)

// OrderAPI hosts the order endpoints that touch live state: placement (which
// publishes onto the push channel) and the vendor live board (backed by the
// lifecycle engine). The engine is injected so the handlers own no ambient
// state of their own.
type OrderAPI struct {
	Engine    *lifecycle.Engine
	Publisher push.Publisher
	Log       *zap.Logger
}

func NewOrderAPI(engine *lifecycle.Engine, publisher push.Publisher, log *zap.Logger) *OrderAPI {
	return &OrderAPI{Engine: engine, Publisher: publisher, Log: log}
}

type PlaceOrderRequest struct {
	VendorID            uint                   `json:"vendor_id" binding:"required"`
	DeliveryType        lifecycle.DeliveryType `json:"delivery_type"`
	Address             string                 `json:"address"`
	Phone               string                 `json:"phone"`
	SpecialInstructions string                 `json:"special_instructions"`
	Items               []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// PlaceOrder creates a new order (customer only), persists it, and pushes it
// onto the orders topic so vendor live boards pick it up in real time.
func (a *OrderAPI) PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vendor models.Vendor
	if err := config.DB.First(&vendor, req.VendorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}
	if !vendor.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vendor is currently closed"})
		return
	}

	deliveryType := req.DeliveryType
	if deliveryType != lifecycle.DeliveryPickup {
		deliveryType = lifecycle.DeliveryDelivery
	}
	if deliveryType == lifecycle.DeliveryDelivery && req.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery orders require an address"})
		return
	}

	// Build order items and calculate total
	var orderItems []models.OrderItem
	var total float64
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found"})
			return
		}
		if menuItem.VendorID != req.VendorID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item does not belong to this vendor"})
			return
		}
		if !menuItem.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
			return
		}
		total += menuItem.Price * float64(reqItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   reqItem.Quantity,
			Price:      menuItem.Price,
			Name:       menuItem.Name,
		})
	}

	// Preparation estimate grows with order size
	prepTime := lifecycle.DefaultPreparationMinutes + 2*(len(req.Items)-1)

	order := models.Order{
		ID:                  uuid.NewString(),
		CustomerID:          customerID,
		VendorID:            req.VendorID,
		Status:              lifecycle.StatusPreparing,
		DeliveryType:        deliveryType,
		Address:             req.Address,
		Phone:               req.Phone,
		SpecialInstructions: req.SpecialInstructions,
		PreparationTime:     prepTime,
		TotalPrice:          total,
		Items:               orderItems,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	// Loyalty: one point per whole currency unit spent
	config.DB.Model(&models.User{}).Where("id = ?", customerID).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", int(total)))

	config.DB.Preload("Items.MenuItem").Preload("Vendor").Preload("Customer").First(&order, "id = ?", order.ID)

	a.publish(order)

	c.JSON(http.StatusCreated, gin.H{
		"message":          "Order placed successfully",
		"order":            order,
		"preparation_time": prepTime,
	})
}

// publish pushes the accepted order onto the orders topic. Best effort: a
// publish failure is logged, never surfaced to the customer.
func (a *OrderAPI) publish(order models.Order) {
	payload, err := json.Marshal(order.Live())
	if err != nil {
		a.Log.Error("marshalling order for push failed", zap.Error(err), zap.String("order_id", order.ID))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Publisher.Publish(ctx, []byte(order.ID), payload); err != nil {
		a.Log.Error("pushing order failed", zap.Error(err), zap.String("order_id", order.ID))
	}
}

// CancelOrder cancels the customer's own order while it is still active
func (a *OrderAPI) CancelOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if !lifecycle.CanTransition(order.Status, lifecycle.StatusCancelled) {
		c.JSON(http.StatusOK, gin.H{
			"message":  "Order already settled, nothing to cancel",
			"order_id": order.ID,
			"status":   order.Status,
		})
		return
	}

	if err := config.DB.Model(&order).Update("status", lifecycle.StatusCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}
	a.Engine.Cancel(orderID)

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

// LiveOrders returns the vendor live board: the current engine snapshot run
// through the requested filters, partitioned into active and history, with
// per-status counts over the filtered set.
func (a *OrderAPI) LiveOrders(c *gin.Context) {
	orders := a.Engine.Snapshot()

	orders = lifecycle.Search(orders, c.Query("q"))
	orders = lifecycle.FilterStatus(orders, c.Query("status"))
	orders = lifecycle.FilterDelivery(orders, c.Query("delivery_type"))

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' timestamp, expected RFC3339"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' timestamp, expected RFC3339"})
			return
		}
		to = parsed
	}
	orders = lifecycle.FilterInterval(orders, from, to)

	active, history := lifecycle.Partition(orders)

	c.JSON(http.StatusOK, gin.H{
		"count":         len(orders),
		"order_summary": lifecycle.CountByStatus(orders),
		"active":        active,
		"history":       history,
	})
}

// MarkReady applies the explicit preparing → ready transition from the board
func (a *OrderAPI) MarkReady(c *gin.Context) {
	a.applyBoardTransition(c, a.Engine.MarkReady)
}

// MarkCompleted applies ready → completed from the board
func (a *OrderAPI) MarkCompleted(c *gin.Context) {
	a.applyBoardTransition(c, a.Engine.MarkCompleted)
}

// CancelFromBoard cancels an active order from the board
func (a *OrderAPI) CancelFromBoard(c *gin.Context) {
	a.applyBoardTransition(c, a.Engine.Cancel)
}

// applyBoardTransition runs one engine transition and mirrors the outcome to
// the persisted order. A rejected transition is a no-op, answered with the
// unchanged order rather than an error.
func (a *OrderAPI) applyBoardTransition(c *gin.Context, apply func(string) (lifecycle.Order, bool)) {
	orderID := c.Param("id")

	order, applied := apply(orderID)
	if order.ID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not on the live board"})
		return
	}
	if !applied {
		c.JSON(http.StatusOK, gin.H{
			"message": "No transition applied",
			"order":   order,
		})
		return
	}

	updates := map[string]interface{}{"status": order.Status}
	if order.CompletedTime != nil {
		updates["completed_at"] = *order.CompletedTime
	}
	if err := config.DB.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error; err != nil {
		// board state is authoritative for the view; the write is retried on
		// the next transition of this order
		a.Log.Error("persisting order status failed", zap.Error(err), zap.String("order_id", orderID))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}
