package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"food-marketplace-api/config"
	"food-marketplace-api/lifecycle"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
)

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Items.MenuItem").Preload("Vendor").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with elapsed time
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.
		Preload("Items.MenuItem").
		Preload("Vendor").
		First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	elapsed := time.Since(order.CreatedAt).Minutes()
	c.JSON(http.StatusOK, gin.H{
		"order":           order,
		"minutes_elapsed": int(elapsed),
	})
}

type CreateReviewRequest struct {
	VendorID uint   `json:"vendor_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// CreateReview posts a review for a vendor the customer has ordered from
func CreateReview(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vendor models.Vendor
	if err := config.DB.First(&vendor, req.VendorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	var completed int64
	config.DB.Model(&models.Order{}).
		Where("customer_id = ? AND vendor_id = ? AND status = ?", customerID, req.VendorID, lifecycle.StatusCompleted).
		Count(&completed)
	if completed == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You can only review vendors you have completed an order with"})
		return
	}

	review := models.Review{
		VendorID:   req.VendorID,
		CustomerID: customerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := config.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	// Refresh the vendor's running average
	var avg float64
	config.DB.Model(&models.Review{}).Where("vendor_id = ?", req.VendorID).
		Select("COALESCE(AVG(rating), 0)").Scan(&avg)
	config.DB.Model(&vendor).Update("rating", avg)

	c.JSON(http.StatusCreated, gin.H{"message": "Review posted", "review": review})
}

// ListRewards returns the active loyalty reward catalog
func ListRewards(c *gin.Context) {
	var rewards []models.Reward
	config.DB.Where("is_active = ?", true).Find(&rewards)

	var user models.User
	config.DB.First(&user, middleware.GetUserID(c))

	c.JSON(http.StatusOK, gin.H{
		"points":  user.LoyaltyPoints,
		"count":   len(rewards),
		"rewards": rewards,
	})
}

// RedeemReward exchanges loyalty points for a reward
func RedeemReward(c *gin.Context) {
	userID := middleware.GetUserID(c)
	rewardID := c.Param("id")

	var reward models.Reward
	if err := config.DB.First(&reward, rewardID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}
	if !reward.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reward is no longer available"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.LoyaltyPoints < reward.PointsCost {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Not enough loyalty points",
			"points":   user.LoyaltyPoints,
			"required": reward.PointsCost,
		})
		return
	}

	redemption := models.RewardRedemption{
		UserID:      userID,
		RewardID:    reward.ID,
		PointsSpent: reward.PointsCost,
	}
	if err := config.DB.Create(&redemption).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		return
	}
	config.DB.Model(&user).Update("loyalty_points", user.LoyaltyPoints-reward.PointsCost)

	c.JSON(http.StatusOK, gin.H{
		"message":          "Reward redeemed",
		"redemption":       redemption,
		"remaining_points": user.LoyaltyPoints - reward.PointsCost,
	})
}
