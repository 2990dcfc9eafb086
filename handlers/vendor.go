package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
)

// vendorForOwner loads the caller's vendor profile, answering 404 itself
func vendorForOwner(c *gin.Context) (models.Vendor, bool) {
	ownerID := middleware.GetUserID(c)
	var vendor models.Vendor
	if err := config.DB.Where("owner_id = ?", ownerID).First(&vendor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No vendor profile found for your account"})
		return models.Vendor{}, false
	}
	return vendor, true
}

// GetMyVendor returns the caller's vendor profile with menu
func GetMyVendor(c *gin.Context) {
	vendor, ok := vendorForOwner(c)
	if !ok {
		return
	}
	config.DB.Preload("MenuItems").First(&vendor, vendor.ID)
	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

type UpdateVendorRequest struct {
	Name        string `json:"name"`
	Cuisine     string `json:"cuisine"`
	Address     string `json:"address"`
	Description string `json:"description"`
	IsOpen      *bool  `json:"is_open"`
}

// UpdateVendor updates the caller's vendor profile
func UpdateVendor(c *gin.Context) {
	vendor, ok := vendorForOwner(c)
	if !ok {
		return
	}

	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Cuisine != "" {
		updates["cuisine"] = req.Cuisine
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.IsOpen != nil {
		updates["is_open"] = *req.IsOpen
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&vendor).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vendor"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vendor updated", "vendor": vendor})
}

type MenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Category    string  `json:"category"`
	IsAvailable *bool   `json:"is_available"`
	IsVeg       bool    `json:"is_veg"`
}

// AddMenuItem creates a menu item for the caller's vendor
func AddMenuItem(c *gin.Context) {
	vendor, ok := vendorForOwner(c)
	if !ok {
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		VendorID:    vendor.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
		IsVeg:       req.IsVeg,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// UpdateMenuItem updates one of the caller's menu items
func UpdateMenuItem(c *gin.Context) {
	vendor, ok := vendorForOwner(c)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if item.VendorID != vendor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This menu item does not belong to your vendor"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	item.IsVeg = req.IsVeg
	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes one of the caller's menu items
func DeleteMenuItem(c *gin.Context) {
	vendor, ok := vendorForOwner(c)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if item.VendorID != vendor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This menu item does not belong to your vendor"})
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted", "item_id": item.ID})
}

// GetMyReviews lists the review thread for the caller's vendor
func GetMyReviews(c *gin.Context) {
	vendor, ok := vendorForOwner(c)
	if !ok {
		return
	}
	var reviews []models.Review
	config.DB.Preload("Customer").
		Where("vendor_id = ?", vendor.ID).
		Order("created_at desc").
		Find(&reviews)
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

type ReplyReviewRequest struct {
	Reply string `json:"reply" binding:"required"`
}

// ReplyReview posts the vendor's reply on one of its reviews
func ReplyReview(c *gin.Context) {
	vendor, ok := vendorForOwner(c)
	if !ok {
		return
	}

	var review models.Review
	if err := config.DB.First(&review, c.Param("reviewId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	if review.VendorID != vendor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This review does not belong to your vendor"})
		return
	}

	var req ReplyReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&review).Updates(map[string]interface{}{
		"reply":      req.Reply,
		"replied_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post reply"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reply posted", "review": review})
}

type HygieneApplyRequest struct {
	Checklist string `json:"checklist" binding:"required"`
}

// ApplyHygieneBadge submits a hygiene-badge application. One open
// application at a time; the denormalized badge status moves to pending.
func ApplyHygieneBadge(c *gin.Context) {
	vendor, ok := vendorForOwner(c)
	if !ok {
		return
	}

	if vendor.HygieneBadge == models.HygienePending {
		c.JSON(http.StatusConflict, gin.H{"error": "An application is already under review"})
		return
	}
	if vendor.HygieneBadge == models.HygieneApproved {
		c.JSON(http.StatusConflict, gin.H{"error": "Your hygiene badge is already approved"})
		return
	}

	var req HygieneApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application := models.HygieneApplication{
		VendorID:  vendor.ID,
		Status:    models.HygienePending,
		Checklist: req.Checklist,
	}
	if err := config.DB.Create(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}
	config.DB.Model(&vendor).Update("hygiene_badge", models.HygienePending)

	c.JSON(http.StatusCreated, gin.H{"message": "Hygiene badge application submitted", "application": application})
}

// GetHygieneStatus returns the badge status and application history
func GetHygieneStatus(c *gin.Context) {
	vendor, ok := vendorForOwner(c)
	if !ok {
		return
	}
	var applications []models.HygieneApplication
	config.DB.Where("vendor_id = ?", vendor.ID).Order("created_at desc").Find(&applications)
	c.JSON(http.StatusOK, gin.H{
		"badge":        vendor.HygieneBadge,
		"applications": applications,
	})
}

// GetMyQuotes lists supplier quotes addressed to the caller's vendor
func GetMyQuotes(c *gin.Context) {
	vendor, ok := vendorForOwner(c)
	if !ok {
		return
	}
	var quotes []models.Quote
	query := config.DB.Preload("Supplier").Where("vendor_id = ?", vendor.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&quotes)
	c.JSON(http.StatusOK, gin.H{"count": len(quotes), "quotes": quotes})
}

type DecideQuoteRequest struct {
	Accept bool `json:"accept"`
}

// DecideQuote accepts or declines a pending supplier quote
func DecideQuote(c *gin.Context) {
	vendor, ok := vendorForOwner(c)
	if !ok {
		return
	}

	var quote models.Quote
	if err := config.DB.First(&quote, c.Param("quoteId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		return
	}
	if quote.VendorID != vendor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This quote is not addressed to your vendor"})
		return
	}
	if quote.Status != models.QuotePending {
		c.JSON(http.StatusConflict, gin.H{"error": "Quote already decided", "status": quote.Status})
		return
	}

	var req DecideQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.QuoteDeclined
	if req.Accept {
		status = models.QuoteAccepted
	}
	if err := config.DB.Model(&quote).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quote"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quote " + string(status), "quote": quote})
}
