package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"food-marketplace-api/config"
	"food-marketplace-api/lifecycle"
	"food-marketplace-api/models"
)

// ListVendors returns vendors for the storefront (public)
func ListVendors(c *gin.Context) {
	var vendors []models.Vendor
	query := config.DB

	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine LIKE ?", "%"+cuisine+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}
	if badge := c.Query("hygiene_badge"); badge == "approved" {
		query = query.Where("hygiene_badge = ?", models.HygieneApproved)
	}

	query.Find(&vendors)
	c.JSON(http.StatusOK, gin.H{
		"count":   len(vendors),
		"vendors": vendors,
	})
}

// GetVendor returns a single vendor with its menu
func GetVendor(c *gin.Context) {
	var vendor models.Vendor
	if err := config.DB.Preload("MenuItems").First(&vendor, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// GetMenu returns the menu for a specific vendor (public)
func GetMenu(c *gin.Context) {
	vendorID := c.Param("id")
	var vendor models.Vendor
	if err := config.DB.First(&vendor, vendorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	var items []models.MenuItem
	query := config.DB.Where("vendor_id = ?", vendorID)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if isVeg := c.Query("is_veg"); isVeg == "true" {
		query = query.Where("is_veg = ?", true)
	}
	query.Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"vendor": vendor.Name,
		"count":  len(items),
		"menu":   items,
	})
}

// GetVendorReviews returns the review thread for a vendor (public)
func GetVendorReviews(c *gin.Context) {
	vendorID := c.Param("id")
	var reviews []models.Review
	config.DB.Preload("Customer").
		Where("vendor_id = ?", vendorID).
		Order("created_at desc").
		Find(&reviews)
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

// GetStateMachineInfo returns the order state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range lifecycle.AllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []lifecycle.Status{lifecycle.StatusCompleted, lifecycle.StatusCancelled},
		"description":     "Marketplace Order Lifecycle State Machine",
	})
}
