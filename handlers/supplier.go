package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
)

type InventoryItemRequest struct {
	Name  string  `json:"name" binding:"required"`
	Unit  string  `json:"unit"`
	Price float64 `json:"price" binding:"required,min=0"`
	Stock int     `json:"stock" binding:"min=0"`
}

// AddInventoryItem creates a stock item in the supplier's catalog
func AddInventoryItem(c *gin.Context) {
	supplierID := middleware.GetUserID(c)

	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.InventoryItem{
		SupplierID: supplierID,
		Name:       req.Name,
		Unit:       req.Unit,
		Price:      req.Price,
		Stock:      req.Stock,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add inventory item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Inventory item added", "item": item})
}

// ListInventory returns the supplier's own stock catalog
func ListInventory(c *gin.Context) {
	supplierID := middleware.GetUserID(c)
	var items []models.InventoryItem
	query := config.DB.Where("supplier_id = ?", supplierID)
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	query.Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// UpdateInventoryItem updates price and stock of one item
func UpdateInventoryItem(c *gin.Context) {
	supplierID := middleware.GetUserID(c)

	var item models.InventoryItem
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}
	if item.SupplierID != supplierID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This inventory item does not belong to you"})
		return
	}

	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item.Name = req.Name
	item.Unit = req.Unit
	item.Price = req.Price
	item.Stock = req.Stock
	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item updated", "item": item})
}

// DeleteInventoryItem removes one item from the catalog
func DeleteInventoryItem(c *gin.Context) {
	supplierID := middleware.GetUserID(c)

	var item models.InventoryItem
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}
	if item.SupplierID != supplierID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This inventory item does not belong to you"})
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inventory item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted", "item_id": item.ID})
}

type CreateQuoteRequest struct {
	VendorID    uint    `json:"vendor_id" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,min=0"`
}

// CreateQuote submits a supply quote to a vendor
func CreateQuote(c *gin.Context) {
	supplierID := middleware.GetUserID(c)

	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vendor models.Vendor
	if err := config.DB.First(&vendor, req.VendorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	quote := models.Quote{
		SupplierID:  supplierID,
		VendorID:    req.VendorID,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if err := config.DB.Create(&quote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quote"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Quote submitted", "quote": quote})
}

// ListMyQuotes returns the supplier's submitted quotes
func ListMyQuotes(c *gin.Context) {
	supplierID := middleware.GetUserID(c)
	var quotes []models.Quote
	config.DB.Where("supplier_id = ?", supplierID).Order("created_at desc").Find(&quotes)
	c.JSON(http.StatusOK, gin.H{"count": len(quotes), "quotes": quotes})
}

type CreateInvoiceRequest struct {
	VendorID uint `json:"vendor_id" binding:"required"`
	DueDays  int  `json:"due_days"`
	Items    []struct {
		Description string  `json:"description" binding:"required"`
		Quantity    int     `json:"quantity" binding:"required,min=1"`
		UnitPrice   float64 `json:"unit_price" binding:"required,min=0"`
	} `json:"items" binding:"required,min=1"`
}

// CreateInvoice builds an invoice with line items for a vendor
func CreateInvoice(c *gin.Context) {
	supplierID := middleware.GetUserID(c)

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vendor models.Vendor
	if err := config.DB.First(&vendor, req.VendorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	var items []models.InvoiceItem
	var total float64
	for _, it := range req.Items {
		total += float64(it.Quantity) * it.UnitPrice
		items = append(items, models.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	dueDays := req.DueDays
	if dueDays <= 0 {
		dueDays = 30
	}
	now := time.Now()
	invoice := models.Invoice{
		ID:         uuid.NewString(),
		Number:     fmt.Sprintf("INV-%d-%d", supplierID, now.UnixMilli()),
		SupplierID: supplierID,
		VendorID:   req.VendorID,
		Status:     models.InvoiceSent,
		Total:      total,
		IssuedAt:   now,
		DueAt:      now.AddDate(0, 0, dueDays),
		Items:      items,
	}
	if err := config.DB.Create(&invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Invoice created", "invoice": invoice})
}

// ListInvoices returns the supplier's invoices, optionally by status
func ListInvoices(c *gin.Context) {
	supplierID := middleware.GetUserID(c)
	var invoices []models.Invoice
	query := config.DB.Preload("Items").Preload("Vendor").Where("supplier_id = ?", supplierID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&invoices)
	c.JSON(http.StatusOK, gin.H{"count": len(invoices), "invoices": invoices})
}
