package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
)

// AdminGetAllUsers lists every account, optionally by role
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllVendors lists every vendor profile
func AdminGetAllVendors(c *gin.Context) {
	var vendors []models.Vendor
	config.DB.Preload("Owner").Find(&vendors)
	c.JSON(http.StatusOK, gin.H{"count": len(vendors), "vendors": vendors})
}

// AdminGetAllOrders lists every persisted order, optionally by status
func AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items").Preload("Customer").Preload("Vendor")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"count":         len(orders),
		"order_summary": summary,
		"orders":        orders,
	})
}

// AdminListHygieneApplications lists badge applications awaiting review
func AdminListHygieneApplications(c *gin.Context) {
	var applications []models.HygieneApplication
	query := config.DB.Preload("Vendor")
	status := c.DefaultQuery("status", string(models.HygienePending))
	if status != "all" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at asc").Find(&applications)
	c.JSON(http.StatusOK, gin.H{"count": len(applications), "applications": applications})
}

type DecideHygieneRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// AdminDecideHygieneApplication approves or rejects a pending application
// and moves the vendor's denormalized badge status along with it
func AdminDecideHygieneApplication(c *gin.Context) {
	adminID := middleware.GetUserID(c)

	var application models.HygieneApplication
	if err := config.DB.First(&application, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	if application.Status != models.HygienePending {
		c.JSON(http.StatusConflict, gin.H{"error": "Application already decided", "status": application.Status})
		return
	}

	var req DecideHygieneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.HygieneRejected
	if req.Approve {
		status = models.HygieneApproved
	}
	now := time.Now()
	if err := config.DB.Model(&application).Updates(map[string]interface{}{
		"status":     status,
		"note":       req.Note,
		"decided_by": adminID,
		"decided_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record decision"})
		return
	}
	config.DB.Model(&models.Vendor{}).Where("id = ?", application.VendorID).
		Update("hygiene_badge", status)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application " + string(status),
		"application": application,
	})
}
