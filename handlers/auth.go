package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"food-marketplace-api/authgate"
	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
)

// VendorSignup carries the extra fields a vendor account requires
type VendorSignup struct {
	BusinessName string `json:"business_name" binding:"required"`
	Cuisine      string `json:"cuisine"`
	Address      string `json:"address"`
	Description  string `json:"description"`
}

// SupplierSignup carries the extra fields a supplier account requires
type SupplierSignup struct {
	CompanyName  string `json:"company_name" binding:"required"`
	ContactPhone string `json:"contact_phone"`
}

// RegisterRequest is a role-tagged sign-up: exactly the variant matching the
// declared role may be present, anything else is rejected at the boundary.
type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     authgate.Role   `json:"role" binding:"required"`
	Phone    string          `json:"phone"`
	Vendor   *VendorSignup   `json:"vendor"`
	Supplier *SupplierSignup `json:"supplier"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: customer, vendor, supplier, or admin"})
		return
	}
	if req.Role != authgate.RoleVendor && req.Vendor != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vendor details are only accepted for the vendor role"})
		return
	}
	if req.Role != authgate.RoleSupplier && req.Supplier != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier details are only accepted for the supplier role"})
		return
	}
	if req.Role == authgate.RoleVendor && req.Vendor == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vendor registration requires vendor details"})
		return
	}
	if req.Role == authgate.RoleSupplier && req.Supplier == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier registration requires supplier details"})
		return
	}

	// Check email uniqueness
	var existing models.User
	if result := config.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Phone:        req.Phone,
	}
	if req.Role == authgate.RoleSupplier && req.Supplier.ContactPhone != "" {
		user.Phone = req.Supplier.ContactPhone
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if req.Role == authgate.RoleVendor {
		vendor := models.Vendor{
			OwnerID:     user.ID,
			Name:        req.Vendor.BusinessName,
			Cuisine:     req.Vendor.Cuisine,
			Address:     req.Vendor.Address,
			Description: req.Vendor.Description,
		}
		if err := config.DB.Create(&vendor).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vendor profile"})
			return
		}
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"home":    authgate.HomePath(user.Role),
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login authenticates a user and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"home":    authgate.HomePath(authgate.NormalizeRole(string(user.Role))),
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateProfile changes display name and phone. Role is immutable here.
func UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}
