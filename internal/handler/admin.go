package handler

import (
	"fmt"
	"net/http"

	"coffeeshop-app/config"
	"coffeeshop-app/internal/models"
	"coffeeshop-app/internal/utils"
	"coffeeshop-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{}

type CreateEmployeeRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	RoleID   uint   `json:"role_id" binding:"required"`
	Mobile   string `json:"mobile"`
}

// generateEmployeeID builds a role-prefixed id like BAR-0007.
func generateEmployeeID(roleID uint) string {
	var role models.Role
	database.DB.First(&role, roleID)

	prefix := "EMP"
	switch role.Name {
	case "barista":
		if p := config.AppConfig.Defaults.BaristaPrefix; p != "" {
			prefix = p
		} else {
			prefix = "BAR"
		}
	case "manager":
		if p := config.AppConfig.Defaults.ManagerPrefix; p != "" {
			prefix = p
		} else {
			prefix = "MGR"
		}
	case "admin":
		prefix = "ADM"
	}

	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	return fmt.Sprintf("%s-%04d", prefix, count+1)
}

func (h *AdminHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		RoleID:       req.RoleID,
		EmployeeID:   generateEmployeeID(req.RoleID),
		Mobile:       req.Mobile,
		IsActive:     true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user_id": user.ID, "employee_id": user.EmployeeID})
}

func (h *AdminHandler) ListEmployees(c *gin.Context) {
	var users []models.User
	if err := database.DB.Preload("Role").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UpdateEmployee(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Username string `json:"username"`
		Mobile   string `json:"mobile"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Mobile != "" {
		updates["mobile"] = req.Mobile
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee updated"})
}

func (h *AdminHandler) UpdateEmployeeRole(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		RoleID uint `json:"role_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", id).Update("role_id", req.RoleID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

func (h *AdminHandler) UpdateEmployeeStatus(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		IsActive       *bool  `json:"is_active" binding:"required"`
		InactiveReason string `json:"inactive_reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"is_active":       *req.IsActive,
		"inactive_reason": req.InactiveReason,
	}
	if err := database.DB.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *AdminHandler) ResetEmployeePassword(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hashedPassword).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset"})
}

func (h *AdminHandler) GetLoginHistory(c *gin.Context) {
	var history []models.LoginHistory
	if err := database.DB.Preload("User").Order("login_time desc").Limit(100).Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch login history"})
		return
	}
	c.JSON(http.StatusOK, history)
}
