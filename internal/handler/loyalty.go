package handler

import (
	"net/http"
	"time"

	"coffeeshop-app/config"
	"coffeeshop-app/internal/models"
	"coffeeshop-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type LoyaltyHandler struct{}

func (h *LoyaltyHandler) ListNotifications(c *gin.Context) {
	notifications := []models.LoyaltyNotification{}
	query := database.DB.Preload("Customer").Order("created_at desc")

	if c.Query("unread") == "true" {
		query = query.Where("`read` = ?", false)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	if err := query.Limit(100).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *LoyaltyHandler) MarkNotificationRead(c *gin.Context) {
	res := database.DB.Model(&models.LoyaltyNotification{}).
		Where("id = ?", c.Param("id")).Update("read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *LoyaltyHandler) ClearNotifications(c *gin.Context) {
	query := database.DB.Where("`read` = ?", true)
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if err := query.Delete(&models.LoyaltyNotification{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Read notifications cleared"})
}

func (h *LoyaltyHandler) ListRewards(c *gin.Context) {
	rewards := []models.LoyaltyReward{}
	query := database.DB.Preload("Customer").Order("issued_at desc")

	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if c.Query("active") == "true" {
		query = query.Where("used = ? AND expires_at > ?", false, time.Now())
	}

	if err := query.Find(&rewards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rewards"})
		return
	}
	c.JSON(http.StatusOK, rewards)
}

// RedeemReward marks a reward as used. Used and expired rewards are rejected.
func (h *LoyaltyHandler) RedeemReward(c *gin.Context) {
	var reward models.LoyaltyReward
	if err := database.DB.Where("code = ?", c.Param("code")).First(&reward).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}

	if reward.Used {
		c.JSON(http.StatusConflict, gin.H{"error": "Reward already redeemed"})
		return
	}
	now := time.Now()
	if reward.Expired(now) {
		c.JSON(http.StatusConflict, gin.H{"error": "Reward has expired"})
		return
	}

	if err := database.DB.Model(&reward).Updates(map[string]interface{}{
		"used":    true,
		"used_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reward redeemed", "reward": reward})
}

func (h *LoyaltyHandler) GetProgramSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"points_per_purchase":  config.AppConfig.Loyalty.PointsPerPurchase,
		"reward_threshold":     config.AppConfig.Loyalty.RewardThreshold,
		"reward_validity_days": config.AppConfig.Loyalty.RewardValidityDays,
	})
}

// UpdateProgramSettings adjusts the loyalty constants at runtime. Applies to
// checkouts from the next request on; already-issued rewards keep their
// original expiry.
func (h *LoyaltyHandler) UpdateProgramSettings(c *gin.Context) {
	var req struct {
		PointsPerPurchase  *int `json:"points_per_purchase" binding:"omitempty,gt=0"`
		RewardThreshold    *int `json:"reward_threshold" binding:"omitempty,gt=0"`
		RewardValidityDays *int `json:"reward_validity_days" binding:"omitempty,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.PointsPerPurchase != nil {
		config.AppConfig.Loyalty.PointsPerPurchase = *req.PointsPerPurchase
	}
	if req.RewardThreshold != nil {
		config.AppConfig.Loyalty.RewardThreshold = *req.RewardThreshold
	}
	if req.RewardValidityDays != nil {
		config.AppConfig.Loyalty.RewardValidityDays = *req.RewardValidityDays
	}

	c.JSON(http.StatusOK, gin.H{"message": "Loyalty settings updated"})
}
