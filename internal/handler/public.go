package handler

import (
	"net/http"

	"coffeeshop-app/config"
	"coffeeshop-app/internal/models"
	"coffeeshop-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type PublicHandler struct{}

func (h *PublicHandler) GetSiteInfo(c *gin.Context) {
	c.JSON(http.StatusOK, config.AppConfig.Site)
}

func (h *PublicHandler) GetPublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"shop_name":    config.AppConfig.Defaults.ShopName,
		"shop_address": config.AppConfig.Defaults.ShopAddress,
		"shop_phone":   config.AppConfig.Defaults.ShopPhone,
	})
}

func (h *PublicHandler) ListPublicMenu(c *gin.Context) {
	var products []models.Product
	if err := database.DB.Preload("Category").Where("is_active = ?", true).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}
	c.JSON(http.StatusOK, products)
}
