package handler

import (
	"fmt"
	"net/http"
	"time"

	"coffeeshop-app/internal/models"
	"coffeeshop-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{}

func (h *SalesHandler) ListSales(c *gin.Context) {
	page := 1
	limit := 10

	if c.Query("page") != "" {
		fmt.Sscanf(c.Query("page"), "%d", &page)
	}
	if c.Query("limit") != "" {
		fmt.Sscanf(c.Query("limit"), "%d", &limit)
	}

	offset := (page - 1) * limit

	var sales []models.Sale
	var total int64

	database.DB.Model(&models.Sale{}).Count(&total)

	if err := database.DB.Preload("Customer").Preload("User").Preload("Items").
		Order("sale_date desc").Limit(limit).Offset(offset).Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  sales,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *SalesHandler) GetSale(c *gin.Context) {
	var sale models.Sale
	if err := database.DB.Preload("Customer").Preload("User").Preload("Items").
		First(&sale, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}
	c.JSON(http.StatusOK, sale)
}

// MyTodaySales returns the calling cashier's sales for the day with hourly
// buckets and the most recent receipts.
func (h *SalesHandler) MyTodaySales(c *gin.Context) {
	userID := c.GetUint("userID")
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var sales []models.Sale
	if err := database.DB.Where("user_id = ? AND sale_date >= ? AND sale_date < ?", userID, startOfDay, endOfDay).
		Order("sale_date desc").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales data"})
		return
	}

	var total float64
	hourlySales := make([]float64, 24)

	for _, sale := range sales {
		total += sale.Total
		hour := sale.SaleDate.Hour()
		if hour >= 0 && hour < 24 {
			hourlySales[hour] += sale.Total
		}
	}

	recentSales := sales
	if len(sales) > 5 {
		recentSales = sales[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"sales":        total,
		"hourly_sales": hourlySales,
		"recent_sales": recentSales,
	})
}
