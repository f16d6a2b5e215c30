package handler

import (
	"net/http"

	"coffeeshop-app/internal/models"
	"coffeeshop-app/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuHandler struct{}

func (h *MenuHandler) ListProducts(c *gin.Context) {
	var products []models.Product
	query := database.DB.Preload("Category").Where("is_active = ?", true)

	if category := c.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", category)
	}

	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

type CreateProductRequest struct {
	Name              string  `json:"name" binding:"required"`
	CategoryName      string  `json:"category_name" binding:"required"`
	Description       string  `json:"description"`
	UnitPrice         float64 `json:"unit_price" binding:"required"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	OpeningStock      int     `json:"opening_stock"`
}

func (h *MenuHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.Category
	if err := database.DB.FirstOrCreate(&category, models.Category{Name: req.CategoryName}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process category"})
		return
	}

	userID := c.GetUint("userID")

	tx := database.DB.Begin()

	product := models.Product{
		Name:              req.Name,
		CategoryID:        &category.ID,
		Description:       req.Description,
		UnitPrice:         req.UnitPrice,
		LowStockThreshold: req.LowStockThreshold,
		CurrentStock:      req.OpeningStock,
		IsActive:          true,
	}

	if err := tx.Create(&product).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	if req.OpeningStock > 0 {
		entry := models.StockEntry{
			ProductID:     product.ID,
			QuantityAdded: req.OpeningStock,
			AddedBy:       userID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log opening stock"})
			return
		}
	}

	tx.Commit()
	c.JSON(http.StatusCreated, product)
}

func (h *MenuHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Name              string   `json:"name"`
		Description       string   `json:"description"`
		UnitPrice         *float64 `json:"unit_price"`
		LowStockThreshold *int     `json:"low_stock_threshold"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.UnitPrice != nil {
		updates["unit_price"] = *req.UnitPrice
	}
	if req.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *req.LowStockThreshold
	}

	if err := database.DB.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

func (h *MenuHandler) SetProductAvailability(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(&models.Product{}).Where("id = ?", id).Update("is_active", *req.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated"})
}

type AddStockRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required"`
}

func (h *MenuHandler) AddStock(c *gin.Context) {
	var req AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")

	tx := database.DB.Begin()

	if err := tx.Model(&models.Product{}).Where("id = ?", req.ProductID).
		Update("current_stock", gorm.Expr("current_stock + ?", req.Quantity)).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}

	entry := models.StockEntry{
		ProductID:     uint(req.ProductID),
		QuantityAdded: req.Quantity,
		AddedBy:       userID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log stock entry"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Stock added successfully"})
}

func (h *MenuHandler) GetLowStockAlerts(c *gin.Context) {
	var products []models.Product
	if err := database.DB.Preload("Category").
		Where("current_stock <= low_stock_threshold AND is_active = ?", true).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, products)
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := database.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *MenuHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}
