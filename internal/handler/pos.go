package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"coffeeshop-app/config"
	"coffeeshop-app/internal/checkout"
	"coffeeshop-app/internal/loyalty"
	"coffeeshop-app/internal/models"
	"coffeeshop-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type PosHandler struct{}

// loyaltyConfig snapshots the current program settings. Read fresh per
// checkout so manager updates take effect without a restart.
func loyaltyConfig() loyalty.Config {
	return loyalty.Config{
		PointsPerPurchase:  config.AppConfig.Loyalty.PointsPerPurchase,
		RewardThreshold:    config.AppConfig.Loyalty.RewardThreshold,
		RewardValidityDays: config.AppConfig.Loyalty.RewardValidityDays,
	}
}

// Generate Order No: ORD-YYYYMMDD-SEQ
func generateOrderNo() string {
	dateStr := time.Now().Format("20060102")
	var lastOrder models.Order
	database.DB.Order("id desc").First(&lastOrder)
	return fmt.Sprintf("ORD-%s-%04d", dateStr, lastOrder.ID+1)
}

type OpenOrderRequest struct {
	OrderType  string `json:"order_type"`
	CustomerID *uint  `json:"customer_id"`
}

func (h *PosHandler) OpenOrder(c *gin.Context) {
	var req OpenOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = models.OrderTypeDineIn
	}
	if orderType != models.OrderTypeDineIn && orderType != models.OrderTypeTakeaway {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order type"})
		return
	}

	if req.CustomerID != nil {
		var customer models.Customer
		if err := database.DB.First(&customer, *req.CustomerID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
			return
		}
	}

	order := models.Order{
		OrderNo:    generateOrderNo(),
		OrderType:  orderType,
		CustomerID: req.CustomerID,
		Status:     models.OrderStatusOpen,
		OrderDate:  time.Now(),
	}

	if err := database.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open order"})
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *PosHandler) ListOpenOrders(c *gin.Context) {
	var orders []models.Order
	if err := database.DB.Preload("Customer").Preload("Items").
		Where("status = ?", models.OrderStatusOpen).
		Order("order_date desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *PosHandler) GetOrder(c *gin.Context) {
	var order models.Order
	if err := database.DB.Preload("Customer").Preload("Items").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// openOrderByID loads the order and rejects it if it is no longer editable.
func openOrderByID(c *gin.Context, id string) (*models.Order, bool) {
	var order models.Order
	if err := database.DB.Preload("Items").First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return nil, false
	}
	if order.Status != models.OrderStatusOpen {
		c.JSON(http.StatusConflict, gin.H{"error": "Order is no longer open"})
		return nil, false
	}
	return &order, true
}

func recalcOrderTotal(orderID uint) {
	var total float64
	database.DB.Model(&models.OrderItem{}).Where("order_id = ?", orderID).
		Select("COALESCE(SUM(line_total), 0)").Scan(&total)
	database.DB.Model(&models.Order{}).Where("id = ?", orderID).Update("total", total)
}

type AddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

func (h *PosHandler) AddItem(c *gin.Context) {
	order, ok := openOrderByID(c, c.Param("id"))
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := database.DB.Where("id = ? AND is_active = ?", req.ProductID, true).First(&product).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found or unavailable"})
		return
	}

	// Same product twice bumps the existing line instead of adding another.
	var existing models.OrderItem
	err := database.DB.Where("order_id = ? AND product_id = ?", order.ID, req.ProductID).First(&existing).Error
	if err == nil {
		newQty := existing.Quantity + req.Quantity
		database.DB.Model(&existing).Updates(map[string]interface{}{
			"quantity":   newQty,
			"line_total": product.UnitPrice * float64(newQty),
		})
	} else {
		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  req.Quantity,
			UnitPrice: product.UnitPrice,
			LineTotal: product.UnitPrice * float64(req.Quantity),
		}
		if err := database.DB.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
			return
		}
	}

	recalcOrderTotal(order.ID)

	var updated models.Order
	database.DB.Preload("Items").First(&updated, order.ID)
	c.JSON(http.StatusOK, updated)
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"gte=0"`
}

func (h *PosHandler) UpdateItemQuantity(c *gin.Context) {
	order, ok := openOrderByID(c, c.Param("id"))
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.OrderItem
	if err := database.DB.Where("id = ? AND order_id = ?", c.Param("itemID"), order.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Line item not found"})
		return
	}

	if req.Quantity == 0 {
		database.DB.Delete(&item)
	} else {
		database.DB.Model(&item).Updates(map[string]interface{}{
			"quantity":   req.Quantity,
			"line_total": item.UnitPrice * float64(req.Quantity),
		})
	}

	recalcOrderTotal(order.ID)

	var updated models.Order
	database.DB.Preload("Items").First(&updated, order.ID)
	c.JSON(http.StatusOK, updated)
}

func (h *PosHandler) RemoveItem(c *gin.Context) {
	order, ok := openOrderByID(c, c.Param("id"))
	if !ok {
		return
	}

	res := database.DB.Where("id = ? AND order_id = ?", c.Param("itemID"), order.ID).Delete(&models.OrderItem{})
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Line item not found"})
		return
	}

	recalcOrderTotal(order.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

type SetCustomerRequest struct {
	CustomerID *uint `json:"customer_id"` // null detaches (walk-in)
}

func (h *PosHandler) SetCustomer(c *gin.Context) {
	order, ok := openOrderByID(c, c.Param("id"))
	if !ok {
		return
	}

	var req SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CustomerID != nil {
		var customer models.Customer
		if err := database.DB.First(&customer, *req.CustomerID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
			return
		}
	}

	if err := database.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("customer_id", req.CustomerID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer updated"})
}

func (h *PosHandler) SetOrderType(c *gin.Context) {
	order, ok := openOrderByID(c, c.Param("id"))
	if !ok {
		return
	}

	var req struct {
		OrderType string `json:"order_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OrderType != models.OrderTypeDineIn && req.OrderType != models.OrderTypeTakeaway {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order type"})
		return
	}

	database.DB.Model(&models.Order{}).Where("id = ?", order.ID).Update("order_type", req.OrderType)
	c.JSON(http.StatusOK, gin.H{"message": "Order type updated"})
}

func (h *PosHandler) CancelOrder(c *gin.Context) {
	order, ok := openOrderByID(c, c.Param("id"))
	if !ok {
		return
	}

	database.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderStatusCancelled)
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}

func (h *PosHandler) CompleteOrder(c *gin.Context) {
	var order models.Order
	if err := database.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	userID := c.GetUint("userID")
	svc := checkout.New(database.DB, loyaltyConfig(), config.AppConfig.Defaults.ReceiptPrefix)

	sale, err := svc.Complete(order.ID, userID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot complete an empty order"})
		case errors.Is(err, checkout.ErrOrderClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "Order is no longer open"})
		case errors.Is(err, checkout.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Order completed",
		"receipt_no": sale.ReceiptNo,
		"sale":       sale,
	})
}
