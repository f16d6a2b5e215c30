package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"coffeeshop-app/internal/models"
	"coffeeshop-app/pkg/database"

	"github.com/gin-gonic/gin"
)

// AssistantHandler answers free-text questions about the shop from live
// store data. Intent matching is keyword based; unknown questions get a
// help message listing what it can answer.
type AssistantHandler struct{}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := strings.ToLower(req.Message)
	var reply string

	switch {
	case strings.Contains(msg, "sales") || strings.Contains(msg, "revenue"):
		reply = h.todaySalesReply()
	case strings.Contains(msg, "stock") || strings.Contains(msg, "inventory"):
		reply = h.lowStockReply()
	case strings.Contains(msg, "loyalty") || strings.Contains(msg, "points"):
		reply = h.loyaltyReply(req.Message)
	case strings.Contains(msg, "top") || strings.Contains(msg, "best"):
		reply = h.topSellerReply()
	default:
		reply = "I can help with today's sales, low stock, top sellers, and a customer's loyalty points. Try asking \"how are sales today?\""
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (h *AssistantHandler) todaySalesReply() string {
	today := time.Now().Format("2006-01-02")
	var revenue float64
	var receipts int64
	database.DB.Model(&models.Sale{}).Where("DATE(sale_date) = ?", today).
		Select("COALESCE(SUM(total), 0)").Scan(&revenue)
	database.DB.Model(&models.Sale{}).Where("DATE(sale_date) = ?", today).Count(&receipts)

	if receipts == 0 {
		return "No sales recorded yet today."
	}
	return fmt.Sprintf("Today so far: %d receipts totaling %.2f.", receipts, revenue)
}

func (h *AssistantHandler) lowStockReply() string {
	var products []models.Product
	database.DB.Where("current_stock <= low_stock_threshold AND is_active = ?", true).
		Limit(5).Find(&products)

	if len(products) == 0 {
		return "Stock levels look fine, nothing below threshold."
	}
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, fmt.Sprintf("%s (%d left)", p.Name, p.CurrentStock))
	}
	return "Running low: " + strings.Join(names, ", ") + "."
}

// loyaltyReply looks for a registered customer name inside the question.
func (h *AssistantHandler) loyaltyReply(message string) string {
	var customers []models.Customer
	database.DB.Find(&customers)

	lower := strings.ToLower(message)
	for _, cust := range customers {
		if cust.Name != "" && strings.Contains(lower, strings.ToLower(cust.Name)) {
			return fmt.Sprintf("%s has %d loyalty points across %d purchases.",
				cust.Name, cust.LoyaltyPoints, cust.TotalPurchases)
		}
	}

	var totalPoints int64
	database.DB.Model(&models.Customer{}).Select("COALESCE(SUM(loyalty_points), 0)").Scan(&totalPoints)
	return fmt.Sprintf("Customers hold %d loyalty points in total. Ask about a specific customer by name for details.", totalPoints)
}

func (h *AssistantHandler) topSellerReply() string {
	var name string
	var qty int
	row := database.DB.Table("sale_items").
		Select("name, SUM(quantity) as qty").
		Group("name").
		Order("qty desc").
		Limit(1).
		Row()
	if row == nil {
		return "No sales data yet."
	}
	if err := row.Scan(&name, &qty); err != nil || name == "" {
		return "No sales data yet."
	}
	return fmt.Sprintf("Best seller: %s with %d sold.", name, qty)
}
