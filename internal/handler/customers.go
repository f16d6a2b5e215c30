package handler

import (
	"net/http"

	"coffeeshop-app/internal/models"
	"coffeeshop-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct{}

type CreateCustomerRequest struct {
	Name   string `json:"name" binding:"required"`
	Mobile string `json:"mobile" binding:"required"`
	Email  string `json:"email"`
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := models.Customer{
		Name:   req.Name,
		Mobile: req.Mobile,
		Email:  req.Email,
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer (mobile might be duplicate)"})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	query := c.Query("q")
	customers := []models.Customer{}
	if query == "" {
		database.DB.Limit(20).Find(&customers)
	} else {
		database.DB.Where("name LIKE ? OR mobile LIKE ?", "%"+query+"%", "%"+query+"%").Find(&customers)
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Name   string `json:"name"`
		Mobile string `json:"mobile"`
		Email  string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Mobile != "" {
		updates["mobile"] = req.Mobile
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}

	if err := database.DB.Model(&models.Customer{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer updated"})
}

// GetCustomerProfile returns the customer with their loyalty standing,
// reward history and recent purchases.
func (h *CustomerHandler) GetCustomerProfile(c *gin.Context) {
	id := c.Param("id")

	var customer models.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var rewards []models.LoyaltyReward
	database.DB.Where("customer_id = ?", customer.ID).Order("issued_at desc").Find(&rewards)

	var recentSales []models.Sale
	database.DB.Preload("Items").Where("customer_id = ?", customer.ID).
		Order("sale_date desc").Limit(10).Find(&recentSales)

	var totalSpend float64
	database.DB.Model(&models.Sale{}).Where("customer_id = ?", customer.ID).
		Select("COALESCE(SUM(total), 0)").Scan(&totalSpend)

	c.JSON(http.StatusOK, gin.H{
		"customer":     customer,
		"rewards":      rewards,
		"recent_sales": recentSales,
		"total_spend":  totalSpend,
	})
}

// GetCustomers lists all customers ranked by total spend.
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	type CustomerWithStats struct {
		models.Customer
		TotalSpend float64 `json:"total_spend"`
		Rank       int     `json:"rank"`
	}

	var customers []models.Customer
	if err := database.DB.Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	var stats []CustomerWithStats
	for _, cust := range customers {
		var total float64
		database.DB.Model(&models.Sale{}).Where("customer_id = ?", cust.ID).
			Select("COALESCE(SUM(total), 0)").Scan(&total)
		stats = append(stats, CustomerWithStats{Customer: cust, TotalSpend: total})
	}

	for i := range stats {
		for j := i + 1; j < len(stats); j++ {
			if stats[i].TotalSpend < stats[j].TotalSpend {
				stats[i], stats[j] = stats[j], stats[i]
			}
		}
	}
	for i := range stats {
		stats[i].Rank = i + 1
	}

	c.JSON(http.StatusOK, stats)
}
