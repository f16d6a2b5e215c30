package handler

import (
	"net/http"
	"time"

	"coffeeshop-app/internal/models"
	"coffeeshop-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct{}

type CreateExpenseRequest struct {
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	SpentAt     string  `json:"spent_at"` // YYYY-MM-DD, defaults to today
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spentAt := time.Now()
	if req.SpentAt != "" {
		parsed, err := time.Parse("2006-01-02", req.SpentAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid spent_at date, expected YYYY-MM-DD"})
			return
		}
		spentAt = parsed
	}

	expense := models.Expense{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		SpentAt:     spentAt,
		CreatedBy:   c.GetUint("userID"),
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record expense"})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	expenses := []models.Expense{}
	query := database.DB.Preload("User").Order("spent_at desc")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if start := c.Query("start_date"); start != "" {
		if end := c.Query("end_date"); end != "" {
			startDate, _ := time.Parse("2006-01-02", start)
			endDate, _ := time.Parse("2006-01-02", end)
			endDate = endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			query = query.Where("spent_at BETWEEN ? AND ?", startDate, endDate)
		}
	}

	if err := query.Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}

	c.JSON(http.StatusOK, gin.H{"data": expenses, "total": total})
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}

	res := database.DB.Model(&models.Expense{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense updated"})
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	res := database.DB.Where("id = ?", c.Param("id")).Delete(&models.Expense{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
