package handler

import (
	"net/http"
	"time"

	"coffeeshop-app/internal/models"
	"coffeeshop-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct{}

func (h *StatsHandler) GetSalesReport(c *gin.Context) {
	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")

	var sales []models.Sale
	query := database.DB.Preload("Items").Preload("User")

	var startDate, endDate time.Time
	ranged := startDateStr != "" && endDateStr != ""
	if ranged {
		startDate, _ = time.Parse("2006-01-02", startDateStr)
		endDate, _ = time.Parse("2006-01-02", endDateStr)
		endDate = endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		query = query.Where("sale_date BETWEEN ? AND ?", startDate, endDate)
	}

	if err := query.Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales report"})
		return
	}

	var totalRevenue float64
	var itemsSold int
	for _, sale := range sales {
		totalRevenue += sale.Total
		for _, item := range sale.Items {
			itemsSold += item.Quantity
		}
	}

	var totalExpenses float64
	expQuery := database.DB.Model(&models.Expense{}).Select("COALESCE(SUM(amount), 0)")
	if ranged {
		expQuery = expQuery.Where("spent_at BETWEEN ? AND ?", startDate, endDate)
	}
	expQuery.Scan(&totalExpenses)

	c.JSON(http.StatusOK, gin.H{
		"summary": gin.H{
			"total_revenue":  totalRevenue,
			"total_receipts": len(sales),
			"items_sold":     itemsSold,
			"total_expenses": totalExpenses,
			"net":            totalRevenue - totalExpenses,
		},
		"transactions": sales,
	})
}

func (h *StatsHandler) GetDashboardStats(c *gin.Context) {
	var todayRevenue float64
	var monthRevenue float64
	var openOrders int64
	var lowStockCount int64
	var newCustomers int64
	var pointsOutstanding int64

	today := time.Now().Format("2006-01-02")
	monthStart := time.Now().AddDate(0, 0, -30)

	database.DB.Model(&models.Sale{}).Where("DATE(sale_date) = ?", today).
		Select("COALESCE(SUM(total), 0)").Scan(&todayRevenue)

	database.DB.Model(&models.Sale{}).Where("sale_date >= ?", monthStart).
		Select("COALESCE(SUM(total), 0)").Scan(&monthRevenue)

	database.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusOpen).Count(&openOrders)

	database.DB.Model(&models.Product{}).
		Where("current_stock <= low_stock_threshold AND is_active = ?", true).Count(&lowStockCount)

	database.DB.Model(&models.Customer{}).Where("DATE(created_at) = ?", today).Count(&newCustomers)

	database.DB.Model(&models.Customer{}).
		Select("COALESCE(SUM(loyalty_points), 0)").Scan(&pointsOutstanding)

	// Last 7 days revenue chart
	type ChartData struct {
		Labels []string  `json:"labels"`
		Data   []float64 `json:"data"`
	}
	weeklyChart := ChartData{Labels: []string{}, Data: []float64{}}
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		dateStr := date.Format("2006-01-02")
		var dailySum float64
		database.DB.Model(&models.Sale{}).Where("DATE(sale_date) = ?", dateStr).
			Select("COALESCE(SUM(total), 0)").Scan(&dailySum)
		weeklyChart.Labels = append(weeklyChart.Labels, date.Format("Jan 02"))
		weeklyChart.Data = append(weeklyChart.Data, dailySum)
	}

	// Top products by quantity sold
	type TopProduct struct {
		Name     string  `json:"name"`
		Quantity int     `json:"quantity"`
		Revenue  float64 `json:"revenue"`
	}
	topProducts := []TopProduct{}
	rows, _ := database.DB.Table("sale_items").
		Select("name, SUM(quantity) as qty, COALESCE(SUM(total), 0) as revenue").
		Group("name").
		Order("qty desc").
		Limit(5).
		Rows()
	if rows != nil {
		defer rows.Close()
		for rows.Next() {
			var p TopProduct
			rows.Scan(&p.Name, &p.Quantity, &p.Revenue)
			topProducts = append(topProducts, p)
		}
	}

	// Revenue split by order type
	type PieData struct {
		Labels []string  `json:"labels"`
		Data   []float64 `json:"data"`
	}
	typeChart := PieData{Labels: []string{}, Data: []float64{}}
	typeRows, _ := database.DB.Table("sales").
		Select("order_type, COALESCE(SUM(total), 0)").
		Group("order_type").
		Rows()
	if typeRows != nil {
		defer typeRows.Close()
		for typeRows.Next() {
			var orderType string
			var sum float64
			typeRows.Scan(&orderType, &sum)
			typeChart.Labels = append(typeChart.Labels, orderType)
			typeChart.Data = append(typeChart.Data, sum)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics": gin.H{
			"todayRevenue":      todayRevenue,
			"monthRevenue":      monthRevenue,
			"openOrders":        openOrders,
			"lowStock":          lowStockCount,
			"newCustomers":      newCustomers,
			"pointsOutstanding": pointsOutstanding,
		},
		"charts": gin.H{
			"weekly":      weeklyChart,
			"topProducts": topProducts,
			"orderTypes":  typeChart,
		},
	})
}
