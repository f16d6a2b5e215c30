package main

import (
	"log"
	"time"

	"coffeeshop-app/config"
	"coffeeshop-app/internal/handler"
	"coffeeshop-app/internal/middleware"
	"coffeeshop-app/internal/models"
	"coffeeshop-app/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")
	err := database.Migrate(database.DB,
		&models.Role{},
		&models.User{},
		&models.LoginHistory{},
		&models.Category{},
		&models.Product{},
		&models.StockEntry{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Sale{},
		&models.SaleItem{},
		&models.LoyaltyReward{},
		&models.LoyaltyNotification{},
		&models.Expense{},
		&models.Note{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Data
	database.SeedRolesAndAdmin()
	database.SeedMenuCategories()

	// 4. Initialize Router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 5. Setup Routes
	authHandler := &handler.AuthHandler{}
	authRoutes := r.Group("/api/v1/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}

	userRoutes := r.Group("/api/v1/user")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.PUT("/password", authHandler.ChangePassword)
	}

	adminHandler := &handler.AdminHandler{}
	adminRoutes := r.Group("/api/v1/admin")
	adminRoutes.Use(middleware.AuthMiddleware("admin"))
	{
		adminRoutes.POST("/employees", adminHandler.CreateEmployee)
		adminRoutes.GET("/employees", adminHandler.ListEmployees)
		adminRoutes.PUT("/employees/:id", adminHandler.UpdateEmployee)
		adminRoutes.PUT("/employees/:id/role", adminHandler.UpdateEmployeeRole)
		adminRoutes.PUT("/employees/:id/status", adminHandler.UpdateEmployeeStatus)
		adminRoutes.PUT("/employees/:id/password", adminHandler.ResetEmployeePassword)
		adminRoutes.GET("/login-history", adminHandler.GetLoginHistory)
	}

	menuHandler := &handler.MenuHandler{}

	// Public Read (Authenticated)
	r.GET("/api/v1/menu/products", middleware.AuthMiddleware(), menuHandler.ListProducts)
	r.GET("/api/v1/menu/categories", middleware.AuthMiddleware(), menuHandler.ListCategories)

	// Protected Menu Ops
	menuRoutes := r.Group("/api/v1/menu")
	menuRoutes.Use(middleware.AuthMiddleware("admin", "manager"))
	{
		menuRoutes.POST("/products", menuHandler.CreateProduct)
		menuRoutes.PUT("/products/:id", menuHandler.UpdateProduct)
		menuRoutes.PUT("/products/:id/availability", menuHandler.SetProductAvailability)
		menuRoutes.POST("/stock", menuHandler.AddStock)
		menuRoutes.GET("/alerts", menuHandler.GetLowStockAlerts)
		menuRoutes.POST("/categories", menuHandler.CreateCategory)
	}

	posHandler := &handler.PosHandler{}
	customerHandler := &handler.CustomerHandler{}
	salesHandler := &handler.SalesHandler{}
	loyaltyHandler := &handler.LoyaltyHandler{}
	noteHandler := &handler.NoteHandler{}
	assistantHandler := &handler.AssistantHandler{}

	posRoutes := r.Group("/api/v1/pos")
	posRoutes.Use(middleware.AuthMiddleware("barista", "manager", "admin"))
	{
		posRoutes.POST("/orders", posHandler.OpenOrder)
		posRoutes.GET("/orders", posHandler.ListOpenOrders)
		posRoutes.GET("/orders/:id", posHandler.GetOrder)
		posRoutes.POST("/orders/:id/items", posHandler.AddItem)
		posRoutes.PUT("/orders/:id/items/:itemID", posHandler.UpdateItemQuantity)
		posRoutes.DELETE("/orders/:id/items/:itemID", posHandler.RemoveItem)
		posRoutes.PUT("/orders/:id/customer", posHandler.SetCustomer)
		posRoutes.PUT("/orders/:id/type", posHandler.SetOrderType)
		posRoutes.PUT("/orders/:id/cancel", posHandler.CancelOrder)
		posRoutes.POST("/orders/:id/complete", posHandler.CompleteOrder)

		posRoutes.POST("/customers", customerHandler.CreateCustomer)
		posRoutes.GET("/customers", customerHandler.SearchCustomers)

		posRoutes.GET("/sales", salesHandler.ListSales)
		posRoutes.GET("/sales/:id", salesHandler.GetSale)
		posRoutes.GET("/my-sales", salesHandler.MyTodaySales)

		posRoutes.GET("/notifications", loyaltyHandler.ListNotifications)
		posRoutes.PUT("/notifications/:id/read", loyaltyHandler.MarkNotificationRead)
		posRoutes.DELETE("/notifications", loyaltyHandler.ClearNotifications)
		posRoutes.GET("/rewards", loyaltyHandler.ListRewards)
		posRoutes.POST("/rewards/:code/redeem", loyaltyHandler.RedeemReward)
	}

	statsHandler := &handler.StatsHandler{}
	managerRoutes := r.Group("/api/v1/manager")
	managerRoutes.Use(middleware.AuthMiddleware("manager", "admin"))
	{
		managerRoutes.GET("/reports/sales", statsHandler.GetSalesReport)
		managerRoutes.GET("/dashboard", statsHandler.GetDashboardStats)
		managerRoutes.GET("/customers", customerHandler.GetCustomers)
		managerRoutes.GET("/customers/:id", customerHandler.GetCustomerProfile)
		managerRoutes.PUT("/customers/:id", customerHandler.UpdateCustomer)
		managerRoutes.GET("/settings/loyalty", loyaltyHandler.GetProgramSettings)
		managerRoutes.PUT("/settings/loyalty", loyaltyHandler.UpdateProgramSettings)
	}

	expenseHandler := &handler.ExpenseHandler{}
	expenseRoutes := r.Group("/api/v1/expenses")
	expenseRoutes.Use(middleware.AuthMiddleware("manager", "admin"))
	{
		expenseRoutes.POST("", expenseHandler.CreateExpense)
		expenseRoutes.GET("", expenseHandler.ListExpenses)
		expenseRoutes.PUT("/:id", expenseHandler.UpdateExpense)
		expenseRoutes.DELETE("/:id", expenseHandler.DeleteExpense)
	}

	noteRoutes := r.Group("/api/v1/notes")
	noteRoutes.Use(middleware.AuthMiddleware())
	{
		noteRoutes.POST("", noteHandler.CreateNote)
		noteRoutes.GET("", noteHandler.ListNotes)
		noteRoutes.PUT("/:id", noteHandler.UpdateNote)
		noteRoutes.DELETE("/:id", noteHandler.DeleteNote)
	}

	r.POST("/api/v1/assistant/chat", middleware.AuthMiddleware(), assistantHandler.Chat)

	publicHandler := &handler.PublicHandler{}
	publicRoutes := r.Group("/api/v1/public")
	{
		publicRoutes.GET("/config", publicHandler.GetPublicConfig)
		publicRoutes.GET("/menu", publicHandler.ListPublicMenu)
		publicRoutes.GET("/site-info", publicHandler.GetSiteInfo)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 6. Start Server
	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
