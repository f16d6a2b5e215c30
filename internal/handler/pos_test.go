package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"coffeeshop-app/config"
	"coffeeshop-app/internal/models"
	"coffeeshop-app/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPosRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Sale{},
		&models.SaleItem{},
		&models.LoyaltyReward{},
		&models.LoyaltyNotification{},
	))
	database.DB = db

	config.AppConfig = &config.Config{
		Loyalty: config.LoyaltyConfig{
			PointsPerPurchase:  1,
			RewardThreshold:    10,
			RewardValidityDays: 30,
		},
		Defaults: config.DefaultsConfig{ReceiptPrefix: "RCP"},
	}

	// Stand-in for the auth middleware: the handlers only need userID.
	auth := func(c *gin.Context) {
		c.Set("userID", uint(1))
		c.Next()
	}

	pos := &PosHandler{}
	r := gin.New()
	r.POST("/pos/orders", auth, pos.OpenOrder)
	r.GET("/pos/orders/:id", auth, pos.GetOrder)
	r.POST("/pos/orders/:id/items", auth, pos.AddItem)
	r.PUT("/pos/orders/:id/items/:itemID", auth, pos.UpdateItemQuantity)
	r.DELETE("/pos/orders/:id/items/:itemID", auth, pos.RemoveItem)
	r.POST("/pos/orders/:id/complete", auth, pos.CompleteOrder)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPosCartFlow(t *testing.T) {
	r := setupPosRouter(t)

	cashier := models.User{EmployeeID: "BAR-0001", Username: "Tom", PasswordHash: "x", IsActive: true}
	require.NoError(t, database.DB.Create(&cashier).Error)

	product := models.Product{Name: "Flat White", UnitPrice: 15000, IsActive: true}
	require.NoError(t, database.DB.Create(&product).Error)

	customer := models.Customer{Name: "Maya", Mobile: "5550101", LoyaltyPoints: 9, TotalPurchases: 3}
	require.NoError(t, database.DB.Create(&customer).Error)

	// Open an order attached to the customer.
	w := doJSON(t, r, http.MethodPost, "/pos/orders", gin.H{
		"order_type":  models.OrderTypeTakeaway,
		"customer_id": customer.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	require.NotZero(t, order.ID)

	// Adding the same product twice merges into one line.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/pos/orders/%d/items", order.ID), gin.H{
		"product_id": product.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/pos/orders/%d/items", order.ID), gin.H{
		"product_id": product.ID, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 3, updated.Items[0].Quantity)
	assert.Equal(t, 45000.0, updated.Total)

	// Dropping the quantity recomputes the total.
	w = doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/pos/orders/%d/items/%d", order.ID, updated.Items[0].ID),
		gin.H{"quantity": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 15000.0, updated.Total)

	// Completion records the sale and advances loyalty from 9 to 10.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/pos/orders/%d/complete", order.ID), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var after models.Customer
	require.NoError(t, database.DB.First(&after, customer.ID).Error)
	assert.Equal(t, 10, after.LoyaltyPoints)
	assert.Equal(t, 4, after.TotalPurchases)

	var rewardCount int64
	database.DB.Model(&models.LoyaltyReward{}).Count(&rewardCount)
	assert.EqualValues(t, 1, rewardCount)
}

func TestPosCompleteEmptyOrderRejected(t *testing.T) {
	r := setupPosRouter(t)

	w := doJSON(t, r, http.MethodPost, "/pos/orders", gin.H{"order_type": models.OrderTypeDineIn})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/pos/orders/%d/complete", order.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var saleCount int64
	database.DB.Model(&models.Sale{}).Count(&saleCount)
	assert.EqualValues(t, 0, saleCount)
}

func TestPosAddItemToUnknownOrder(t *testing.T) {
	r := setupPosRouter(t)

	w := doJSON(t, r, http.MethodPost, "/pos/orders/999/items", gin.H{"product_id": 1, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
