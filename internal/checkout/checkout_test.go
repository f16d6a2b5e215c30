package checkout

import (
	"fmt"
	"testing"
	"time"

	"coffeeshop-app/internal/loyalty"
	"coffeeshop-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2026, 3, 14, 9, 15, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Sale{},
		&models.SaleItem{},
		&models.LoyaltyReward{},
		&models.LoyaltyNotification{},
	))
	return db
}

func newTestService(db *gorm.DB) *Service {
	svc := New(db, loyalty.Config{
		PointsPerPurchase:  1,
		RewardThreshold:    10,
		RewardValidityDays: 30,
	}, "RCP")
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func seedCashier(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{EmployeeID: "BAR-0001", Username: "Tom", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedOrder(t *testing.T, db *gorm.DB, customerID *uint, items []models.OrderItem) models.Order {
	t.Helper()
	var total float64
	for _, it := range items {
		total += it.LineTotal
	}
	order := models.Order{
		OrderNo:    "ORD-20260314-0001",
		CustomerID: customerID,
		OrderType:  models.OrderTypeDineIn,
		Status:     models.OrderStatusOpen,
		Total:      total,
		OrderDate:  fixedNow,
		Items:      items,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestCompleteEndToEnd(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	cashier := seedCashier(t, db)

	customer := models.Customer{Name: "Maya", Mobile: "5550101", LoyaltyPoints: 9, TotalPurchases: 3}
	require.NoError(t, db.Create(&customer).Error)

	order := seedOrder(t, db, &customer.ID, []models.OrderItem{
		{ProductID: 1, Name: "Flat White", Quantity: 2, UnitPrice: 15000, LineTotal: 30000},
		{ProductID: 2, Name: "Croissant", Quantity: 1, UnitPrice: 20000, LineTotal: 20000},
	})

	sale, err := svc.Complete(order.ID, cashier.ID)
	require.NoError(t, err)

	// Revenue ledger gains exactly one entry for this order.
	assert.Equal(t, 50000.0, sale.Total)
	require.NotNil(t, sale.CustomerID)
	assert.Equal(t, customer.ID, *sale.CustomerID)
	assert.Len(t, sale.Items, 2)
	assert.NotEmpty(t, sale.ReceiptNo)

	var saleCount int64
	db.Model(&models.Sale{}).Count(&saleCount)
	assert.EqualValues(t, 1, saleCount)

	// Loyalty counters advance and the threshold crossing issues one reward.
	var updated models.Customer
	require.NoError(t, db.First(&updated, customer.ID).Error)
	assert.Equal(t, 10, updated.LoyaltyPoints)
	assert.Equal(t, 4, updated.TotalPurchases)
	require.NotNil(t, updated.LastPurchaseDate)

	var rewards []models.LoyaltyReward
	db.Find(&rewards)
	require.Len(t, rewards, 1)
	assert.Equal(t, models.RewardKindFreeDrink, rewards[0].Kind)
	assert.False(t, rewards[0].Used)
	assert.Equal(t, fixedNow.AddDate(0, 0, 30).Unix(), rewards[0].ExpiresAt.Unix())

	var notifications []models.LoyaltyNotification
	db.Find(&notifications)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationRewardEarned, notifications[0].Kind)
	assert.Equal(t, customer.ID, notifications[0].CustomerID)

	// The cart is reset: the order is closed.
	var closed models.Order
	require.NoError(t, db.First(&closed, order.ID).Error)
	assert.Equal(t, models.OrderStatusCompleted, closed.Status)
}

func TestCompleteBelowThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	cashier := seedCashier(t, db)

	customer := models.Customer{Name: "Ben", Mobile: "5550102", LoyaltyPoints: 7, TotalPurchases: 7}
	require.NoError(t, db.Create(&customer).Error)

	order := seedOrder(t, db, &customer.ID, []models.OrderItem{
		{ProductID: 1, Name: "Espresso", Quantity: 1, UnitPrice: 12000, LineTotal: 12000},
	})

	_, err := svc.Complete(order.ID, cashier.ID)
	require.NoError(t, err)

	var updated models.Customer
	require.NoError(t, db.First(&updated, customer.ID).Error)
	assert.Equal(t, 8, updated.LoyaltyPoints)

	var rewardCount int64
	db.Model(&models.LoyaltyReward{}).Count(&rewardCount)
	assert.EqualValues(t, 0, rewardCount)

	var notifications []models.LoyaltyNotification
	db.Find(&notifications)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationPointsAdded, notifications[0].Kind)
}

func TestCompleteWalkIn(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	cashier := seedCashier(t, db)

	// A registered customer exists but is not attached to the order.
	bystander := models.Customer{Name: "Ana", Mobile: "5550103", LoyaltyPoints: 4, TotalPurchases: 4}
	require.NoError(t, db.Create(&bystander).Error)

	order := seedOrder(t, db, nil, []models.OrderItem{
		{ProductID: 3, Name: "Iced Tea", Quantity: 1, UnitPrice: 9000, LineTotal: 9000},
	})

	sale, err := svc.Complete(order.ID, cashier.ID)
	require.NoError(t, err)
	assert.Nil(t, sale.CustomerID)

	var saleCount, rewardCount, notifCount int64
	db.Model(&models.Sale{}).Count(&saleCount)
	db.Model(&models.LoyaltyReward{}).Count(&rewardCount)
	db.Model(&models.LoyaltyNotification{}).Count(&notifCount)
	assert.EqualValues(t, 1, saleCount)
	assert.EqualValues(t, 0, rewardCount)
	assert.EqualValues(t, 0, notifCount)

	var unchanged models.Customer
	require.NoError(t, db.First(&unchanged, bystander.ID).Error)
	assert.Equal(t, 4, unchanged.LoyaltyPoints)
	assert.Equal(t, 4, unchanged.TotalPurchases)
}

func TestCompleteEmptyOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	cashier := seedCashier(t, db)

	order := seedOrder(t, db, nil, nil)

	_, err := svc.Complete(order.ID, cashier.ID)
	require.ErrorIs(t, err, ErrEmptyOrder)

	var saleCount int64
	db.Model(&models.Sale{}).Count(&saleCount)
	assert.EqualValues(t, 0, saleCount)

	var untouched models.Order
	require.NoError(t, db.First(&untouched, order.ID).Error)
	assert.Equal(t, models.OrderStatusOpen, untouched.Status)
}

func TestCompleteDanglingCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	cashier := seedCashier(t, db)

	ghost := uint(9999)
	order := seedOrder(t, db, &ghost, []models.OrderItem{
		{ProductID: 4, Name: "Mocha", Quantity: 1, UnitPrice: 18000, LineTotal: 18000},
	})

	// The dangling reference must not fail the checkout; the sale is
	// recorded as walk-in and the loyalty step is skipped.
	sale, err := svc.Complete(order.ID, cashier.ID)
	require.NoError(t, err)
	assert.Nil(t, sale.CustomerID)

	var rewardCount, notifCount int64
	db.Model(&models.LoyaltyReward{}).Count(&rewardCount)
	db.Model(&models.LoyaltyNotification{}).Count(&notifCount)
	assert.EqualValues(t, 0, rewardCount)
	assert.EqualValues(t, 0, notifCount)
}

func TestCompleteTwiceRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	cashier := seedCashier(t, db)

	order := seedOrder(t, db, nil, []models.OrderItem{
		{ProductID: 1, Name: "Latte", Quantity: 1, UnitPrice: 16000, LineTotal: 16000},
	})

	_, err := svc.Complete(order.ID, cashier.ID)
	require.NoError(t, err)

	_, err = svc.Complete(order.ID, cashier.ID)
	require.ErrorIs(t, err, ErrOrderClosed)

	var saleCount int64
	db.Model(&models.Sale{}).Count(&saleCount)
	assert.EqualValues(t, 1, saleCount)
}

func TestCompleteUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	_, err := svc.Complete(12345, 1)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

// Back-to-back checkouts for the same customer must each observe the
// previous total: N orders add exactly N points and N purchases.
func TestCompleteSequenceAccumulates(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	cashier := seedCashier(t, db)

	customer := models.Customer{Name: "Iris", Mobile: "5550104", LoyaltyPoints: 2, TotalPurchases: 5}
	require.NoError(t, db.Create(&customer).Error)

	const n = 3
	for i := 0; i < n; i++ {
		order := models.Order{
			OrderNo:    fmt.Sprintf("ORD-20260314-10%02d", i+1),
			CustomerID: &customer.ID,
			OrderType:  models.OrderTypeTakeaway,
			Status:     models.OrderStatusOpen,
			Total:      10000,
			OrderDate:  fixedNow,
			Items: []models.OrderItem{
				{ProductID: 1, Name: "Filter", Quantity: 1, UnitPrice: 10000, LineTotal: 10000},
			},
		}
		require.NoError(t, db.Create(&order).Error)

		_, err := svc.Complete(order.ID, cashier.ID)
		require.NoError(t, err)
	}

	var updated models.Customer
	require.NoError(t, db.First(&updated, customer.ID).Error)
	assert.Equal(t, 2+n, updated.LoyaltyPoints)
	assert.Equal(t, 5+n, updated.TotalPurchases)

	var notifCount int64
	db.Model(&models.LoyaltyNotification{}).Count(&notifCount)
	assert.EqualValues(t, n, notifCount)
}
