// Package checkout turns an open order into a sales ledger entry and applies
// the loyalty accrual for registered customers. The whole completion runs in
// one database transaction: either the sale, the customer update and the
// loyalty records all land, or none of them do.
package checkout

import (
	"errors"
	"fmt"
	"time"

	"coffeeshop-app/internal/loyalty"
	"coffeeshop-app/internal/metrics"
	"coffeeshop-app/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderClosed   = errors.New("order is not open")
	ErrEmptyOrder    = errors.New("order has no items")
)

type Service struct {
	db            *gorm.DB
	cfg           loyalty.Config
	receiptPrefix string
	now           func() time.Time
}

func New(db *gorm.DB, cfg loyalty.Config, receiptPrefix string) *Service {
	if receiptPrefix == "" {
		receiptPrefix = "RCP"
	}
	return &Service{
		db:            db,
		cfg:           cfg,
		receiptPrefix: receiptPrefix,
		now:           time.Now,
	}
}

// Complete finalizes the order identified by orderID on behalf of the given
// cashier and returns the created sale.
//
// A customer id that no longer resolves is treated as a walk-in: the sale is
// still recorded, only the loyalty step is skipped. Losing an accrual is less
// harmful than failing to record revenue.
func (s *Service) Complete(orderID, cashierID uint) (*models.Sale, error) {
	now := s.now()
	var sale models.Sale
	var rewardIssued bool

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var order models.Order
	if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status != models.OrderStatusOpen {
		tx.Rollback()
		return nil, ErrOrderClosed
	}
	if len(order.Items) == 0 {
		tx.Rollback()
		return nil, ErrEmptyOrder
	}

	// Resolve the customer before writing anything. The row lock is the
	// per-customer serialization point: two checkouts for the same customer
	// queue up here, so the second one accrues on top of the first's total.
	var customer *models.Customer
	if order.CustomerID != nil {
		var c models.Customer
		q := tx
		if tx.Dialector.Name() == "mysql" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&c, *order.CustomerID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				tx.Rollback()
				return nil, err
			}
			// Customer deleted since the order was opened: walk-in.
		} else {
			customer = &c
		}
	}

	sale = models.Sale{
		ReceiptNo: s.generateReceiptNo(tx, now),
		OrderNo:   order.OrderNo,
		SaleDate:  now,
		UserID:    cashierID,
		OrderType: order.OrderType,
		Total:     order.Total,
	}
	if customer != nil {
		sale.CustomerID = &customer.ID
	}
	for _, item := range order.Items {
		sale.Items = append(sale.Items, models.SaleItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.LineTotal,
		})
	}

	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	if customer != nil {
		res := loyalty.Accrue(*customer, s.cfg, now)

		updates := map[string]interface{}{
			"loyalty_points":     res.Points,
			"total_purchases":    res.Purchases,
			"last_purchase_date": now,
		}
		if err := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to update loyalty counters: %w", err)
		}

		if err := tx.Create(&res.Notification).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to record notification: %w", err)
		}
		if res.Reward != nil {
			if err := tx.Create(res.Reward).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to record reward: %w", err)
			}
			rewardIssued = true
		}
	}

	// The cart reset: the order row closes, the next order starts fresh.
	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderStatusCompleted).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to close order: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	metrics.SalesCompleted.Inc()
	metrics.RevenueRecorded.Add(sale.Total)
	if rewardIssued {
		metrics.RewardsIssued.Inc()
	}

	return &sale, nil
}

// generateReceiptNo builds RCP-YYYYMMDD-SEQ from the last ledger id.
func (s *Service) generateReceiptNo(tx *gorm.DB, now time.Time) string {
	var lastSale models.Sale
	tx.Order("id desc").First(&lastSale)
	return fmt.Sprintf("%s-%s-%05d", s.receiptPrefix, now.Format("20060102"), lastSale.ID+1)
}
