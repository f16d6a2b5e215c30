package models

import (
	"time"
)

// Order statuses
const (
	OrderStatusOpen      = "OPEN"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Order types
const (
	OrderTypeDineIn   = "DINE_IN"
	OrderTypeTakeaway = "TAKEAWAY"
)

// Order is the in-progress cart. It stays OPEN while the barista edits it
// and flips to COMPLETED exactly once, at checkout.
type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	OrderNo    string      `gorm:"size:50;unique;not null" json:"order_no"`
	CustomerID *uint       `json:"customer_id"` // nil = walk-in
	Customer   *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	OrderType  string      `gorm:"size:20;default:'DINE_IN'" json:"order_type"`
	Status     string      `gorm:"size:20;default:'OPEN'" json:"status"`
	Total      float64     `gorm:"type:decimal(10,2);default:0.00" json:"total"`
	OrderDate  time.Time   `gorm:"autoCreateTime" json:"order_date"`
	Items      []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
	Name      string  `gorm:"size:150" json:"name"` // snapshot at add time
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	LineTotal float64 `gorm:"type:decimal(10,2);not null" json:"line_total"`
}
