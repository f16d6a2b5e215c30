package models

import (
	"time"
)

// Sale is an immutable revenue ledger entry created at order completion.
// CustomerID is nil for walk-in sales.
type Sale struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ReceiptNo  string     `gorm:"size:50;unique;not null" json:"receipt_no"`
	OrderNo    string     `gorm:"size:50" json:"order_no"`
	SaleDate   time.Time  `gorm:"autoCreateTime" json:"sale_date"`
	CustomerID *uint      `json:"customer_id"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	UserID     uint       `json:"user_id"`
	User       User       `gorm:"foreignKey:UserID" json:"user"`
	OrderType  string     `gorm:"size:20" json:"order_type"`
	Total      float64    `gorm:"type:decimal(10,2);not null" json:"total"`
	Items      []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

type SaleItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	SaleID    uint    `json:"sale_id"`
	ProductID uint    `json:"product_id"`
	Name      string  `gorm:"size:150" json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Total     float64 `gorm:"type:decimal(10,2);not null" json:"total"`
}
