package models

import (
	"time"
)

type Customer struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Name             string     `gorm:"size:100;not null" json:"name"`
	Mobile           string     `gorm:"size:15;unique;not null" json:"mobile"`
	Email            string     `gorm:"size:100" json:"email"`
	LoyaltyPoints    int        `gorm:"not null;default:0" json:"loyalty_points"`
	TotalPurchases   int        `gorm:"not null;default:0" json:"total_purchases"`
	LastPurchaseDate *time.Time `json:"last_purchase_date"`
	CreatedAt        time.Time  `json:"created_at"`
}
