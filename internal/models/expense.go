package models

import (
	"time"
)

type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Category    string    `gorm:"size:50" json:"category"` // 'supplies', 'rent', 'salary', ...
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	SpentAt     time.Time `json:"spent_at"`
	CreatedBy   uint      `json:"created_by"`
	User        User      `gorm:"foreignKey:CreatedBy" json:"user"`
	CreatedAt   time.Time `json:"created_at"`
}
