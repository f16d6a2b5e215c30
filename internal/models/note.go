package models

import (
	"time"
)

type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	Pinned    bool      `gorm:"default:false" json:"pinned"`
	CreatedBy uint      `json:"created_by"`
	User      User      `gorm:"foreignKey:CreatedBy" json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
