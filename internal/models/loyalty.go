package models

import (
	"time"
)

// Reward kinds
const (
	RewardKindFreeDrink = "free_drink"
)

// Notification kinds
const (
	NotificationPointsAdded  = "points_added"
	NotificationRewardEarned = "reward_earned"
)

// LoyaltyReward is issued when a customer's point total crosses a multiple
// of the reward threshold. At most one reward is issued per completed order.
type LoyaltyReward struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Code       string     `gorm:"size:50;unique;not null" json:"code"`
	CustomerID uint       `json:"customer_id"`
	Customer   Customer   `gorm:"foreignKey:CustomerID" json:"customer"`
	Kind       string     `gorm:"size:30;default:'free_drink'" json:"kind"`
	IssuedAt   time.Time  `json:"issued_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	Used       bool       `gorm:"default:false" json:"used"`
	UsedAt     *time.Time `json:"used_at"`
}

// Expired reports whether the reward can no longer be redeemed at t.
func (r LoyaltyReward) Expired(t time.Time) bool {
	return t.After(r.ExpiresAt)
}

type LoyaltyNotification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `json:"customer_id"`
	Customer   Customer  `gorm:"foreignKey:CustomerID" json:"customer"`
	Kind       string    `gorm:"size:30;not null" json:"kind"`
	Message    string    `gorm:"type:text" json:"message"`
	Read       bool      `gorm:"default:false" json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}
