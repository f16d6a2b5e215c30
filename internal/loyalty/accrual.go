// Package loyalty implements the point accrual rules of the shop's loyalty
// program. Accrue is a pure calculation: it never touches storage and never
// mutates its input, so the checkout flow stays the single place where
// customer state actually changes.
package loyalty

import (
	"fmt"
	"time"

	"coffeeshop-app/internal/models"

	"github.com/google/uuid"
)

// Config holds the tenant-configurable program constants.
type Config struct {
	PointsPerPurchase  int
	RewardThreshold    int
	RewardValidityDays int
}

// DefaultConfig matches the shop's standard card: one stamp per purchase,
// a free drink every ten stamps, rewards valid for a month.
func DefaultConfig() Config {
	return Config{
		PointsPerPurchase:  1,
		RewardThreshold:    10,
		RewardValidityDays: 30,
	}
}

// Result carries the updated counters plus the records the caller must
// persist. Reward is nil unless this purchase crossed a reward threshold.
type Result struct {
	Points       int
	Purchases    int
	Reward       *models.LoyaltyReward
	Notification models.LoyaltyNotification
}

// Accrue computes the loyalty outcome of one completed purchase.
//
// A reward is issued iff the increment moved the customer's total across a
// multiple of the threshold. At most one reward is issued per purchase even
// when a large increment skips several multiples; the program deliberately
// does not re-arm per multiple crossed.
func Accrue(customer models.Customer, cfg Config, now time.Time) Result {
	newPoints := customer.LoyaltyPoints + cfg.PointsPerPurchase
	newPurchases := customer.TotalPurchases + 1

	res := Result{
		Points:    newPoints,
		Purchases: newPurchases,
	}

	if crossedThreshold(customer.LoyaltyPoints, newPoints, cfg.RewardThreshold) {
		res.Reward = &models.LoyaltyReward{
			Code:       uuid.NewString(),
			CustomerID: customer.ID,
			Kind:       models.RewardKindFreeDrink,
			IssuedAt:   now,
			ExpiresAt:  now.AddDate(0, 0, cfg.RewardValidityDays),
		}
		res.Notification = models.LoyaltyNotification{
			CustomerID: customer.ID,
			Kind:       models.NotificationRewardEarned,
			Message: fmt.Sprintf("%s reached %d points and earned a free drink!",
				customer.Name, newPoints),
			CreatedAt: now,
		}
		return res
	}

	res.Notification = models.LoyaltyNotification{
		CustomerID: customer.ID,
		Kind:       models.NotificationPointsAdded,
		Message: fmt.Sprintf("%s now has %d points. %d more to a free drink.",
			customer.Name, newPoints, pointsToNextReward(newPoints, cfg.RewardThreshold)),
		CreatedAt: now,
	}
	return res
}

// crossedThreshold reports whether the step from before to after passed a
// multiple of threshold. Integer division counts completed multiples; the
// count increasing means at least one boundary was crossed.
func crossedThreshold(before, after, threshold int) bool {
	if threshold <= 0 {
		return false
	}
	return after/threshold > before/threshold
}

func pointsToNextReward(points, threshold int) int {
	if threshold <= 0 {
		return 0
	}
	return threshold - points%threshold
}
