package loyalty

import (
	"testing"
	"time"

	"coffeeshop-app/internal/models"
)

var testNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func testCustomer(points, purchases int) models.Customer {
	return models.Customer{
		ID:             7,
		Name:           "Maya",
		Mobile:         "5550101",
		LoyaltyPoints:  points,
		TotalPurchases: purchases,
	}
}

func TestAccrueThresholdBoundary(t *testing.T) {
	cfg := Config{PointsPerPurchase: 1, RewardThreshold: 10, RewardValidityDays: 30}

	t.Run("crossing the threshold issues a reward", func(t *testing.T) {
		res := Accrue(testCustomer(9, 3), cfg, testNow)

		if res.Points != 10 {
			t.Errorf("expected 10 points, got %d", res.Points)
		}
		if res.Purchases != 4 {
			t.Errorf("expected 4 purchases, got %d", res.Purchases)
		}
		if res.Reward == nil {
			t.Fatal("expected a reward at the threshold")
		}
		if res.Notification.Kind != models.NotificationRewardEarned {
			t.Errorf("expected reward_earned notification, got %q", res.Notification.Kind)
		}
	})

	t.Run("one short of the threshold issues no reward", func(t *testing.T) {
		res := Accrue(testCustomer(8, 3), cfg, testNow)

		if res.Points != 9 {
			t.Errorf("expected 9 points, got %d", res.Points)
		}
		if res.Reward != nil {
			t.Error("expected no reward below the threshold")
		}
		if res.Notification.Kind != models.NotificationPointsAdded {
			t.Errorf("expected points_added notification, got %q", res.Notification.Kind)
		}
	})

	t.Run("already at the threshold does not re-trigger", func(t *testing.T) {
		res := Accrue(testCustomer(10, 4), cfg, testNow)

		if res.Points != 11 {
			t.Errorf("expected 11 points, got %d", res.Points)
		}
		if res.Reward != nil {
			t.Error("expected no reward until the next multiple")
		}
	})

	t.Run("the next multiple triggers again", func(t *testing.T) {
		res := Accrue(testCustomer(19, 12), cfg, testNow)

		if res.Points != 20 {
			t.Errorf("expected 20 points, got %d", res.Points)
		}
		if res.Reward == nil {
			t.Error("expected a reward at the second multiple")
		}
	})
}

func TestAccrueRewardFields(t *testing.T) {
	cfg := Config{PointsPerPurchase: 1, RewardThreshold: 10, RewardValidityDays: 30}
	res := Accrue(testCustomer(9, 3), cfg, testNow)

	if res.Reward == nil {
		t.Fatal("expected a reward")
	}
	r := res.Reward
	if r.Kind != models.RewardKindFreeDrink {
		t.Errorf("expected free_drink reward, got %q", r.Kind)
	}
	if r.Code == "" {
		t.Error("expected a reward code")
	}
	if r.CustomerID != 7 {
		t.Errorf("expected customer id 7, got %d", r.CustomerID)
	}
	if r.Used {
		t.Error("reward must be issued unused")
	}
	if !r.IssuedAt.Equal(testNow) {
		t.Errorf("expected issued at %v, got %v", testNow, r.IssuedAt)
	}
	if want := testNow.AddDate(0, 0, 30); !r.ExpiresAt.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, r.ExpiresAt)
	}
	if r.Expired(testNow) {
		t.Error("fresh reward must not be expired")
	}
	if !r.Expired(testNow.AddDate(0, 0, 31)) {
		t.Error("reward must expire after the validity window")
	}
}

func TestAccrueIsPure(t *testing.T) {
	cfg := Config{PointsPerPurchase: 1, RewardThreshold: 10, RewardValidityDays: 30}
	customer := testCustomer(9, 3)

	first := Accrue(customer, cfg, testNow)
	second := Accrue(customer, cfg, testNow)

	if first.Points != second.Points || first.Purchases != second.Purchases {
		t.Errorf("repeated accrual on the same snapshot diverged: %+v vs %+v", first, second)
	}
	if (first.Reward == nil) != (second.Reward == nil) {
		t.Error("repeated accrual disagreed on reward issuance")
	}
	if first.Notification.Kind != second.Notification.Kind {
		t.Error("repeated accrual disagreed on notification kind")
	}
	if customer.LoyaltyPoints != 9 || customer.TotalPurchases != 3 {
		t.Error("Accrue mutated its input customer")
	}
}

func TestAccrueMonotonicity(t *testing.T) {
	cfg := Config{PointsPerPurchase: 1, RewardThreshold: 10, RewardValidityDays: 30}
	customer := testCustomer(0, 0)

	const n = 25
	rewards := 0
	for i := 0; i < n; i++ {
		res := Accrue(customer, cfg, testNow)
		if res.Points != customer.LoyaltyPoints+1 {
			t.Fatalf("purchase %d: expected %d points, got %d", i+1, customer.LoyaltyPoints+1, res.Points)
		}
		customer.LoyaltyPoints = res.Points
		customer.TotalPurchases = res.Purchases
		if res.Reward != nil {
			rewards++
		}
	}

	if customer.LoyaltyPoints != n {
		t.Errorf("expected %d points after %d purchases, got %d", n, n, customer.LoyaltyPoints)
	}
	if customer.TotalPurchases != n {
		t.Errorf("expected %d purchases, got %d", n, customer.TotalPurchases)
	}
	// Rewards never consume points; crossings at 10 and 20.
	if rewards != 2 {
		t.Errorf("expected 2 rewards over %d purchases, got %d", n, rewards)
	}
}

func TestAccrueSingleRewardPerOrder(t *testing.T) {
	// A single increment skipping several multiples still issues one reward.
	cfg := Config{PointsPerPurchase: 25, RewardThreshold: 10, RewardValidityDays: 30}
	res := Accrue(testCustomer(0, 0), cfg, testNow)

	if res.Points != 25 {
		t.Errorf("expected 25 points, got %d", res.Points)
	}
	if res.Reward == nil {
		t.Fatal("expected a reward when multiples are crossed")
	}
	// Result carries at most one reward by construction; the follow-up
	// purchase must not inherit a second one from the skipped multiple.
	next := Accrue(testCustomer(res.Points, res.Purchases), cfg, testNow)
	if next.Reward == nil {
		t.Error("expected a reward: 25 to 50 crosses further multiples")
	}
	same := Accrue(testCustomer(20, 2), Config{PointsPerPurchase: 1, RewardThreshold: 10, RewardValidityDays: 30}, testNow)
	if same.Reward != nil {
		t.Error("expected no reward for 20 to 21")
	}
}

func TestAccrueZeroThreshold(t *testing.T) {
	cfg := Config{PointsPerPurchase: 1, RewardThreshold: 0, RewardValidityDays: 30}
	res := Accrue(testCustomer(5, 5), cfg, testNow)

	if res.Reward != nil {
		t.Error("a disabled threshold must never issue rewards")
	}
	if res.Points != 6 {
		t.Errorf("points must still accrue, got %d", res.Points)
	}
}
