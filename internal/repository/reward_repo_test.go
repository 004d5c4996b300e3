package repository

import (
	"regexp"
	"testing"
	"time"

	"ezpoints/internal/domain"
	"ezpoints/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var couponCodePattern = regexp.MustCompile(`^EZ-GEN-[A-Z0-9]{6}$`)

func seedReward(t *testing.T, rewards *RewardRepository, required int, stock *int) *models.Reward {
	t.Helper()
	rw := models.Reward{
		Title:          "100円割引券",
		RequiredPoints: required,
		RewardType:     domain.RewardTypeCoupon,
		ValidDays:      30,
		StockQuantity:  stock,
		IsActive:       true,
	}
	require.NoError(t, rewards.Create(&rw))
	return &rw
}

func TestRedeemRewardHappyPath(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db)
	rewards := NewRewardRepository(db)
	rw := seedReward(t, rewards, 500, intPtr(10))

	_, err := profiles.Credit(1, 600, "earn", nil)
	require.NoError(t, err)

	ur, err := rewards.RedeemReward(1, rw.ID)
	require.NoError(t, err)
	assert.Regexp(t, couponCodePattern, ur.CouponCode)
	assert.Equal(t, 500, ur.RedeemedPoints)
	assert.Equal(t, domain.CouponStatusActive, ur.Status)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), ur.ExpiresAt, time.Minute)

	p, err := profiles.GetByUserID(1)
	require.NoError(t, err)
	assert.Equal(t, 100, p.ContributionPoints)
	sum, err := profiles.SumTransactions(p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 100, sum)

	updated, err := rewards.GetByID(rw.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, *updated.AvailableStock)
}

// Scenario: balance 400 against a 500 point reward. The redemption must
// leave no partial state: no coupon, no stock decrement, no ledger entry.
func TestRedeemRewardInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db)
	rewards := NewRewardRepository(db)
	rw := seedReward(t, rewards, 500, intPtr(10))

	_, err := profiles.Credit(1, 400, "earn", nil)
	require.NoError(t, err)

	_, err = rewards.RedeemReward(1, rw.ID)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	var userRewards int64
	require.NoError(t, db.Model(&models.UserReward{}).Count(&userRewards).Error)
	assert.Zero(t, userRewards)

	updated, err := rewards.GetByID(rw.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, *updated.AvailableStock)

	txs, err := profiles.ListTransactions(1, 10, 0)
	require.NoError(t, err)
	assert.Len(t, txs, 1, "only the original credit")
}

func TestRedeemRewardValidation(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db)
	rewards := NewRewardRepository(db)
	_, err := profiles.Credit(1, 5000, "earn", nil)
	require.NoError(t, err)

	t.Run("unknown reward", func(t *testing.T) {
		_, err := rewards.RedeemReward(1, 9999)
		assert.ErrorIs(t, err, ErrRewardNotFound)
	})

	t.Run("inactive reward", func(t *testing.T) {
		rw := seedReward(t, rewards, 100, nil)
		require.NoError(t, db.Model(rw).Update("is_active", false).Error)
		_, err := rewards.RedeemReward(1, rw.ID)
		assert.ErrorIs(t, err, ErrRewardInactive)
	})

	t.Run("exhausted stock", func(t *testing.T) {
		rw := seedReward(t, rewards, 100, intPtr(1))
		_, err := rewards.RedeemReward(1, rw.ID)
		require.NoError(t, err)
		_, err = rewards.RedeemReward(1, rw.ID)
		assert.ErrorIs(t, err, ErrInsufficientStock)

		updated, err := rewards.GetByID(rw.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, *updated.AvailableStock, "stock never goes negative")
	})

	t.Run("unlimited stock", func(t *testing.T) {
		rw := seedReward(t, rewards, 100, nil)
		for i := 0; i < 3; i++ {
			_, err := rewards.RedeemReward(1, rw.ID)
			require.NoError(t, err)
		}
	})
}

func TestUseCouponLifecycle(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db)
	rewards := NewRewardRepository(db)
	rw := seedReward(t, rewards, 100, nil)
	_, err := profiles.Credit(1, 1000, "earn", nil)
	require.NoError(t, err)

	ur, err := rewards.RedeemReward(1, rw.ID)
	require.NoError(t, err)

	storeID := uint(42)
	used, err := rewards.UseCoupon(ur.CouponCode, &storeID)
	require.NoError(t, err)
	assert.Equal(t, domain.CouponStatusUsed, used.Status)
	require.NotNil(t, used.UsedAt)
	require.NotNil(t, used.UsedStoreID)
	assert.Equal(t, storeID, *used.UsedStoreID)

	_, err = rewards.UseCoupon(ur.CouponCode, nil)
	assert.ErrorIs(t, err, ErrCouponNotActive)

	_, err = rewards.UseCoupon("EZ-GEN-ZZZZZZ", nil)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestUseCouponExpiresStaleCoupons(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db)
	rewards := NewRewardRepository(db)
	rw := seedReward(t, rewards, 100, nil)
	_, err := profiles.Credit(1, 1000, "earn", nil)
	require.NoError(t, err)

	ur, err := rewards.RedeemReward(1, rw.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.UserReward{}).
		Where("id = ?", ur.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	_, err = rewards.UseCoupon(ur.CouponCode, nil)
	assert.ErrorIs(t, err, ErrCouponExpired)

	// The transition to expired persists.
	stale, err := rewards.GetByCouponCode(ur.CouponCode)
	require.NoError(t, err)
	assert.Equal(t, domain.CouponStatusExpired, stale.Status)
}

func TestCouponCodesAreUnique(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db)
	rewards := NewRewardRepository(db)
	rw := seedReward(t, rewards, 10, nil)
	_, err := profiles.Credit(1, 1000, "earn", nil)
	require.NoError(t, err)

	seen := map[string]struct{}{}
	for i := 0; i < 20; i++ {
		ur, err := rewards.RedeemReward(1, rw.ID)
		require.NoError(t, err)
		_, dup := seen[ur.CouponCode]
		assert.False(t, dup, "coupon code %s issued twice", ur.CouponCode)
		seen[ur.CouponCode] = struct{}{}
	}
}
