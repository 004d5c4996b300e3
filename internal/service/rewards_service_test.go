package service

import (
	"testing"
	"time"

	"ezpoints/config"
	"ezpoints/internal/database"
	"ezpoints/internal/domain"
	"ezpoints/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineEndToEnd(t *testing.T) {
	db := newTestDB(t)
	cfg := config.Load()
	p := NewPipeline(db, &cfg.Rewards)
	require.NoError(t, database.SeedRewards(db))

	// Upload earns points.
	outcome, err := p.Upload.ProcessUpload(ExtractedReceipt{
		SupplierName: strPtr("田中商店"),
		TotalAmount:  intPtr(3500),
		ReceiptDate:  timePtr(time.Now()),
	}, 1, UploadContext{})
	require.NoError(t, err)
	// base 10 + amount 50 + first upload 50 + individual shop 15
	assert.Equal(t, 125, outcome.PointsEarned)

	profile, err := p.Rewards.GetProfile(1)
	require.NoError(t, err)
	assert.Equal(t, 125, profile.ContributionPoints)

	userBadges, err := p.Rewards.ListBadges(1)
	require.NoError(t, err)
	assert.NotEmpty(t, userBadges)

	catalog, err := p.Rewards.ListActiveRewards(10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, catalog)

	// Cheapest seeded reward costs 500; earn enough and redeem.
	_, err = p.Rewards.RedeemReward(1, catalog[0].ID)
	assert.Error(t, err, "125 points cannot buy a 500 point reward")

	for i := 0; i < 5; i++ {
		_, err = p.Upload.ProcessUpload(ExtractedReceipt{
			SupplierName: strPtr("田中商店"),
			TotalAmount:  intPtr(3500 + i + 1),
			ReceiptDate:  timePtr(time.Now()),
		}, 1, UploadContext{})
		require.NoError(t, err)
	}

	profile, err = p.Rewards.GetProfile(1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, profile.ContributionPoints, 500)

	ur, err := p.Rewards.RedeemReward(1, catalog[0].ID)
	require.NoError(t, err)

	status, err := p.Rewards.ValidateCoupon(ur.CouponCode)
	require.NoError(t, err)
	assert.True(t, status.Valid)
	assert.Equal(t, domain.CouponStatusActive, status.Status)

	history, err := p.Rewards.ListRedemptions(1, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, ur.CouponCode, history[0].CouponCode)

	txs, err := p.Rewards.ListTransactions(1, 20, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, txs)

	used, err := p.Rewards.UseCoupon(ur.CouponCode, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.CouponStatusUsed, used.Status)

	status, err = p.Rewards.ValidateCoupon(ur.CouponCode)
	require.NoError(t, err)
	assert.False(t, status.Valid)
}

func TestListBadgesEmptyForNewUser(t *testing.T) {
	db := newTestDB(t)
	cfg := config.Load()
	p := NewPipeline(db, &cfg.Rewards)

	badges, err := p.Rewards.ListBadges(42)
	require.NoError(t, err)
	assert.Empty(t, badges)

	// The lazy profile was created with a clean slate.
	var profile models.RewardProfile
	require.NoError(t, db.Where("user_id = ?", 42).First(&profile).Error)
	assert.Zero(t, profile.ContributionPoints)
	assert.Equal(t, 1, profile.Level)
}
