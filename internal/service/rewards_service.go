package service

import (
	"time"

	"ezpoints/internal/domain"
	"ezpoints/internal/models"
	"ezpoints/internal/repository"
)

// RewardsService is the read/redemption surface UI collaborators consume:
// balance, badge list, redemption history, the active reward catalog, and
// coupon operations.
type RewardsService struct {
	profiles *repository.ProfileRepository
	badges   *repository.BadgeRepository
	rewards  *repository.RewardRepository
}

func NewRewardsService(profiles *repository.ProfileRepository, badges *repository.BadgeRepository, rewards *repository.RewardRepository) *RewardsService {
	return &RewardsService{profiles: profiles, badges: badges, rewards: rewards}
}

// GetProfile returns the user's reward profile, creating it lazily.
func (s *RewardsService) GetProfile(userID uint) (*models.RewardProfile, error) {
	return s.profiles.GetOrCreate(userID)
}

func (s *RewardsService) ListBadges(userID uint) ([]models.UserBadge, error) {
	profile, err := s.profiles.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return s.badges.ListByProfile(profile.ID)
}

func (s *RewardsService) ListTransactions(userID uint, limit, offset int) ([]models.PointTransaction, error) {
	return s.profiles.ListTransactions(userID, limit, offset)
}

func (s *RewardsService) ListActiveRewards(limit, offset int) ([]models.Reward, error) {
	return s.rewards.ListActive(limit, offset)
}

func (s *RewardsService) ListRedemptions(userID uint, limit, offset int) ([]models.UserReward, error) {
	return s.rewards.ListByUser(userID, limit, offset)
}

func (s *RewardsService) RedeemReward(userID, rewardID uint) (*models.UserReward, error) {
	return s.rewards.RedeemReward(userID, rewardID)
}

func (s *RewardsService) UseCoupon(code string, storeID *uint) (*models.UserReward, error) {
	return s.rewards.UseCoupon(code, storeID)
}

// CouponStatus is the read-only validation result for a coupon code.
type CouponStatus struct {
	CouponCode  string    `json:"coupon_code"`
	RewardTitle string    `json:"reward_title"`
	Status      string    `json:"status"`
	ExpiresAt   time.Time `json:"expires_at"`
	Valid       bool      `json:"valid"`
}

// ValidateCoupon reports whether a coupon could be used right now, without
// mutating it.
func (s *RewardsService) ValidateCoupon(code string) (*CouponStatus, error) {
	ur, err := s.rewards.GetByCouponCode(code)
	if err != nil {
		return nil, err
	}
	valid := ur.Status == domain.CouponStatusActive && time.Now().Before(ur.ExpiresAt)
	return &CouponStatus{
		CouponCode:  ur.CouponCode,
		RewardTitle: ur.Reward.Title,
		Status:      ur.Status,
		ExpiresAt:   ur.ExpiresAt,
		Valid:       valid,
	}, nil
}
