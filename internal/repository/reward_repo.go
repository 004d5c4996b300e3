package repository

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"ezpoints/internal/domain"
	"ezpoints/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRewardNotFound    = errors.New("reward not found")
	ErrRewardInactive    = errors.New("reward is not active")
	ErrInsufficientStock = errors.New("reward is out of stock")
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponNotActive   = errors.New("coupon already used or expired")
	ErrCouponExpired     = errors.New("coupon has expired")
)

const couponCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type RewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) GetByID(id uint) (*models.Reward, error) {
	var rw models.Reward
	err := r.db.First(&rw, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRewardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

func (r *RewardRepository) ListActive(limit, offset int) ([]models.Reward, error) {
	var list []models.Reward
	err := r.db.Where("is_active = ?", true).
		Order("is_featured DESC, required_points ASC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// Create inserts a catalog reward, initialising available stock from the
// configured stock quantity.
func (r *RewardRepository) Create(reward *models.Reward) error {
	if reward.StockQuantity != nil && reward.AvailableStock == nil {
		stock := *reward.StockQuantity
		reward.AvailableStock = &stock
	}
	return r.db.Create(reward).Error
}

// generateCouponCode returns EZ-GEN- followed by 6 random uppercase
// alphanumeric characters.
func generateCouponCode() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = couponCodeChars[int(b[i])%len(couponCodeChars)]
	}
	return domain.CouponCodePrefix + string(b), nil
}

// RedeemReward exchanges points for a catalog reward: validates the reward,
// stock and balance, issues a unique coupon, appends the redeem ledger entry
// and decrements stock. Everything runs in one transaction; any failure
// leaves no partial state.
func (r *RewardRepository) RedeemReward(userID, rewardID uint) (*models.UserReward, error) {
	var out *models.UserReward
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		err := forUpdate(tx).First(&reward, rewardID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRewardNotFound
		}
		if err != nil {
			return err
		}
		if !reward.IsActive {
			return ErrRewardInactive
		}
		if reward.StockQuantity != nil && (reward.AvailableStock == nil || *reward.AvailableStock <= 0) {
			return ErrInsufficientStock
		}

		validDays := reward.ValidDays
		if validDays <= 0 {
			validDays = 30
		}

		ur := models.UserReward{
			UserID:         userID,
			RewardID:       reward.ID,
			RedeemedPoints: reward.RequiredPoints,
			Status:         domain.CouponStatusActive,
			ExpiresAt:      time.Now().AddDate(0, 0, validDays),
		}
		// Bounded retry in case a generated code collides with an existing one.
		var created bool
		for i := 0; i < 5; i++ {
			code, err := generateCouponCode()
			if err != nil {
				return err
			}
			ur.CouponCode = code
			if err := tx.Create(&ur).Error; err == nil {
				created = true
				break
			}
		}
		if !created {
			return fmt.Errorf("failed to issue a unique coupon code after retries")
		}

		if _, err := applyPointsTx(tx, userID, -reward.RequiredPoints, domain.TxTypeRedeem,
			"特典交換: "+reward.Title,
			map[string]interface{}{"reward_id": reward.ID, "coupon_code": ur.CouponCode}); err != nil {
			return err
		}

		if reward.StockQuantity != nil {
			res := tx.Model(&models.Reward{}).
				Where("id = ? AND available_stock > 0", reward.ID).
				UpdateColumn("available_stock", gorm.Expr("available_stock - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}

		out = &ur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RewardRepository) GetByCouponCode(code string) (*models.UserReward, error) {
	var ur models.UserReward
	err := r.db.Preload("Reward").Where("coupon_code = ?", code).First(&ur).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ur, nil
}

// UseCoupon marks an active coupon as used. Coupons found past their expiry
// are transitioned to expired and reported as such; that transition persists.
func (r *RewardRepository) UseCoupon(code string, storeID *uint) (*models.UserReward, error) {
	ur, err := r.GetByCouponCode(code)
	if err != nil {
		return nil, err
	}
	if ur.Status != domain.CouponStatusActive {
		return nil, ErrCouponNotActive
	}
	now := time.Now()
	if now.After(ur.ExpiresAt) {
		if err := r.db.Model(ur).Update("status", domain.CouponStatusExpired).Error; err != nil {
			return nil, err
		}
		return nil, ErrCouponExpired
	}
	// Guarded update so two stores cannot redeem the same coupon.
	res := r.db.Model(&models.UserReward{}).
		Where("id = ? AND status = ?", ur.ID, domain.CouponStatusActive).
		Updates(map[string]interface{}{
			"status":        domain.CouponStatusUsed,
			"used_at":       now,
			"used_store_id": storeID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrCouponNotActive
	}
	return r.GetByCouponCode(code)
}

func (r *RewardRepository) ListByUser(userID uint, limit, offset int) ([]models.UserReward, error) {
	var list []models.UserReward
	err := r.db.Where("user_id = ?", userID).
		Preload("Reward").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
