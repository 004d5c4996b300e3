package repository

import (
	"encoding/json"
	"errors"

	"ezpoints/internal/domain"
	"ezpoints/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInsufficientBalance = errors.New("insufficient point balance")

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(userID uint) (*models.RewardProfile, error) {
	var p models.RewardProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetOrCreate returns the user's profile, creating it lazily on first use.
func (r *ProfileRepository) GetOrCreate(userID uint) (*models.RewardProfile, error) {
	p, err := r.GetByUserID(userID)
	if err == nil {
		return p, nil
	}
	p = &models.RewardProfile{UserID: userID, ContributionPoints: 0, TotalEarnedPoints: 0, Level: 1}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(p).Error; err != nil {
		return nil, err
	}
	if p.ID == 0 {
		// Lost the insert race; another writer created it first.
		return r.GetByUserID(userID)
	}
	return p, nil
}

// Credit adds points to the balance and lifetime total and appends a
// positive ledger entry, all inside one locked transaction.
func (r *ProfileRepository) Credit(userID uint, points int, description string, metadata map[string]interface{}) (*models.RewardProfile, error) {
	var out *models.RewardProfile
	err := r.db.Transaction(func(tx *gorm.DB) error {
		p, err := applyPointsTx(tx, userID, points, domain.TxTypeEarn, description, metadata)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RedeemPoints subtracts points from the balance and appends a negative
// ledger entry. Fails with ErrInsufficientBalance when the balance is short;
// the lifetime total is never decremented.
func (r *ProfileRepository) RedeemPoints(userID uint, points int, description string, metadata map[string]interface{}) (*models.RewardProfile, error) {
	var out *models.RewardProfile
	err := r.db.Transaction(func(tx *gorm.DB) error {
		p, err := applyPointsTx(tx, userID, -points, domain.TxTypeRedeem, description, metadata)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProfileRepository) ListTransactions(userID uint, limit, offset int) ([]models.PointTransaction, error) {
	p, err := r.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	var list []models.PointTransaction
	err = r.db.Where("profile_id = ?", p.ID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// SumTransactions returns the signed sum of a profile's ledger entries. The
// cached contribution_points column must always equal this value.
func (r *ProfileRepository) SumTransactions(profileID uint) (int64, error) {
	var sum int64
	err := r.db.Model(&models.PointTransaction{}).
		Where("profile_id = ?", profileID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&sum).Error
	return sum, err
}

// applyPointsTx performs one balance mutation inside the caller's
// transaction: row-locks the profile, adjusts the cached balance (and
// lifetime total for earns), and appends the ledger entry. delta is signed.
// Shared by the profile and reward repositories so reward redemption can run
// it inside its own transaction.
func applyPointsTx(tx *gorm.DB, userID uint, delta int, txType, description string, metadata map[string]interface{}) (*models.RewardProfile, error) {
	var p models.RewardProfile
	err := forUpdate(tx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = models.RewardProfile{UserID: userID, Level: 1}
		err = tx.Create(&p).Error
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	switch txType {
	case domain.TxTypeEarn:
		p.ContributionPoints += delta
		p.TotalEarnedPoints += delta
		updates["contribution_points"] = p.ContributionPoints
		updates["total_earned_points"] = p.TotalEarnedPoints
	case domain.TxTypeRedeem:
		if p.ContributionPoints+delta < 0 {
			return nil, ErrInsufficientBalance
		}
		p.ContributionPoints += delta
		updates["contribution_points"] = p.ContributionPoints
	}
	if err := tx.Model(&p).Updates(updates).Error; err != nil {
		return nil, err
	}

	var metaJSON string
	if metadata != nil {
		b, _ := json.Marshal(metadata)
		metaJSON = string(b)
	}
	entry := models.PointTransaction{
		ProfileID:   p.ID,
		Type:        txType,
		Points:      delta,
		Description: description,
		Metadata:    metaJSON,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// forUpdate adds SELECT ... FOR UPDATE on engines that support it. SQLite
// serializes writers on its own and rejects the syntax.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
