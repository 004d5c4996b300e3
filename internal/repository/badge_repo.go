package repository

import (
	"ezpoints/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// EnsureBadge returns the catalog entry with the given name, creating it if
// absent. The insert is conflict-safe on the unique name index, so two
// concurrent triggers cannot create duplicate catalog rows.
func (r *BadgeRepository) EnsureBadge(badge *models.Badge) (*models.Badge, error) {
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(badge).Error; err != nil {
		return nil, err
	}
	if badge.ID != 0 {
		return badge, nil
	}
	// Conflict: the badge already existed, fetch it.
	var existing models.Badge
	if err := r.db.Where("name = ?", badge.Name).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Award grants a badge to a profile. The insert is a no-op when the
// (profile, badge) pair already exists; the returned bool reports whether a
// new row was written.
func (r *BadgeRepository) Award(profileID, badgeID uint) (bool, error) {
	ub := models.UserBadge{ProfileID: profileID, BadgeID: badgeID}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(&ub)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// HeldBadgeIDs returns the set of badge ids a profile already holds.
func (r *BadgeRepository) HeldBadgeIDs(profileID uint) (map[uint]struct{}, error) {
	var ids []uint
	err := r.db.Model(&models.UserBadge{}).
		Where("profile_id = ?", profileID).
		Pluck("badge_id", &ids).Error
	if err != nil {
		return nil, err
	}
	held := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		held[id] = struct{}{}
	}
	return held, nil
}

func (r *BadgeRepository) ListByProfile(profileID uint) ([]models.UserBadge, error) {
	var list []models.UserBadge
	err := r.db.Where("profile_id = ?", profileID).
		Preload("Badge").
		Order("earned_at DESC").
		Find(&list).Error
	return list, err
}
