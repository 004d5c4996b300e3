package models

import "time"

// Badge is a catalog entry describing one achievement. Criteria is a typed
// triple rather than a free-form blob so award logic and consumers agree on
// its shape.
type Badge struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description        string    `gorm:"type:text" json:"description"`
	IconURL            string    `gorm:"size:512" json:"icon_url"`
	CriteriaKind       string    `gorm:"size:32;not null" json:"criteria_kind"` // receipt_count | consecutive_days | total_amount | single_purchase
	CriteriaComparator string    `gorm:"size:4;not null;default:'>='" json:"criteria_comparator"`
	CriteriaThreshold  int       `gorm:"not null" json:"criteria_threshold"`
	IsActive           bool      `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

func (Badge) TableName() string { return "badges" }

// UserBadge joins a profile to a badge it has earned. The composite unique
// index is what makes awards idempotent under concurrent evaluation.
type UserBadge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProfileID uint      `gorm:"not null;uniqueIndex:idx_profile_badge" json:"profile_id"`
	BadgeID   uint      `gorm:"not null;uniqueIndex:idx_profile_badge" json:"badge_id"`
	EarnedAt  time.Time `gorm:"autoCreateTime" json:"earned_at"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

func (UserBadge) TableName() string { return "user_badges" }
