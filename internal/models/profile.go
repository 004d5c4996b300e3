package models

import "time"

// RewardProfile tracks a user's loyalty state. ContributionPoints is the
// spendable balance; it is a cached running total that must always equal the
// signed sum of the profile's PointTransactions. TotalEarnedPoints only ever
// grows.
type RewardProfile struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	ContributionPoints int       `gorm:"not null;default:0" json:"contribution_points"`
	TotalEarnedPoints  int       `gorm:"not null;default:0" json:"total_earned_points"`
	Level              int       `gorm:"not null;default:1" json:"level"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Badges       []UserBadge        `gorm:"foreignKey:ProfileID" json:"badges,omitempty"`
	Transactions []PointTransaction `gorm:"foreignKey:ProfileID" json:"-"`
}

func (RewardProfile) TableName() string { return "reward_profiles" }

// PointTransaction is an append-only ledger entry. Points is signed:
// positive for earn, negative for redeem.
type PointTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProfileID   uint      `gorm:"not null;index" json:"profile_id"`
	Type        string    `gorm:"size:20;not null;index" json:"type"` // earn | redeem
	Points      int       `gorm:"not null" json:"points"`
	Description string    `gorm:"size:255" json:"description"`
	Metadata    string    `gorm:"type:text" json:"metadata"` // JSON blob (receipt id, breakdown, coupon code...)
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (PointTransaction) TableName() string { return "point_transactions" }
