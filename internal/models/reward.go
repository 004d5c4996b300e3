package models

import "time"

// Reward is a catalog item users can exchange points for. A nil
// StockQuantity means unlimited stock; otherwise AvailableStock tracks the
// remaining units and never drops below zero.
type Reward struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"size:255;not null;index" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	RequiredPoints  int        `gorm:"not null" json:"required_points"`
	RewardType      string     `gorm:"size:20;not null" json:"reward_type"` // coupon | gift | experience | digital
	StoreID         *uint      `gorm:"index" json:"store_id"`               // nil = valid at every member store
	StockQuantity   *int       `json:"stock_quantity"`
	AvailableStock  *int       `json:"available_stock"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
	IsFeatured      bool       `gorm:"default:false" json:"is_featured"`
	ValidDays       int        `gorm:"default:30" json:"valid_days"`
	TermsConditions string     `gorm:"type:text" json:"terms_conditions"`
	ImageURL        string     `gorm:"size:512" json:"image_url"`
	ExpiresAt       *time.Time `json:"expires_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (Reward) TableName() string { return "rewards" }

// UserReward is one redemption: the generated coupon, the point cost
// snapshot, and its lifecycle status.
type UserReward struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	RewardID       uint       `gorm:"not null;index" json:"reward_id"`
	CouponCode     string     `gorm:"size:32;uniqueIndex;not null" json:"coupon_code"`
	RedeemedPoints int        `gorm:"not null" json:"redeemed_points"`
	Status         string     `gorm:"size:20;not null;default:'active';index" json:"status"` // active | used | expired
	ExpiresAt      time.Time  `json:"expires_at"`
	UsedAt         *time.Time `json:"used_at"`
	UsedStoreID    *uint      `json:"used_store_id"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`

	Reward Reward `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
}

func (UserReward) TableName() string { return "user_rewards" }
