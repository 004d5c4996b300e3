package service

import "time"

// ExtractedReceipt is the partial structure the external OCR collaborator
// produces. Any of the pointer fields may be missing.
type ExtractedReceipt struct {
	SupplierName *string
	TotalAmount  *int
	ReceiptDate  *time.Time
	StoreID      *uint
	ImagePath    string
	Items        []ExtractedLineItem
}

type ExtractedLineItem struct {
	Description string
	Amount      int
}

// Amount returns the extracted total, treating a missing value as 0.
func (e ExtractedReceipt) Amount() int {
	if e.TotalAmount == nil {
		return 0
	}
	return *e.TotalAmount
}

// Supplier returns the extracted supplier name, "" when missing.
func (e ExtractedReceipt) Supplier() string {
	if e.SupplierName == nil {
		return ""
	}
	return *e.SupplierName
}

// UploadContext carries the optional circumstances of an upload. Bonuses
// that need a missing field are skipped, never failed.
type UploadContext struct {
	UploadTime  *time.Time
	WeatherCode *int // WMO weather interpretation code
}

// BonusDetail is one entry of a point calculation breakdown. Kind tags the
// rule that produced it; the rule-specific fields are only set by that rule.
type BonusDetail struct {
	Kind            string `json:"kind"`
	Name            string `json:"name"`
	Points          int    `json:"points"`
	Amount          int    `json:"amount,omitempty"`
	ConsecutiveDays int    `json:"consecutive_days,omitempty"`
	WeatherCode     int    `json:"weather_code,omitempty"`
	Hour            int    `json:"hour,omitempty"`
	Weekday         string `json:"weekday,omitempty"`
	StoreName       string `json:"store_name,omitempty"`
	Message         string `json:"message,omitempty"`
}

// PointResult is the outcome of one point calculation.
type PointResult struct {
	BasePoints   int           `json:"base_points"`
	BonusPoints  int           `json:"bonus_points"`
	TotalPoints  int           `json:"total_points"`
	BonusDetails []BonusDetail `json:"bonus_details"`
}

// BadgeAward reports one badge newly granted by an evaluation pass.
type BadgeAward struct {
	BadgeID   uint   `json:"badge_id"`
	BadgeName string `json:"badge_name"`
	IsNew     bool   `json:"is_new"`
}

// RewardOutcome aggregates everything an upload produced. Degraded is set
// when the best-effort point/badge half failed after the receipt was durably
// saved; the receipt itself is always kept.
type RewardOutcome struct {
	ReceiptID     uint          `json:"receipt_id"`
	PointsEarned  int           `json:"points_earned"`
	BasePoints    int           `json:"base_points"`
	BonusPoints   int           `json:"bonus_points"`
	BonusDetails  []BonusDetail `json:"bonus_details"`
	BadgesAwarded []BadgeAward  `json:"badges_awarded"`
	Degraded      bool          `json:"degraded"`
}
