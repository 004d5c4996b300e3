package domain

const (
	TxTypeEarn   = "earn"
	TxTypeRedeem = "redeem"
)

const (
	CouponStatusActive  = "active"
	CouponStatusUsed    = "used"
	CouponStatusExpired = "expired"
)

const (
	RewardTypeCoupon     = "coupon"
	RewardTypeGift       = "gift"
	RewardTypeExperience = "experience"
	RewardTypeDigital    = "digital"
)

// Bonus kinds for point calculation breakdown entries.
const (
	BonusKindAmount      = "amount_bonus"
	BonusKindConsecutive = "consecutive_bonus"
	BonusKindFirstTime   = "first_time_bonus"
	BonusKindWeather     = "weather_bonus"
	BonusKindTime        = "time_bonus"
	BonusKindStore       = "store_bonus"
	BonusKindError       = "error"
)

// Badge criteria kinds.
const (
	CriteriaReceiptCount    = "receipt_count"
	CriteriaConsecutiveDays = "consecutive_days"
	CriteriaTotalAmount     = "total_amount"
	CriteriaSinglePurchase  = "single_purchase"
)

// CouponCodePrefix starts every generated coupon code.
const CouponCodePrefix = "EZ-GEN-"
