package service

import (
	"log"
	"strings"
	"time"

	"ezpoints/internal/domain"
	"ezpoints/internal/repository"
)

// Supplier names containing one of these mark independently run shops that
// get the individual-shop support bonus.
var individualShopKeywords = []string{"商店", "個人", "家族", "〜屋", "〜店"}

var snowWeatherCodes = map[int]struct{}{71: {}, 73: {}, 75: {}, 77: {}, 85: {}, 86: {}}

// PointEngine computes the point award for one receipt upload: a base score
// plus six independent, additive bonus rules evaluated in a fixed order.
type PointEngine struct {
	receipts         *repository.ReceiptRepository
	stores           *repository.StoreRepository
	streakWindowDays int
}

func NewPointEngine(receipts *repository.ReceiptRepository, stores *repository.StoreRepository, streakWindowDays int) *PointEngine {
	return &PointEngine{receipts: receipts, stores: stores, streakWindowDays: streakWindowDays}
}

// Calculate never returns an error: bonuses whose inputs are missing are
// skipped, bonuses whose lookups fail contribute nothing, and an unexpected
// panic degrades to the fixed fallback. Point calculation must never block
// receipt persistence.
func (e *PointEngine) Calculate(receipt ExtractedReceipt, userID uint, uctx UploadContext) (result PointResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[points] calculation failed for user %d: %v", userID, r)
			result = fallbackResult()
		}
	}()

	base := e.basePoints(receipt)
	var details []BonusDetail
	bonus := 0

	add := func(points int, detail BonusDetail) {
		if points > 0 {
			details = append(details, detail)
			bonus += points
		}
	}

	add(e.amountBonus(receipt))
	add(e.consecutiveBonus(userID))
	add(e.firstTimeBonus(userID))
	add(e.weatherBonus(uctx))
	add(e.timeBonus(uctx))
	add(e.storeBonus(receipt))

	return PointResult{
		BasePoints:   base,
		BonusPoints:  bonus,
		TotalPoints:  base + bonus,
		BonusDetails: details,
	}
}

func fallbackResult() PointResult {
	return PointResult{
		BasePoints:  10,
		BonusPoints: 0,
		TotalPoints: 10,
		BonusDetails: []BonusDetail{{
			Kind:    domain.BonusKindError,
			Message: "ボーナス計算エラー",
		}},
	}
}

// basePoints penalizes incomplete OCR extraction without blocking the upload.
func (e *PointEngine) basePoints(receipt ExtractedReceipt) int {
	if receipt.Supplier() == "" || receipt.Amount() == 0 {
		return 5
	}
	return 10
}

// amountBonus awards the highest applicable purchase-amount tier only.
func (e *PointEngine) amountBonus(receipt ExtractedReceipt) (int, BonusDetail) {
	amount := receipt.Amount()
	tier := func(points int, name string) (int, BonusDetail) {
		return points, BonusDetail{Kind: domain.BonusKindAmount, Name: name, Points: points, Amount: amount}
	}
	switch {
	case amount >= 3000:
		return tier(50, "高額購入ボーナス")
	case amount >= 1000:
		return tier(20, "まとめ買いボーナス")
	case amount >= 500:
		return tier(10, "お買い物ボーナス")
	case amount >= 100:
		return tier(5, "ちょこっと買いボーナス")
	}
	return 0, BonusDetail{}
}

func (e *PointEngine) consecutiveBonus(userID uint) (int, BonusDetail) {
	since := time.Now().AddDate(0, 0, -e.streakWindowDays)
	recent, err := e.receipts.ListCreatedSince(userID, since)
	if err != nil {
		log.Printf("[points] consecutive bonus lookup failed for user %d: %v", userID, err)
		return 0, BonusDetail{}
	}
	if len(recent) == 0 {
		return 0, BonusDetail{}
	}
	times := make([]time.Time, len(recent))
	for i, r := range recent {
		times[i] = r.CreatedAt
	}
	days := ConsecutiveDays(times)

	tier := func(points int, name string) (int, BonusDetail) {
		return points, BonusDetail{Kind: domain.BonusKindConsecutive, Name: name, Points: points, ConsecutiveDays: days}
	}
	switch {
	case days >= 30:
		return tier(100, "継続は力なり（30日連続）")
	case days >= 7:
		return tier(50, "一週間チャレンジャー")
	case days >= 3:
		return tier(20, "3日坊主卒業")
	}
	return 0, BonusDetail{}
}

// firstTimeBonus fires when this is the user's first-ever receipt. The count
// is taken after the receipt is saved, so first upload means count == 1.
func (e *PointEngine) firstTimeBonus(userID uint) (int, BonusDetail) {
	n, err := e.receipts.CountByUser(userID)
	if err != nil {
		log.Printf("[points] first-time bonus lookup failed for user %d: %v", userID, err)
		return 0, BonusDetail{}
	}
	if n == 1 {
		return 50, BonusDetail{
			Kind:    domain.BonusKindFirstTime,
			Name:    "初回アップロードボーナス",
			Points:  50,
			Message: "初めてのレシートアップロードありがとうございます！",
		}
	}
	return 0, BonusDetail{}
}

func (e *PointEngine) weatherBonus(uctx UploadContext) (int, BonusDetail) {
	if uctx.WeatherCode == nil {
		return 0, BonusDetail{}
	}
	code := *uctx.WeatherCode
	if _, ok := snowWeatherCodes[code]; ok {
		return 25, BonusDetail{Kind: domain.BonusKindWeather, Name: "雪の日お疲れさまボーナス", Points: 25, WeatherCode: code}
	}
	if (code >= 51 && code <= 67) || code == 80 || code == 81 || code == 82 {
		return 15, BonusDetail{Kind: domain.BonusKindWeather, Name: "雨の日お疲れさまボーナス", Points: 15, WeatherCode: code}
	}
	return 0, BonusDetail{}
}

// timeBonus checks the time-of-day windows before the weekend rule; the
// first match wins.
func (e *PointEngine) timeBonus(uctx UploadContext) (int, BonusDetail) {
	if uctx.UploadTime == nil {
		return 0, BonusDetail{}
	}
	t := *uctx.UploadTime
	hour := t.Hour()
	if hour >= 6 && hour < 9 {
		return 10, BonusDetail{Kind: domain.BonusKindTime, Name: "早起きボーナス", Points: 10, Hour: hour}
	}
	if hour >= 18 && hour < 21 {
		return 5, BonusDetail{Kind: domain.BonusKindTime, Name: "お疲れさまボーナス", Points: 5, Hour: hour}
	}
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return 5, BonusDetail{Kind: domain.BonusKindTime, Name: "週末ボーナス", Points: 5, Weekday: wd.String()}
	}
	return 0, BonusDetail{}
}

// storeBonus prefers a registered member store over the keyword heuristic.
func (e *PointEngine) storeBonus(receipt ExtractedReceipt) (int, BonusDetail) {
	if receipt.StoreID != nil {
		store, err := e.stores.GetActive(*receipt.StoreID)
		if err == nil {
			return 10, BonusDetail{Kind: domain.BonusKindStore, Name: "商店街加盟店ボーナス", Points: 10, StoreName: store.Name}
		}
		log.Printf("[points] store lookup failed for store %d: %v", *receipt.StoreID, err)
	}
	supplier := receipt.Supplier()
	for _, kw := range individualShopKeywords {
		if strings.Contains(supplier, kw) {
			return 15, BonusDetail{Kind: domain.BonusKindStore, Name: "個人商店応援ボーナス", Points: 15, StoreName: supplier}
		}
	}
	return 0, BonusDetail{}
}
