package database

import (
	"log"

	"ezpoints/internal/domain"
	"ezpoints/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func intPtr(n int) *int { return &n }

// SeedBadges installs the initial badge catalog. Inserts are keyed on the
// unique badge name, so re-running is harmless.
func SeedBadges(db *gorm.DB) error {
	badges := []models.Badge{
		{Name: "はじめの一歩", Description: "初回レシートアップロード",
			CriteriaKind: domain.CriteriaReceiptCount, CriteriaComparator: ">=", CriteriaThreshold: 1,
			IconURL: "https://cdn-icons-png.flaticon.com/512/1828/1828506.png", IsActive: true},
		{Name: "レシート10枚達成", Description: "10枚のレシートをアップロードしました",
			CriteriaKind: domain.CriteriaReceiptCount, CriteriaComparator: ">=", CriteriaThreshold: 10,
			IconURL: "https://cdn-icons-png.flaticon.com/512/1828/1828506.png", IsActive: true},
		{Name: "3日坊主卒業", Description: "3日連続でレシートをアップロードしました",
			CriteriaKind: domain.CriteriaConsecutiveDays, CriteriaComparator: ">=", CriteriaThreshold: 3,
			IconURL: "https://cdn-icons-png.flaticon.com/512/1827/1827369.png", IsActive: true},
		{Name: "1万円突破", Description: "累計1万円分のお買い物をしました",
			CriteriaKind: domain.CriteriaTotalAmount, CriteriaComparator: ">=", CriteriaThreshold: 10000,
			IconURL: "https://cdn-icons-png.flaticon.com/512/1827/1827422.png", IsActive: true},
	}
	for i := range badges {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&badges[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("[seed] badge catalog ready (%d entries)", len(badges))
	return nil
}

// SeedRewards installs the initial reward catalog, skipping titles that
// already exist.
func SeedRewards(db *gorm.DB) error {
	rewards := []models.Reward{
		{Title: "100円割引券", Description: "全加盟店で使える100円割引クーポン",
			RequiredPoints: 500, RewardType: domain.RewardTypeCoupon, ValidDays: 30,
			TermsConditions: "500円以上のお買い物でご利用いただけます", IsFeatured: true, IsActive: true},
		{Title: "コロッケ1個プレゼント", Description: "商店街の人気コロッケ屋さんで使えるコロッケ券",
			RequiredPoints: 800, RewardType: domain.RewardTypeGift, ValidDays: 14,
			StockQuantity: intPtr(50), AvailableStock: intPtr(50), IsActive: true},
		{Title: "シークレット特典", Description: "毎月変わる特別な特典。今月は何が出るかお楽しみ！",
			RequiredPoints: 1500, RewardType: domain.RewardTypeExperience, ValidDays: 7,
			StockQuantity: intPtr(10), AvailableStock: intPtr(10), IsFeatured: true, IsActive: true},
	}
	for i := range rewards {
		var n int64
		if err := db.Model(&models.Reward{}).Where("title = ?", rewards[i].Title).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := db.Create(&rewards[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("[seed] reward catalog ready (%d entries)", len(rewards))
	return nil
}
