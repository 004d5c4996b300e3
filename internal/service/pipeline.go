package service

import (
	"ezpoints/config"
	"ezpoints/internal/repository"

	"gorm.io/gorm"
)

// Pipeline bundles the upload orchestrator and the read/redemption surface,
// wired against one database handle. This is the composition root the
// embedding application (upload handler, UI backends) consumes.
type Pipeline struct {
	Upload  *UploadService
	Rewards *RewardsService
}

func NewPipeline(db *gorm.DB, cfg *config.RewardsConfig) *Pipeline {
	receipts := repository.NewReceiptRepository(db)
	profiles := repository.NewProfileRepository(db)
	badges := repository.NewBadgeRepository(db)
	rewards := repository.NewRewardRepository(db)
	stores := repository.NewStoreRepository(db)

	dedup := NewDuplicateDetector(receipts, cfg.DuplicateWindow)
	pointEngine := NewPointEngine(receipts, stores, cfg.StreakWindowDays)
	badgeEngine := NewBadgeEngine(receipts, badges, profiles, cfg.StreakWindowDays)

	return &Pipeline{
		Upload:  NewUploadService(receipts, profiles, dedup, pointEngine, badgeEngine),
		Rewards: NewRewardsService(profiles, badges, rewards),
	}
}
