package service

import (
	"path/filepath"
	"testing"
	"time"

	"ezpoints/internal/database"
	"ezpoints/internal/models"
	"ezpoints/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

type testEnv struct {
	db       *gorm.DB
	receipts *repository.ReceiptRepository
	profiles *repository.ProfileRepository
	badges   *repository.BadgeRepository
	rewards  *repository.RewardRepository
	stores   *repository.StoreRepository

	dedup       *DuplicateDetector
	pointEngine *PointEngine
	badgeEngine *BadgeEngine
	upload      *UploadService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	env := &testEnv{
		db:       db,
		receipts: repository.NewReceiptRepository(db),
		profiles: repository.NewProfileRepository(db),
		badges:   repository.NewBadgeRepository(db),
		rewards:  repository.NewRewardRepository(db),
		stores:   repository.NewStoreRepository(db),
	}
	env.dedup = NewDuplicateDetector(env.receipts, 30*time.Minute)
	env.pointEngine = NewPointEngine(env.receipts, env.stores, 30)
	env.badgeEngine = NewBadgeEngine(env.receipts, env.badges, env.profiles, 30)
	env.upload = NewUploadService(env.receipts, env.profiles, env.dedup, env.pointEngine, env.badgeEngine)
	return env
}

// seedReceipt stores a receipt directly, bypassing the pipeline, so tests
// can shape a user's history.
func seedReceipt(t *testing.T, db *gorm.DB, userID uint, supplier string, amount int, createdAt time.Time) models.Receipt {
	t.Helper()
	rec := models.Receipt{
		UserID:       userID,
		SupplierName: &supplier,
		TotalAmount:  &amount,
		ReceiptDate:  createdAt,
		CreatedAt:    createdAt,
	}
	require.NoError(t, db.Create(&rec).Error)
	return rec
}

func strPtr(s string) *string        { return &s }
func intPtr(n int) *int              { return &n }
func timePtr(t time.Time) *time.Time { return &t }
