package service

import (
	"errors"
	"log"
	"time"

	"ezpoints/internal/models"
	"ezpoints/internal/repository"
)

// ErrDuplicateReceipt rejects a re-submission before anything is stored.
var ErrDuplicateReceipt = errors.New("receipt already uploaded")

// UploadService orchestrates the reward pipeline for one receipt upload:
// duplicate gate, durable receipt save, then the best-effort point and badge
// stages. Once the receipt is saved, nothing downstream can fail the upload.
type UploadService struct {
	receipts *repository.ReceiptRepository
	profiles *repository.ProfileRepository
	dedup    *DuplicateDetector
	points   *PointEngine
	badges   *BadgeEngine
}

func NewUploadService(
	receipts *repository.ReceiptRepository,
	profiles *repository.ProfileRepository,
	dedup *DuplicateDetector,
	points *PointEngine,
	badges *BadgeEngine,
) *UploadService {
	return &UploadService{
		receipts: receipts,
		profiles: profiles,
		dedup:    dedup,
		points:   points,
		badges:   badges,
	}
}

// ProcessUpload runs the full pipeline. It returns an error only for the
// duplicate gate and the receipt save itself; point/badge failures are
// logged and reflected as a degraded outcome with zero-effect values for the
// failed half.
func (s *UploadService) ProcessUpload(input ExtractedReceipt, userID uint, uctx UploadContext) (*RewardOutcome, error) {
	if s.dedup.IsDuplicate(input, userID) {
		return nil, ErrDuplicateReceipt
	}

	receipt := models.Receipt{
		UserID:       userID,
		StoreID:      input.StoreID,
		SupplierName: input.SupplierName,
		TotalAmount:  input.TotalAmount,
		ReceiptDate:  receiptDate(input),
		ImagePath:    input.ImagePath,
	}
	for _, item := range input.Items {
		receipt.Items = append(receipt.Items, models.ReceiptItem{
			Description: item.Description,
			Amount:      item.Amount,
		})
	}
	if err := s.receipts.Create(&receipt); err != nil {
		return nil, err
	}

	outcome := &RewardOutcome{ReceiptID: receipt.ID}

	result := s.points.Calculate(input, userID, uctx)
	if result.TotalPoints > 0 {
		_, err := s.profiles.Credit(userID, result.TotalPoints, "レシートアップロード: "+supplierOrUnknown(input), map[string]interface{}{
			"receipt_id":    receipt.ID,
			"base_points":   result.BasePoints,
			"bonus_points":  result.BonusPoints,
			"bonus_details": result.BonusDetails,
		})
		if err != nil {
			log.Printf("[upload] point credit failed for user %d receipt %d: %v", userID, receipt.ID, err)
			outcome.Degraded = true
		} else {
			outcome.PointsEarned = result.TotalPoints
			outcome.BasePoints = result.BasePoints
			outcome.BonusPoints = result.BonusPoints
			outcome.BonusDetails = result.BonusDetails
		}
	}

	awarded, err := s.badges.EvaluateAndAward(userID)
	if err != nil {
		log.Printf("[upload] badge evaluation failed for user %d receipt %d: %v", userID, receipt.ID, err)
		outcome.Degraded = true
	} else {
		outcome.BadgesAwarded = awarded
	}

	return outcome, nil
}

func receiptDate(input ExtractedReceipt) time.Time {
	if input.ReceiptDate != nil {
		return *input.ReceiptDate
	}
	return time.Now()
}

func supplierOrUnknown(input ExtractedReceipt) string {
	if s := input.Supplier(); s != "" {
		return s
	}
	return "不明"
}
