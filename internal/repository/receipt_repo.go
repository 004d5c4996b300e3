package repository

import (
	"time"

	"ezpoints/internal/models"

	"gorm.io/gorm"
)

type ReceiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// Create persists a receipt together with its line items.
func (r *ReceiptRepository) Create(receipt *models.Receipt) error {
	return r.db.Create(receipt).Error
}

func (r *ReceiptRepository) GetByID(id uint) (*models.Receipt, error) {
	var rec models.Receipt
	err := r.db.Preload("Items").First(&rec, id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *ReceiptRepository) CountByUser(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Receipt{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// SumAmountByUser returns the cumulative total_amount across all of a user's
// receipts. Missing amounts count as zero.
func (r *ReceiptRepository) SumAmountByUser(userID uint) (int64, error) {
	var sum int64
	err := r.db.Model(&models.Receipt{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// MaxAmountByUser returns the largest single total_amount across all of a
// user's receipts, 0 when the user has none.
func (r *ReceiptRepository) MaxAmountByUser(userID uint) (int64, error) {
	var max int64
	err := r.db.Model(&models.Receipt{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(total_amount), 0)").
		Scan(&max).Error
	return max, err
}

// ListCreatedSince returns the user's receipts created at or after the given
// time, newest first. Used for the trailing streak window.
func (r *ReceiptRepository) ListCreatedSince(userID uint, since time.Time) ([]models.Receipt, error) {
	var list []models.Receipt
	err := r.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// ExistsInWindow reports whether the user already has a receipt with the
// given supplier and amount whose receipt_date falls inside [from, to].
func (r *ReceiptRepository) ExistsInWindow(userID uint, supplierName string, totalAmount int, from, to time.Time) (bool, error) {
	var n int64
	err := r.db.Model(&models.Receipt{}).
		Where("user_id = ? AND supplier_name = ? AND total_amount = ? AND receipt_date BETWEEN ? AND ?",
			userID, supplierName, totalAmount, from, to).
		Count(&n).Error
	return n > 0, err
}

func (r *ReceiptRepository) ListByUser(userID uint, limit, offset int) ([]models.Receipt, error) {
	var list []models.Receipt
	err := r.db.Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
