package service

import (
	"log"
	"time"

	"ezpoints/internal/repository"
)

// DuplicateDetector decides whether a freshly extracted receipt is a
// re-submission of one the user already uploaded: same supplier, same
// amount, receipt date within the configured window.
type DuplicateDetector struct {
	receipts *repository.ReceiptRepository
	window   time.Duration
}

func NewDuplicateDetector(receipts *repository.ReceiptRepository, window time.Duration) *DuplicateDetector {
	return &DuplicateDetector{receipts: receipts, window: window}
}

// IsDuplicate is fail-open: if any required field is missing, or the lookup
// itself fails, the candidate passes. Duplicate points are preferable to
// rejecting every upload with incomplete OCR data.
func (d *DuplicateDetector) IsDuplicate(candidate ExtractedReceipt, userID uint) bool {
	if candidate.Supplier() == "" || candidate.Amount() == 0 || candidate.ReceiptDate == nil {
		return false
	}
	from := candidate.ReceiptDate.Add(-d.window)
	to := candidate.ReceiptDate.Add(d.window)
	exists, err := d.receipts.ExistsInWindow(userID, candidate.Supplier(), candidate.Amount(), from, to)
	if err != nil {
		log.Printf("[dedup] lookup failed for user %d: %v", userID, err)
		return false
	}
	return exists
}
