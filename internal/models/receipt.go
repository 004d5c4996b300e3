package models

import (
	"time"
)

// Receipt is the durable record of one uploaded purchase receipt.
// SupplierName and TotalAmount are pointers because OCR extraction is
// partial: either may be missing on a stored receipt.
type Receipt struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	StoreID      *uint     `gorm:"index" json:"store_id"`
	SupplierName *string   `gorm:"size:255;index" json:"supplier_name"`
	TotalAmount  *int      `json:"total_amount"` // integer yen
	ReceiptDate  time.Time `gorm:"index" json:"receipt_date"`
	ImagePath    string    `gorm:"size:512" json:"image_path"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Items []ReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Receipt) TableName() string { return "receipts" }

// Amount returns the receipt total, treating a missing amount as 0.
func (r *Receipt) Amount() int {
	if r.TotalAmount == nil {
		return 0
	}
	return *r.TotalAmount
}

type ReceiptItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ReceiptID   uint   `gorm:"not null;index" json:"receipt_id"`
	Description string `gorm:"size:255" json:"description"`
	Amount      int    `json:"amount"`
}

func (ReceiptItem) TableName() string { return "receipt_items" }

// Store is the registry of affiliated shops consulted by the
// store-affiliation bonus and coupon redemption.
type Store struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null;index" json:"name"`
	BusinessType string    `gorm:"size:64;index" json:"business_type"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Store) TableName() string { return "stores" }
