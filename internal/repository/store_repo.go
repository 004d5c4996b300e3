package repository

import (
	"ezpoints/internal/models"

	"gorm.io/gorm"
)

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// GetActive returns the store when it exists and is active.
func (r *StoreRepository) GetActive(id uint) (*models.Store, error) {
	var s models.Store
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepository) Create(store *models.Store) error {
	return r.db.Create(store).Error
}
