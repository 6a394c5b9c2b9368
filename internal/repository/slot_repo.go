package repository

import (
	"context"

	"gorm.io/gorm"

	"parkhub/internal/domain"
)

type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*domain.ParkingSlot, error) {
	var s domain.ParkingSlot
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SlotRepository) ListAll(ctx context.Context) ([]domain.ParkingSlot, error) {
	var slots []domain.ParkingSlot
	tx := r.db.WithContext(ctx).
		Order("floor asc, number asc").
		Find(&slots)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return slots, nil
}

// ListAvailable returns unoccupied slots. The vehicle type hint from the
// available-slots endpoint is deliberately not part of the query; see the
// parking handler.
func (r *SlotRepository) ListAvailable(ctx context.Context) ([]domain.ParkingSlot, error) {
	var slots []domain.ParkingSlot
	tx := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("floor asc, number asc").
		Find(&slots)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return slots, nil
}
