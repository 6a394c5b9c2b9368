package repository

import (
	"context"

	"gorm.io/gorm"

	"parkhub/internal/domain"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).Where("plate_number = ?", plate).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&vehicles)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return vehicles, nil
}

func (r *VehicleRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Where("user_id = ?", userID).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	return r.db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Where("id = ?", v.ID).
		Updates(map[string]interface{}{
			"plate_number": v.PlateNumber,
			"type":         v.Type,
		}).Error
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Vehicle{}, id).Error
}
