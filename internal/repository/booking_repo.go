package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"parkhub/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).
		Preload("ParkingSlot").
		Preload("Vehicle").
		Preload("Payment").
		First(&b, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

// ListForUser returns bookings for every vehicle owned by the user,
// newest start time first.
func (r *BookingRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	tx := r.db.WithContext(ctx).
		Joins("JOIN vehicles ON vehicles.id = bookings.vehicle_id").
		Where("vehicles.user_id = ?", userID).
		Preload("ParkingSlot").
		Preload("Vehicle").
		Preload("Payment").
		Order("bookings.start_time desc").
		Find(&bookings)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bookings, nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	tx := r.db.WithContext(ctx).
		Preload("ParkingSlot").
		Preload("Vehicle").
		Preload("Vehicle.User").
		Preload("Payment").
		Order("start_time desc").
		Find(&bookings)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bookings, nil
}

// ListOverdueActive returns ACTIVE bookings whose end time passed before now.
// Used exclusively by the overstay sweeper.
func (r *BookingRepository) ListOverdueActive(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	var bookings []domain.Booking
	tx := r.db.WithContext(ctx).
		Where("status = ? AND end_time IS NOT NULL AND end_time < ?", domain.BookingActive, now).
		Find(&bookings)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bookings, nil
}

// MarkOverstay flips a single booking to OVERSTAY, but only while it is
// still ACTIVE so a rescan or a racing cancel cannot be overwritten.
func (r *BookingRepository) MarkOverstay(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, domain.BookingActive).
		Update("status", domain.BookingOverstay).Error
}

// HasOccupyingForVehicle reports whether the vehicle currently holds a slot.
func (r *BookingRepository) HasOccupyingForVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("vehicle_id = ? AND status IN ?", vehicleID,
			[]domain.BookingStatus{domain.BookingActive, domain.BookingOverstay}).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
