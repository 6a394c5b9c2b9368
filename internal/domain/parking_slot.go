package domain

import "time"

// ParkingSlot is the source of truth for occupancy. The occupancy pair
// (IsAvailable, VehicleID) is only ever written inside a reservation
// transaction so that it cannot drift from the bookings table.
type ParkingSlot struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Number      string    `json:"number" gorm:"uniqueIndex;not null" validate:"required"`
	Floor       int       `json:"floor" gorm:"not null"`
	IsAvailable bool      `json:"is_available" gorm:"not null;default:true"`
	VehicleID   *int64    `json:"vehicle_id,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

func (ParkingSlot) TableName() string { return "parking_slots" }
