package domain

import "time"

type BookingStatus string

const (
	BookingActive    BookingStatus = "ACTIVE"
	BookingOverstay  BookingStatus = "OVERSTAY"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// IsTerminal reports whether no further transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// Occupies reports whether a booking in this status holds its slot.
func (s BookingStatus) Occupies() bool {
	return s == BookingActive || s == BookingOverstay
}

type Booking struct {
	ID            int64         `json:"id" gorm:"primaryKey"`
	ParkingSlotID int64         `json:"parking_slot_id" gorm:"not null;index" validate:"required"`
	VehicleID     int64         `json:"vehicle_id" gorm:"not null;index" validate:"required"`
	StartTime     time.Time     `json:"start_time" gorm:"not null"`
	EndTime       *time.Time    `json:"end_time,omitempty"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	ParkingSlot *ParkingSlot `json:"parking_slot,omitempty" gorm:"foreignKey:ParkingSlotID"`
	Vehicle     *Vehicle     `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Payment     *Payment     `json:"payment,omitempty" gorm:"foreignKey:BookingID"`
}

func (Booking) TableName() string { return "bookings" }
