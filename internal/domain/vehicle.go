package domain

import "time"

type VehicleType string

const (
	VehicleCar        VehicleType = "CAR"
	VehicleMotorcycle VehicleType = "MOTORCYCLE"
	VehicleTruck      VehicleType = "TRUCK"
)

type Vehicle struct {
	ID          int64       `json:"id" gorm:"primaryKey"`
	PlateNumber string      `json:"plate_number" gorm:"uniqueIndex;not null" validate:"required"`
	Type        VehicleType `json:"type" gorm:"type:varchar(16);not null"`
	UserID      int64       `json:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Vehicle) TableName() string { return "vehicles" }
