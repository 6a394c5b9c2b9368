package vehicle

import "parkhub/internal/domain"

type CreateVehicleRequest struct {
	PlateNumber string             `json:"plate_number" validate:"required"`
	Type        domain.VehicleType `json:"type" validate:"required,oneof=CAR MOTORCYCLE TRUCK"`
}

type UpdateVehicleRequest struct {
	PlateNumber string             `json:"plate_number" validate:"required"`
	Type        domain.VehicleType `json:"type" validate:"required,oneof=CAR MOTORCYCLE TRUCK"`
}
