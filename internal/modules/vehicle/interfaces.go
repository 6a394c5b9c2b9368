package vehicle

import (
	"context"

	"parkhub/internal/domain"
)

type VehicleRepositoryInterface interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
}

// OccupancyChecker reports whether a vehicle currently holds a slot.
type OccupancyChecker interface {
	HasOccupyingForVehicle(ctx context.Context, vehicleID int64) (bool, error)
}
