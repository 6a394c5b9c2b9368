package vehicle

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"parkhub/internal/domain"
)

type Service struct {
	vehicles VehicleRepositoryInterface
	bookings OccupancyChecker
}

func NewService(vehicles VehicleRepositoryInterface, bookings OccupancyChecker) *Service {
	return &Service{vehicles: vehicles, bookings: bookings}
}

func (s *Service) CreateVehicle(ctx context.Context, userID int64, req CreateVehicleRequest) (*domain.Vehicle, error) {
	if _, err := s.vehicles.GetByPlate(ctx, req.PlateNumber); err == nil {
		return nil, ErrDuplicatePlate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	v := &domain.Vehicle{
		PlateNumber: req.PlateNumber,
		Type:        req.Type,
		UserID:      userID,
	}
	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) GetVehicle(ctx context.Context, id, actorID int64, actorRole domain.UserRole) (*domain.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actorRole.IsStaff() && v.UserID != actorID {
		return nil, ErrForbidden
	}
	return v, nil
}

func (s *Service) ListMyVehicles(ctx context.Context, userID int64) ([]domain.Vehicle, error) {
	return s.vehicles.ListByUser(ctx, userID)
}

func (s *Service) UpdateVehicle(ctx context.Context, id, actorID int64, actorRole domain.UserRole, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	v, err := s.GetVehicle(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if other, err := s.vehicles.GetByPlate(ctx, req.PlateNumber); err == nil {
		if other.ID != id {
			return nil, ErrDuplicatePlate
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	v.PlateNumber = req.PlateNumber
	v.Type = req.Type
	if err := s.vehicles.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVehicle refuses to remove a vehicle that still holds a slot.
func (s *Service) DeleteVehicle(ctx context.Context, id, actorID int64, actorRole domain.UserRole) error {
	if _, err := s.GetVehicle(ctx, id, actorID, actorRole); err != nil {
		return err
	}

	occupying, err := s.bookings.HasOccupyingForVehicle(ctx, id)
	if err != nil {
		return err
	}
	if occupying {
		return ErrHasActive
	}

	return s.vehicles.Delete(ctx, id)
}
