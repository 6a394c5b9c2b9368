package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"parkhub/internal/domain"
)

// Service is the admin-facing account directory. Role checks happen at
// the router; every operation here assumes an admin caller.
type Service struct {
	users    UserRepositoryInterface
	vehicles VehicleCounter
}

func NewService(users UserRepositoryInterface, vehicles VehicleCounter) *Service {
	return &Service{users: users, vehicles: vehicles}
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *Service) UpdateRole(ctx context.Context, id int64, role domain.UserRole) (*domain.User, error) {
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// DeleteUser refuses to remove the calling admin or any account that
// still has vehicles registered.
func (s *Service) DeleteUser(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return ErrSelfDelete
	}

	cnt, err := s.vehicles.CountByUser(ctx, id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrHasVehicles
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
