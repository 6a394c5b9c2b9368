package user

import (
	"context"

	"parkhub/internal/domain"
)

type UserRepositoryInterface interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role domain.UserRole) error
	Delete(ctx context.Context, id int64) error
}

// VehicleCounter reports how many vehicles a user still has registered.
type VehicleCounter interface {
	CountByUser(ctx context.Context, userID int64) (int64, error)
}
