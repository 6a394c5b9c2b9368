package vehicle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"parkhub/internal/domain"
)

type mockVehicleRepo struct {
	mock.Mock
}

func (m *mockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *mockVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *mockVehicleRepo) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *mockVehicleRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Vehicle, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *mockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *mockVehicleRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockOccupancyChecker struct {
	mock.Mock
}

func (m *mockOccupancyChecker) HasOccupyingForVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	args := m.Called(ctx, vehicleID)
	return args.Bool(0), args.Error(1)
}

func TestCreateVehicle_Success(t *testing.T) {
	repo := new(mockVehicleRepo)
	checker := new(mockOccupancyChecker)

	repo.On("GetByPlate", mock.Anything, "KA-01-1234").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, checker)

	v, err := service.CreateVehicle(context.Background(), 42, CreateVehicleRequest{
		PlateNumber: "KA-01-1234",
		Type:        domain.VehicleCar,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), v.UserID)
	repo.AssertExpectations(t)
}

func TestCreateVehicle_DuplicatePlate(t *testing.T) {
	repo := new(mockVehicleRepo)
	checker := new(mockOccupancyChecker)

	repo.On("GetByPlate", mock.Anything, "KA-01-1234").
		Return(&domain.Vehicle{ID: 1, PlateNumber: "KA-01-1234"}, nil)

	service := NewService(repo, checker)

	_, err := service.CreateVehicle(context.Background(), 42, CreateVehicleRequest{
		PlateNumber: "KA-01-1234",
		Type:        domain.VehicleCar,
	})

	assert.ErrorIs(t, err, ErrDuplicatePlate)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetVehicle_OwnershipEnforced(t *testing.T) {
	repo := new(mockVehicleRepo)
	checker := new(mockOccupancyChecker)

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Vehicle{ID: 5, UserID: 42}, nil)

	service := NewService(repo, checker)

	_, err := service.GetVehicle(context.Background(), 5, 99, domain.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	v, err := service.GetVehicle(context.Background(), 5, 99, domain.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), v.ID)
}

func TestUpdateVehicle_PlateTakenByOther(t *testing.T) {
	repo := new(mockVehicleRepo)
	checker := new(mockOccupancyChecker)

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Vehicle{ID: 5, UserID: 42}, nil)
	repo.On("GetByPlate", mock.Anything, "TAKEN-01").Return(&domain.Vehicle{ID: 6, PlateNumber: "TAKEN-01"}, nil)

	service := NewService(repo, checker)

	_, err := service.UpdateVehicle(context.Background(), 5, 42, domain.RoleUser, UpdateVehicleRequest{
		PlateNumber: "TAKEN-01",
		Type:        domain.VehicleCar,
	})

	assert.ErrorIs(t, err, ErrDuplicatePlate)
}

func TestUpdateVehicle_KeepingOwnPlate(t *testing.T) {
	repo := new(mockVehicleRepo)
	checker := new(mockOccupancyChecker)

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Vehicle{ID: 5, UserID: 42, PlateNumber: "MINE-01"}, nil)
	repo.On("GetByPlate", mock.Anything, "MINE-01").Return(&domain.Vehicle{ID: 5, PlateNumber: "MINE-01"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, checker)

	v, err := service.UpdateVehicle(context.Background(), 5, 42, domain.RoleUser, UpdateVehicleRequest{
		PlateNumber: "MINE-01",
		Type:        domain.VehicleTruck,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.VehicleTruck, v.Type)
}

func TestDeleteVehicle_BlockedWhileOccupying(t *testing.T) {
	repo := new(mockVehicleRepo)
	checker := new(mockOccupancyChecker)

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Vehicle{ID: 5, UserID: 42}, nil)
	checker.On("HasOccupyingForVehicle", mock.Anything, int64(5)).Return(true, nil)

	service := NewService(repo, checker)

	err := service.DeleteVehicle(context.Background(), 5, 42, domain.RoleUser)

	assert.ErrorIs(t, err, ErrHasActive)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteVehicle_Success(t *testing.T) {
	repo := new(mockVehicleRepo)
	checker := new(mockOccupancyChecker)

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Vehicle{ID: 5, UserID: 42}, nil)
	checker.On("HasOccupyingForVehicle", mock.Anything, int64(5)).Return(false, nil)
	repo.On("Delete", mock.Anything, int64(5)).Return(nil)

	service := NewService(repo, checker)

	err := service.DeleteVehicle(context.Background(), 5, 42, domain.RoleUser)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
