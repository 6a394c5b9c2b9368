package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"parkhub/internal/domain"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockLedger) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockLedger) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type mockCanceller struct {
	mock.Mock
}

func (m *mockCanceller) CancelBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func ownedBooking(id, userID int64) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		VehicleID: 1,
		StartTime: time.Now(),
		Status:    domain.BookingActive,
		Vehicle:   &domain.Vehicle{ID: 1, UserID: userID},
	}
}

func TestGetBooking_Owner(t *testing.T) {
	ledger := new(mockLedger)
	canceller := new(mockCanceller)

	ledger.On("GetByID", mock.Anything, int64(1)).Return(ownedBooking(1, 42), nil)

	service := NewService(ledger, canceller)

	b, err := service.GetBooking(context.Background(), 1, 42, domain.RoleUser)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)
}

func TestGetBooking_OtherUserForbidden(t *testing.T) {
	ledger := new(mockLedger)
	canceller := new(mockCanceller)

	ledger.On("GetByID", mock.Anything, int64(1)).Return(ownedBooking(1, 42), nil)

	service := NewService(ledger, canceller)

	_, err := service.GetBooking(context.Background(), 1, 99, domain.RoleUser)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetBooking_StaffBypassesOwnership(t *testing.T) {
	ledger := new(mockLedger)
	canceller := new(mockCanceller)

	ledger.On("GetByID", mock.Anything, int64(1)).Return(ownedBooking(1, 42), nil)

	service := NewService(ledger, canceller)

	for _, role := range []domain.UserRole{domain.RoleAdmin, domain.RoleAttendant} {
		b, err := service.GetBooking(context.Background(), 1, 99, role)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), b.ID)
	}
}

func TestGetBooking_NotFound(t *testing.T) {
	ledger := new(mockLedger)
	canceller := new(mockCanceller)

	ledger.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(ledger, canceller)

	_, err := service.GetBooking(context.Background(), 404, 42, domain.RoleUser)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancel_DelegatesToReservationEngine(t *testing.T) {
	ledger := new(mockLedger)
	canceller := new(mockCanceller)

	b := ownedBooking(1, 42)
	ledger.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	canceller.On("CancelBooking", mock.Anything, int64(1)).
		Return(&domain.Booking{ID: 1, Status: domain.BookingCancelled}, nil)

	service := NewService(ledger, canceller)

	cancelled, err := service.Cancel(context.Background(), 1, 42, domain.RoleUser)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	canceller.AssertExpectations(t)
}

func TestCancel_OtherUserForbidden(t *testing.T) {
	ledger := new(mockLedger)
	canceller := new(mockCanceller)

	ledger.On("GetByID", mock.Anything, int64(1)).Return(ownedBooking(1, 42), nil)

	service := NewService(ledger, canceller)

	_, err := service.Cancel(context.Background(), 1, 99, domain.RoleUser)

	assert.ErrorIs(t, err, ErrForbidden)
	canceller.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything)
}

func TestGetMyBookings(t *testing.T) {
	ledger := new(mockLedger)
	canceller := new(mockCanceller)

	ledger.On("ListForUser", mock.Anything, int64(42)).
		Return([]domain.Booking{{ID: 1}, {ID: 2}}, nil)

	service := NewService(ledger, canceller)

	list, err := service.GetMyBookings(context.Background(), 42)

	assert.NoError(t, err)
	assert.Len(t, list, 2)
}
