package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"parkhub/internal/domain"
)

type Service struct {
	bookings  Ledger
	canceller Canceller
}

func NewService(bookings Ledger, canceller Canceller) *Service {
	return &Service{bookings: bookings, canceller: canceller}
}

// GetBooking returns a booking, restricted to its owner unless the actor
// is staff.
func (s *Service) GetBooking(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !actorRole.IsStaff() && !ownedBy(b, actorID) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListForUser(ctx, userID)
}

func (s *Service) GetAllBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

// Cancel verifies ownership, then delegates the compound mutation to the
// reservation engine.
func (s *Service) Cancel(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !actorRole.IsStaff() && !ownedBy(b, actorID) {
		return nil, ErrForbidden
	}

	return s.canceller.CancelBooking(ctx, bookingID)
}

func ownedBy(b *domain.Booking, userID int64) bool {
	return b.Vehicle != nil && b.Vehicle.UserID == userID
}
