package booking

import (
	"context"
	"time"

	"parkhub/internal/domain"
)

// Ledger is the read surface over booking records.
type Ledger interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
}

// Canceller performs the compound cancel mutation. Implemented by the
// reservation engine; the ledger itself never writes slot occupancy.
type Canceller interface {
	CancelBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
}

// OverdueStore is what the sweeper needs from storage.
type OverdueStore interface {
	ListOverdueActive(ctx context.Context, now time.Time) ([]domain.Booking, error)
	MarkOverstay(ctx context.Context, id int64) error
}
