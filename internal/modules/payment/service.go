package payment

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parkhub/internal/domain"
	"parkhub/internal/repository"
)

type Service struct {
	db       *gorm.DB
	payments *repository.PaymentRepository
	gateway  Gateway
	events   SlotEventPublisher
}

func NewService(db *gorm.DB, payments *repository.PaymentRepository, gateway Gateway, events SlotEventPublisher) *Service {
	if gateway == nil {
		gateway = SimulatedGateway{}
	}
	return &Service{db: db, payments: payments, gateway: gateway, events: events}
}

// SimulatedGateway approves most charges; stands in for a real provider.
type SimulatedGateway struct{}

func (SimulatedGateway) Charge(_ context.Context, _ *domain.Payment) (bool, error) {
	return rand.Float64() > 0.1, nil
}

func (s *Service) CreatePayment(ctx context.Context, userID int64, req CreatePaymentRequest) (*domain.Payment, error) {
	if req.BookingID != nil {
		var cnt int64
		if err := s.db.WithContext(ctx).
			Model(&domain.Booking{}).
			Where("id = ?", *req.BookingID).
			Count(&cnt).Error; err != nil {
			return nil, err
		}
		if cnt == 0 {
			return nil, ErrBookingNotFound
		}
	}

	p := &domain.Payment{
		Amount:    req.Amount,
		BookingID: req.BookingID,
		UserID:    userID,
		Method:    req.Method,
		Status:    domain.PaymentPending,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ProcessPayment settles a pending payment. The provider is charged
// before the transaction opens, so the charge never runs while rows are
// locked and a settled charge is never rolled back with the transaction.
// The transaction then re-checks the status under a row lock and records
// the outcome exactly once. On success the linked booking, if still
// occupying its slot, is completed and the slot freed in the same
// transaction, so a payment can never be marked paid while leaving the
// slot state behind.
func (s *Service) ProcessPayment(ctx context.Context, paymentID, actorID int64, actorRole domain.UserRole) (*domain.Payment, error) {
	var p domain.Payment
	if err := s.db.WithContext(ctx).First(&p, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actorRole.IsStaff() && p.UserID != actorID {
		return nil, ErrForbidden
	}
	if p.Status != domain.PaymentPending {
		return nil, ErrAlreadyProcessed
	}

	ok, err := s.gateway.Charge(ctx, &p)
	if err != nil {
		return nil, err
	}
	status := domain.PaymentCompleted
	if !ok {
		status = domain.PaymentFailed
	}

	var freed *domain.ParkingSlot
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, paymentID).Error; err != nil {
			return err
		}
		if p.Status != domain.PaymentPending {
			// A concurrent settle won the mark; never overwrite it.
			return ErrAlreadyProcessed
		}

		p.Status = status
		if err := tx.Model(&domain.Payment{}).
			Where("id = ?", p.ID).
			Update("status", status).Error; err != nil {
			return err
		}

		if !ok || p.BookingID == nil {
			return nil
		}

		var booking domain.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, *p.BookingID).Error; err != nil {
			return err
		}
		if !booking.Status.Occupies() {
			// Already cancelled, completed or released; nothing to finish.
			return nil
		}

		now := time.Now()
		if err := tx.Model(&domain.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"status":   domain.BookingCompleted,
				"end_time": now,
			}).Error; err != nil {
			return err
		}

		var slot domain.ParkingSlot
		if err := tx.Model(&domain.ParkingSlot{}).
			Where("id = ?", booking.ParkingSlotID).
			Updates(map[string]interface{}{
				"is_available": true,
				"vehicle_id":   nil,
			}).Error; err != nil {
			return err
		}
		if err := tx.First(&slot, booking.ParkingSlotID).Error; err != nil {
			return err
		}
		freed = &slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil && freed != nil {
		s.events.PublishSlotChange(*freed)
	}
	return &p, nil
}

func (s *Service) GetMyPayments(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}
