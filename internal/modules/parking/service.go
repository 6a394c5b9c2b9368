package parking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parkhub/internal/domain"
	"parkhub/internal/repository"
)

// txRetries bounds transparent retries of storage-level write conflicts.
// Business-rule failures are never retried.
const txRetries = 3

// Service is the reservation engine: the only place where booking status
// and slot occupancy are written, always together, inside one transaction
// per operation. The slot row is locked with SELECT ... FOR UPDATE before
// the read-modify-write, so concurrent bookings of the same slot serialize
// and the loser observes is_available=false.
type Service struct {
	db     *gorm.DB
	slots  *repository.SlotRepository
	events SlotEventPublisher
}

func NewService(db *gorm.DB, slots *repository.SlotRepository, events SlotEventPublisher) *Service {
	return &Service{db: db, slots: slots, events: events}
}

func (s *Service) ListSlots(ctx context.Context) ([]domain.ParkingSlot, error) {
	return s.slots.ListAll(ctx)
}

// ListAvailableSlots accepts a vehicle type hint that is currently not
// applied to the query; it is reserved for type-specific slot matching.
func (s *Service) ListAvailableSlots(ctx context.Context, _ domain.VehicleType) ([]domain.ParkingSlot, error) {
	return s.slots.ListAvailable(ctx)
}

func (s *Service) BookSlot(ctx context.Context, req BookSlotRequest) (*domain.Booking, error) {
	var booking domain.Booking
	var slot domain.ParkingSlot

	err := s.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, req.ParkingSlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotAvailable
			}
			return err
		}
		if !slot.IsAvailable {
			return ErrSlotNotAvailable
		}

		booking = domain.Booking{
			ParkingSlotID: slot.ID,
			VehicleID:     req.VehicleID,
			StartTime:     req.StartTime,
			Status:        domain.BookingActive,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		slot.IsAvailable = false
		slot.VehicleID = &req.VehicleID
		return tx.Model(&domain.ParkingSlot{}).
			Where("id = ?", slot.ID).
			Updates(map[string]interface{}{
				"is_available": false,
				"vehicle_id":   req.VehicleID,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	s.publish(slot)
	return &booking, nil
}

func (s *Service) CancelBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var booking domain.Booking
	var slot domain.ParkingSlot

	err := s.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.Status != domain.BookingActive {
			return ErrNotActive
		}

		now := time.Now()
		booking.Status = domain.BookingCancelled
		booking.EndTime = &now
		if err := tx.Model(&domain.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"status":   domain.BookingCancelled,
				"end_time": now,
			}).Error; err != nil {
			return err
		}

		return freeSlot(tx, booking.ParkingSlotID, &slot)
	})
	if err != nil {
		return nil, err
	}

	s.publish(slot)
	return &booking, nil
}

// ExtendBooking adds hours to the later of the current end time or now.
// There is deliberately no status check: extending an OVERSTAY or even a
// finished booking succeeds, matching the lenient baseline behavior.
func (s *Service) ExtendBooking(ctx context.Context, req ExtendBookingRequest) (*domain.Booking, error) {
	var booking domain.Booking

	err := s.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, req.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		base := time.Now()
		if booking.EndTime != nil && booking.EndTime.After(base) {
			base = *booking.EndTime
		}
		newEnd := base.Add(time.Duration(req.AdditionalHours) * time.Hour)

		booking.EndTime = &newEnd
		return tx.Model(&domain.Booking{}).
			Where("id = ?", booking.ID).
			Update("end_time", newEnd).Error
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (s *Service) ReleaseSlot(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var booking domain.Booking
	var slot domain.ParkingSlot

	err := s.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.Status.IsTerminal() {
			return ErrAlreadyFinished
		}

		now := time.Now()
		booking.Status = domain.BookingCompleted
		booking.EndTime = &now
		if err := tx.Model(&domain.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"status":   domain.BookingCompleted,
				"end_time": now,
			}).Error; err != nil {
			return err
		}

		return freeSlot(tx, booking.ParkingSlotID, &slot)
	})
	if err != nil {
		return nil, err
	}

	s.publish(slot)
	return &booking, nil
}

func (s *Service) CreateSlot(ctx context.Context, req CreateSlotRequest) (*domain.ParkingSlot, error) {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	slot := domain.ParkingSlot{
		Number:      req.Number,
		Floor:       req.Floor,
		IsAvailable: available,
	}
	if err := s.db.WithContext(ctx).Create(&slot).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrDuplicateNumber
		}
		return nil, err
	}
	return &slot, nil
}

// CreateSlotsBulk validates the whole batch against existing numbers and
// inserts all of it in one transaction: either every slot is created or
// none is. The unique index on number backs the pre-check against a
// concurrent bulk insert passing it at the same time.
func (s *Service) CreateSlotsBulk(ctx context.Context, req BulkCreateSlotsRequest) (*BulkCreateResult, error) {
	numbers := make([]string, 0, len(req.Slots))
	seen := make(map[string]bool, len(req.Slots))
	var dups []string
	for _, sl := range req.Slots {
		if seen[sl.Number] {
			dups = append(dups, sl.Number)
			continue
		}
		seen[sl.Number] = true
		numbers = append(numbers, sl.Number)
	}
	if len(dups) > 0 {
		return nil, &DuplicateNumbersError{Numbers: dups}
	}

	var created int
	err := s.inTransaction(ctx, func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Model(&domain.ParkingSlot{}).
			Where("number IN ?", numbers).
			Pluck("number", &existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			return &DuplicateNumbersError{Numbers: existing}
		}

		slots := make([]domain.ParkingSlot, 0, len(req.Slots))
		for _, sl := range req.Slots {
			available := true
			if sl.IsAvailable != nil {
				available = *sl.IsAvailable
			}
			slots = append(slots, domain.ParkingSlot{
				Number:      sl.Number,
				Floor:       sl.Floor,
				IsAvailable: available,
			})
		}
		if err := tx.Create(&slots).Error; err != nil {
			if isUniqueConstraintError(err) {
				return errBulkInsertConflict
			}
			return err
		}
		created = len(slots)
		return nil
	})
	if err != nil {
		if errors.Is(err, errBulkInsertConflict) {
			// A concurrent insert slipped past the pre-check. Blame only
			// the submitted numbers that now exist, not the whole batch.
			return nil, &DuplicateNumbersError{Numbers: s.collidingNumbers(ctx, numbers)}
		}
		return nil, err
	}
	return &BulkCreateResult{Count: created}, nil
}

var errBulkInsertConflict = errors.New("slot numbers collided during insert")

// collidingNumbers narrows a unique-index violation to the submitted
// numbers already present. Falls back to the full batch when the lookup
// cannot tell.
func (s *Service) collidingNumbers(ctx context.Context, numbers []string) []string {
	var existing []string
	err := s.db.WithContext(ctx).
		Model(&domain.ParkingSlot{}).
		Where("number IN ?", numbers).
		Pluck("number", &existing).Error
	if err != nil || len(existing) == 0 {
		return numbers
	}
	return existing
}

// freeSlot marks the slot vacant inside the caller's transaction and loads
// the resulting row into out for event publication after commit.
func freeSlot(tx *gorm.DB, slotID int64, out *domain.ParkingSlot) error {
	if err := tx.Model(&domain.ParkingSlot{}).
		Where("id = ?", slotID).
		Updates(map[string]interface{}{
			"is_available": true,
			"vehicle_id":   nil,
		}).Error; err != nil {
		return err
	}
	return tx.First(out, slotID).Error
}

func (s *Service) publish(slot domain.ParkingSlot) {
	if s.events != nil && slot.ID != 0 {
		s.events.PublishSlotChange(slot)
	}
}

// inTransaction runs fn in a transaction and transparently retries
// storage-level write conflicts a bounded number of times. Business-rule
// errors surface immediately.
func (s *Service) inTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < txRetries; attempt++ {
		err = s.db.WithContext(ctx).Transaction(fn)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return err
}

func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}
