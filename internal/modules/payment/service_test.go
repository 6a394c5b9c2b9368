package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"parkhub/internal/domain"
	"parkhub/internal/repository"
)

// stubGateway always returns its configured outcome.
type stubGateway struct {
	approve bool
	err     error
}

func (g stubGateway) Charge(_ context.Context, _ *domain.Payment) (bool, error) {
	return g.approve, g.err
}

func setupPaymentService(t *testing.T, gateway Gateway) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:payment_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Vehicle{}, &domain.ParkingSlot{}, &domain.Booking{}, &domain.Payment{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return NewService(db, repository.NewPaymentRepository(db), gateway, nil), db
}

func seedActiveBooking(t *testing.T, db *gorm.DB, userID int64) domain.Booking {
	t.Helper()
	slot := domain.ParkingSlot{Number: fmt.Sprintf("P-%d", time.Now().UnixNano()), Floor: 1, IsAvailable: false}
	if err := db.Create(&slot).Error; err != nil {
		t.Fatalf("failed to create slot: %v", err)
	}
	vehicle := domain.Vehicle{PlateNumber: fmt.Sprintf("PL-%d", time.Now().UnixNano()), Type: domain.VehicleCar, UserID: userID}
	if err := db.Create(&vehicle).Error; err != nil {
		t.Fatalf("failed to create vehicle: %v", err)
	}
	vid := vehicle.ID
	b := domain.Booking{
		ParkingSlotID: slot.ID,
		VehicleID:     vid,
		StartTime:     time.Now().Add(-time.Hour),
		Status:        domain.BookingActive,
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	// is_available must be set here too: gorm skips zero-value fields
	// that carry a default tag on Create.
	if err := db.Model(&domain.ParkingSlot{}).Where("id = ?", slot.ID).
		Updates(map[string]interface{}{"vehicle_id": vid, "is_available": false}).Error; err != nil {
		t.Fatalf("failed to occupy slot: %v", err)
	}
	return b
}

func TestCreatePayment_Pending(t *testing.T) {
	svc, db := setupPaymentService(t, stubGateway{approve: true})
	booking := seedActiveBooking(t, db, 42)

	p, err := svc.CreatePayment(context.Background(), 42, CreatePaymentRequest{
		Amount:    25.0,
		BookingID: &booking.ID,
		Method:    domain.MethodCard,
	})
	if err != nil {
		t.Fatalf("CreatePayment returned error: %v", err)
	}
	if p.Status != domain.PaymentPending {
		t.Fatalf("expected status %s, got %s", domain.PaymentPending, p.Status)
	}
}

func TestCreatePayment_UnknownBooking(t *testing.T) {
	svc, _ := setupPaymentService(t, stubGateway{approve: true})

	missing := int64(9999)
	_, err := svc.CreatePayment(context.Background(), 42, CreatePaymentRequest{
		Amount:    10.0,
		BookingID: &missing,
		Method:    domain.MethodCash,
	})
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestProcessPayment_SuccessCompletesBookingAndFreesSlot(t *testing.T) {
	svc, db := setupPaymentService(t, stubGateway{approve: true})
	booking := seedActiveBooking(t, db, 42)

	p, err := svc.CreatePayment(context.Background(), 42, CreatePaymentRequest{
		Amount:    25.0,
		BookingID: &booking.ID,
		Method:    domain.MethodCard,
	})
	if err != nil {
		t.Fatalf("CreatePayment returned error: %v", err)
	}

	processed, err := svc.ProcessPayment(context.Background(), p.ID, 42, domain.RoleUser)
	if err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}
	if processed.Status != domain.PaymentCompleted {
		t.Fatalf("expected status %s, got %s", domain.PaymentCompleted, processed.Status)
	}

	var b domain.Booking
	if err := db.First(&b, booking.ID).Error; err != nil {
		t.Fatalf("failed to reload booking: %v", err)
	}
	if b.Status != domain.BookingCompleted {
		t.Fatalf("expected booking %s, got %s", domain.BookingCompleted, b.Status)
	}
	if b.EndTime == nil {
		t.Fatal("expected booking end time to be set")
	}

	var slot domain.ParkingSlot
	if err := db.First(&slot, booking.ParkingSlotID).Error; err != nil {
		t.Fatalf("failed to reload slot: %v", err)
	}
	if !slot.IsAvailable || slot.VehicleID != nil {
		t.Fatal("expected slot to be freed by successful payment")
	}
}

func TestProcessPayment_DeclinedLeavesBookingAlone(t *testing.T) {
	svc, db := setupPaymentService(t, stubGateway{approve: false})
	booking := seedActiveBooking(t, db, 42)

	p, err := svc.CreatePayment(context.Background(), 42, CreatePaymentRequest{
		Amount:    25.0,
		BookingID: &booking.ID,
		Method:    domain.MethodCard,
	})
	if err != nil {
		t.Fatalf("CreatePayment returned error: %v", err)
	}

	processed, err := svc.ProcessPayment(context.Background(), p.ID, 42, domain.RoleUser)
	if err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}
	if processed.Status != domain.PaymentFailed {
		t.Fatalf("expected status %s, got %s", domain.PaymentFailed, processed.Status)
	}

	var b domain.Booking
	if err := db.First(&b, booking.ID).Error; err != nil {
		t.Fatalf("failed to reload booking: %v", err)
	}
	if b.Status != domain.BookingActive {
		t.Fatalf("expected booking to stay %s, got %s", domain.BookingActive, b.Status)
	}

	var slot domain.ParkingSlot
	if err := db.First(&slot, booking.ParkingSlotID).Error; err != nil {
		t.Fatalf("failed to reload slot: %v", err)
	}
	if slot.IsAvailable {
		t.Fatal("expected slot to stay occupied after declined payment")
	}
}

func TestProcessPayment_AlreadyProcessed(t *testing.T) {
	svc, db := setupPaymentService(t, stubGateway{approve: true})
	booking := seedActiveBooking(t, db, 42)

	p, err := svc.CreatePayment(context.Background(), 42, CreatePaymentRequest{
		Amount:    25.0,
		BookingID: &booking.ID,
		Method:    domain.MethodCash,
	})
	if err != nil {
		t.Fatalf("CreatePayment returned error: %v", err)
	}
	if _, err := svc.ProcessPayment(context.Background(), p.ID, 42, domain.RoleUser); err != nil {
		t.Fatalf("first ProcessPayment returned error: %v", err)
	}

	_, err = svc.ProcessPayment(context.Background(), p.ID, 42, domain.RoleUser)
	if !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
}

func TestProcessPayment_OtherUserForbidden(t *testing.T) {
	svc, db := setupPaymentService(t, stubGateway{approve: true})
	booking := seedActiveBooking(t, db, 42)

	p, err := svc.CreatePayment(context.Background(), 42, CreatePaymentRequest{
		Amount:    25.0,
		BookingID: &booking.ID,
		Method:    domain.MethodCard,
	})
	if err != nil {
		t.Fatalf("CreatePayment returned error: %v", err)
	}

	_, err = svc.ProcessPayment(context.Background(), p.ID, 99, domain.RoleUser)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Staff may settle any payment.
	processed, err := svc.ProcessPayment(context.Background(), p.ID, 99, domain.RoleAttendant)
	if err != nil {
		t.Fatalf("staff ProcessPayment returned error: %v", err)
	}
	if processed.Status != domain.PaymentCompleted {
		t.Fatalf("expected status %s, got %s", domain.PaymentCompleted, processed.Status)
	}
}

func TestProcessPayment_CancelledBookingNotResurrected(t *testing.T) {
	svc, db := setupPaymentService(t, stubGateway{approve: true})
	booking := seedActiveBooking(t, db, 42)

	p, err := svc.CreatePayment(context.Background(), 42, CreatePaymentRequest{
		Amount:    25.0,
		BookingID: &booking.ID,
		Method:    domain.MethodCard,
	})
	if err != nil {
		t.Fatalf("CreatePayment returned error: %v", err)
	}

	if err := db.Model(&domain.Booking{}).Where("id = ?", booking.ID).
		Update("status", domain.BookingCancelled).Error; err != nil {
		t.Fatalf("failed to cancel booking: %v", err)
	}

	processed, err := svc.ProcessPayment(context.Background(), p.ID, 42, domain.RoleUser)
	if err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}
	if processed.Status != domain.PaymentCompleted {
		t.Fatalf("expected payment %s, got %s", domain.PaymentCompleted, processed.Status)
	}

	var b domain.Booking
	if err := db.First(&b, booking.ID).Error; err != nil {
		t.Fatalf("failed to reload booking: %v", err)
	}
	if b.Status != domain.BookingCancelled {
		t.Fatalf("expected booking to stay %s, got %s", domain.BookingCancelled, b.Status)
	}
}

// settlingGateway marks the payment settled through a separate connection
// while the charge is in flight, like a second processor racing this one.
type settlingGateway struct {
	db *gorm.DB
}

func (g settlingGateway) Charge(_ context.Context, p *domain.Payment) (bool, error) {
	err := g.db.Model(&domain.Payment{}).
		Where("id = ?", p.ID).
		Update("status", domain.PaymentCompleted).Error
	return false, err
}

func TestProcessPayment_GatewayErrorKeepsPaymentPending(t *testing.T) {
	svc, db := setupPaymentService(t, stubGateway{err: errors.New("provider unreachable")})
	booking := seedActiveBooking(t, db, 42)

	p, err := svc.CreatePayment(context.Background(), 42, CreatePaymentRequest{
		Amount:    25.0,
		BookingID: &booking.ID,
		Method:    domain.MethodCard,
	})
	if err != nil {
		t.Fatalf("CreatePayment returned error: %v", err)
	}

	if _, err := svc.ProcessPayment(context.Background(), p.ID, 42, domain.RoleUser); err == nil {
		t.Fatal("expected a gateway error")
	}

	var got domain.Payment
	if err := db.First(&got, p.ID).Error; err != nil {
		t.Fatalf("failed to reload payment: %v", err)
	}
	if got.Status != domain.PaymentPending {
		t.Fatalf("expected status %s after gateway failure, got %s", domain.PaymentPending, got.Status)
	}

	// A retry against a healthy provider still settles it.
	retry := NewService(db, repository.NewPaymentRepository(db), stubGateway{approve: true}, nil)
	processed, err := retry.ProcessPayment(context.Background(), p.ID, 42, domain.RoleUser)
	if err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if processed.Status != domain.PaymentCompleted {
		t.Fatalf("expected status %s, got %s", domain.PaymentCompleted, processed.Status)
	}
}

func TestProcessPayment_ConcurrentSettleNotOverwritten(t *testing.T) {
	svc, db := setupPaymentService(t, stubGateway{approve: true})
	booking := seedActiveBooking(t, db, 42)

	p, err := svc.CreatePayment(context.Background(), 42, CreatePaymentRequest{
		Amount:    25.0,
		BookingID: &booking.ID,
		Method:    domain.MethodCard,
	})
	if err != nil {
		t.Fatalf("CreatePayment returned error: %v", err)
	}

	racing := NewService(db, repository.NewPaymentRepository(db), settlingGateway{db: db}, nil)
	if _, err := racing.ProcessPayment(context.Background(), p.ID, 42, domain.RoleUser); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}

	var got domain.Payment
	if err := db.First(&got, p.ID).Error; err != nil {
		t.Fatalf("failed to reload payment: %v", err)
	}
	if got.Status != domain.PaymentCompleted {
		t.Fatalf("the winning settle must stand, got status %s", got.Status)
	}
}
