package payment

import (
	"context"

	"parkhub/internal/domain"
)

// Gateway settles a payment with the provider. The default implementation
// only simulates one; real integration is out of scope.
type Gateway interface {
	Charge(ctx context.Context, p *domain.Payment) (bool, error)
}

// SlotEventPublisher receives occupancy changes when a completed payment
// finishes its booking. May be nil.
type SlotEventPublisher interface {
	PublishSlotChange(slot domain.ParkingSlot)
}
