package parking

import "parkhub/internal/domain"

// SlotEventPublisher receives occupancy changes after a reservation
// transaction commits. Implemented by the events hub; may be nil.
type SlotEventPublisher interface {
	PublishSlotChange(slot domain.ParkingSlot)
}
