package parking

import "time"

type BookSlotRequest struct {
	ParkingSlotID int64     `json:"parking_slot_id" binding:"required"`
	VehicleID     int64     `json:"vehicle_id" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
}

type ExtendBookingRequest struct {
	BookingID       int64 `json:"booking_id" binding:"required"`
	AdditionalHours int   `json:"additional_hours" binding:"required,gt=0"`
}

type CreateSlotRequest struct {
	Number      string `json:"number" binding:"required"`
	Floor       int    `json:"floor"`
	IsAvailable *bool  `json:"is_available"`
}

type BulkCreateSlotsRequest struct {
	Slots []CreateSlotRequest `json:"slots" binding:"required,min=1,dive"`
}

type BulkCreateResult struct {
	Count int `json:"count"`
}
