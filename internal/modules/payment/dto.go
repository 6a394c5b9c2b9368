package payment

import "parkhub/internal/domain"

type CreatePaymentRequest struct {
	Amount    float64              `json:"amount" binding:"required,gt=0"`
	BookingID *int64               `json:"booking_id"`
	Method    domain.PaymentMethod `json:"method" binding:"required,oneof=CASH CARD"`
}
