package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	MethodCash PaymentMethod = "CASH"
	MethodCard PaymentMethod = "CARD"
)

type Payment struct {
	ID        int64         `json:"id" gorm:"primaryKey"`
	Amount    float64       `json:"amount" gorm:"not null" validate:"required,gte=0"`
	BookingID *int64        `json:"booking_id,omitempty" gorm:"index"`
	UserID    int64         `json:"user_id" gorm:"not null;index"`
	Method    PaymentMethod `json:"method" gorm:"type:varchar(16);not null"`
	Status    PaymentStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Payment) TableName() string { return "payments" }
