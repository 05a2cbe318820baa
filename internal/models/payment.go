package models

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusSettled OrderStatus = "settled"
	OrderStatusFailed  OrderStatus = "failed"
)

// PaymentOrder is one checkout attempt. The pending row carries the
// credits and validity the member will receive once the gateway
// reports settlement.
type PaymentOrder struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	OrderID      string      `json:"order_id" gorm:"uniqueIndex;not null"`
	Email        string      `json:"email" gorm:"index;not null"`
	PlanID       string      `json:"plan_id" gorm:"not null"`
	Credits      int64       `json:"credits" gorm:"not null"`
	DurationDays int         `json:"duration_days" gorm:"not null"`
	GrossAmount  int64       `json:"gross_amount" gorm:"not null"`
	SnapToken    string      `json:"-"`
	Status       OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type CheckoutRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// GatewayNotification is the payment provider's webhook payload.
// gross_amount arrives as a string ("249000.00") and participates in the
// signature as-is, so it is never parsed into a number here.
type GatewayNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}
