package models

import "time"

type TopupStatus string

const (
	TopupStatusPending  TopupStatus = "pending"
	TopupStatusApproved TopupStatus = "approved"
	TopupStatusRejected TopupStatus = "rejected"
)

// TopupRequest is the manual top-up queue: a member uploads a bank
// transfer receipt, an admin approves or rejects it. Approval grants
// credits through the same path the payment webhook uses.
type TopupRequest struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	TID        string      `json:"tid" gorm:"column:tid;uniqueIndex;not null"`
	Email      string      `json:"email" gorm:"index;not null"`
	Amount     int64       `json:"amount" gorm:"not null"`
	Price      int64       `json:"price" gorm:"not null"`
	ReceiptURL string      `json:"receipt_url"`
	Status     TopupStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type CreateTopupRequest struct {
	Amount int64 `json:"amount" form:"amount" validate:"required,gt=0"`
	Price  int64 `json:"price" form:"price" validate:"required,gt=0"`
}
