package repository

import (
	"errors"

	"github.com/satmoko/studio-backend/internal/models"
	"gorm.io/gorm"
)

type PaymentOrderRepository struct {
	db *gorm.DB
}

func NewPaymentOrderRepository(db *gorm.DB) *PaymentOrderRepository {
	return &PaymentOrderRepository{
		db: db,
	}
}

func (r *PaymentOrderRepository) WithTx(tx *gorm.DB) *PaymentOrderRepository {
	return &PaymentOrderRepository{db: tx}
}

func (r *PaymentOrderRepository) Create(order *models.PaymentOrder) error {
	return r.db.Create(order).Error
}

func (r *PaymentOrderRepository) GetByOrderID(orderID string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	err := r.db.Where("order_id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkSettled transitions pending -> settled. The returned bool is the
// idempotency signal: false means another delivery of the same
// notification already won the transition and no credit may be applied.
func (r *PaymentOrderRepository) MarkSettled(orderID string) (bool, error) {
	res := r.db.Model(&models.PaymentOrder{}).
		Where("order_id = ? AND status = ?", orderID, models.OrderStatusPending).
		Update("status", models.OrderStatusSettled)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PaymentOrderRepository) MarkFailed(orderID string) (bool, error) {
	res := r.db.Model(&models.PaymentOrder{}).
		Where("order_id = ? AND status = ?", orderID, models.OrderStatusPending).
		Update("status", models.OrderStatusFailed)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PaymentOrderRepository) GetHistory(email string) ([]models.PaymentOrder, error) {
	var orders []models.PaymentOrder
	err := r.db.Where("email = ?", models.NormalizeEmail(email)).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
