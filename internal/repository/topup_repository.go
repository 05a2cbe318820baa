package repository

import (
	"errors"

	"github.com/satmoko/studio-backend/internal/models"
	"gorm.io/gorm"
)

type TopupRepository struct {
	db *gorm.DB
}

func NewTopupRepository(db *gorm.DB) *TopupRepository {
	return &TopupRepository{
		db: db,
	}
}

func (r *TopupRepository) WithTx(tx *gorm.DB) *TopupRepository {
	return &TopupRepository{db: tx}
}

func (r *TopupRepository) Create(topup *models.TopupRequest) error {
	return r.db.Create(topup).Error
}

func (r *TopupRepository) GetByTID(tid string) (*models.TopupRequest, error) {
	var topup models.TopupRequest
	err := r.db.Where("tid = ?", tid).First(&topup).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTopupNotFound
	}
	if err != nil {
		return nil, err
	}
	return &topup, nil
}

func (r *TopupRepository) ListPending() ([]models.TopupRequest, error) {
	var topups []models.TopupRequest
	err := r.db.Where("status = ?", models.TopupStatusPending).
		Order("created_at ASC").
		Find(&topups).Error
	return topups, err
}

func (r *TopupRepository) ListByEmail(email string) ([]models.TopupRequest, error) {
	var topups []models.TopupRequest
	err := r.db.Where("email = ?", models.NormalizeEmail(email)).
		Order("created_at DESC").
		Find(&topups).Error
	return topups, err
}

// MarkApproved transitions pending -> approved; false means the request
// was already decided, so the grant must not be applied again.
func (r *TopupRepository) MarkApproved(tid string) (bool, error) {
	return r.transition(tid, models.TopupStatusApproved)
}

func (r *TopupRepository) MarkRejected(tid string) (bool, error) {
	return r.transition(tid, models.TopupStatusRejected)
}

func (r *TopupRepository) transition(tid string, to models.TopupStatus) (bool, error) {
	res := r.db.Model(&models.TopupRequest{}).
		Where("tid = ? AND status = ?", tid, models.TopupStatusPending).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
