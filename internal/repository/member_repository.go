package repository

import (
	"errors"
	"time"

	"github.com/satmoko/studio-backend/internal/models"
	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given
// transaction, so multi-row updates can share one commit.
func (r *MemberRepository) WithTx(tx *gorm.DB) *MemberRepository {
	return &MemberRepository{db: tx}
}

func (r *MemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

func (r *MemberRepository) GetByEmail(email string) (*models.Member, error) {
	var member models.Member
	err := r.db.Where("email = ?", models.NormalizeEmail(email)).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Member{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

// GetBalance reads the stored balance. An unknown member reads as zero,
// which matches how a fresh, never-activated account behaves.
func (r *MemberRepository) GetBalance(email string) (int64, error) {
	member, err := r.GetByEmail(email)
	if errors.Is(err, ErrMemberNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return member.Credits, nil
}

// Deduct performs the check-and-decrement as a single conditional
// UPDATE. The WHERE clause carries the sufficiency check, so two
// concurrent deductions can never both pass against a stale read.
func (r *MemberRepository) Deduct(email string, amount int64) error {
	res := r.db.Model(&models.Member{}).
		Where("email = ? AND credits >= ?", models.NormalizeEmail(email), amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientCredits
	}
	return nil
}

// Credit adds to the balance with an atomic increment, never
// read-modify-write.
func (r *MemberRepository) Credit(email string, amount int64) error {
	res := r.db.Model(&models.Member{}).
		Where("email = ?", models.NormalizeEmail(email)).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// Grant is the single activation primitive shared by webhook settlement
// and manual topup approval: add credits, mark the member active and,
// when validUntil is set, extend the membership.
func (r *MemberRepository) Grant(email string, credits int64, validUntil *time.Time) error {
	updates := map[string]interface{}{
		"credits": gorm.Expr("credits + ?", credits),
		"status":  models.MemberStatusActive,
	}
	if validUntil != nil {
		updates["valid_until"] = *validUntil
	}
	res := r.db.Model(&models.Member{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepository) Heartbeat(email string, at time.Time) error {
	return r.db.Model(&models.Member{}).
		Where("email = ?", models.NormalizeEmail(email)).
		UpdateColumn("last_seen", at).Error
}
