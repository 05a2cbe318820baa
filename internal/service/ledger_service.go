package service

import (
	"errors"
	"math"

	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/repository"
	"go.uber.org/zap"
)

// UnlimitedCredits is the sentinel balance reported for admin
// identities. It is never stored.
const UnlimitedCredits = int64(math.MaxInt32)

var ErrInvalidAmount = errors.New("amount must be positive")

// LedgerService owns the per-account credit balance. Admin identities
// from the allow-list bypass metering entirely.
type LedgerService struct {
	members *repository.MemberRepository
	admins  map[string]struct{}
	logger  *zap.Logger
}

func NewLedgerService(members *repository.MemberRepository, adminEmails []string, logger *zap.Logger) *LedgerService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[models.NormalizeEmail(e)] = struct{}{}
	}
	return &LedgerService{
		members: members,
		admins:  admins,
		logger:  logger,
	}
}

func (s *LedgerService) IsAdmin(email string) bool {
	_, ok := s.admins[models.NormalizeEmail(email)]
	return ok
}

func (s *LedgerService) GetBalance(email string) (int64, error) {
	if s.IsAdmin(email) {
		return UnlimitedCredits, nil
	}
	return s.members.GetBalance(email)
}

// Deduct charges a feature use. A store failure is surfaced, never
// reported as success: granting a feature without charging (or the
// reverse) is worse than failing the request.
func (s *LedgerService) Deduct(email string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if s.IsAdmin(email) {
		return nil
	}
	if err := s.members.Deduct(email, amount); err != nil {
		if !errors.Is(err, repository.ErrInsufficientCredits) {
			s.logger.Error("credit deduction failed",
				zap.String("email", models.NormalizeEmail(email)),
				zap.Int64("amount", amount),
				zap.Error(err))
		}
		return err
	}
	return nil
}

func (s *LedgerService) Credit(email string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if s.IsAdmin(email) {
		return nil
	}
	return s.members.Credit(email, amount)
}
