package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/repository"
	"github.com/satmoko/studio-backend/pkg/email"
	"github.com/satmoko/studio-backend/pkg/notify"
	"github.com/satmoko/studio-backend/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrTopupAlreadyDecided = errors.New("topup request already decided")

// TopupService runs the manual top-up queue. Approval grants credits
// through the same member primitive webhook settlement uses, so the two
// paths cannot diverge.
type TopupService struct {
	db           *gorm.DB
	topups       *repository.TopupRepository
	members      *repository.MemberRepository
	receipts     storage.ReceiptStorage
	notifier     notify.Notifier
	emailService *email.Service
	logger       *zap.Logger
}

func NewTopupService(
	db *gorm.DB,
	topups *repository.TopupRepository,
	members *repository.MemberRepository,
	receipts storage.ReceiptStorage,
	notifier notify.Notifier,
	emailService *email.Service,
	logger *zap.Logger,
) *TopupService {
	return &TopupService{
		db:           db,
		topups:       topups,
		members:      members,
		receipts:     receipts,
		notifier:     notifier,
		emailService: emailService,
		logger:       logger,
	}
}

// Create files a top-up request. When a receipt file is provided and
// storage is configured it is uploaded; otherwise receiptURL is stored
// as given.
func (s *TopupService) Create(ctx context.Context, memberEmail string, req models.CreateTopupRequest, receipt io.Reader, receiptName, contentType, receiptURL string) (*models.TopupRequest, error) {
	member, err := s.members.GetByEmail(memberEmail)
	if err != nil {
		return nil, err
	}

	tid := "TU-" + uuid.NewString()

	if receipt != nil && s.receipts != nil {
		key := fmt.Sprintf("receipts/%s%s", tid, path.Ext(receiptName))
		url, err := s.receipts.Upload(ctx, key, receipt, contentType)
		if err != nil {
			return nil, fmt.Errorf("upload receipt: %w", err)
		}
		receiptURL = url
	}

	topup := &models.TopupRequest{
		TID:        tid,
		Email:      member.Email,
		Amount:     req.Amount,
		Price:      req.Price,
		ReceiptURL: receiptURL,
		Status:     models.TopupStatusPending,
	}
	if err := s.topups.Create(topup); err != nil {
		return nil, err
	}

	go s.notifyNewTopup(topup)

	return topup, nil
}

// Approve grants the credits exactly once: the pending -> approved
// transition and the grant share one transaction.
func (s *TopupService) Approve(tid string) error {
	var approved *models.TopupRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		topups := s.topups.WithTx(tx)

		topup, err := topups.GetByTID(tid)
		if err != nil {
			return err
		}

		applied, err := topups.MarkApproved(tid)
		if err != nil {
			return err
		}
		if !applied {
			return ErrTopupAlreadyDecided
		}

		// Amount-only grant: activation without extending validity.
		if err := s.members.WithTx(tx).Grant(topup.Email, topup.Amount, nil); err != nil {
			return err
		}

		approved = topup
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("topup approved",
		zap.String("tid", approved.TID),
		zap.String("email", approved.Email),
		zap.Int64("amount", approved.Amount))

	go s.emailService.SendTopupApproved(approved.Email, approved.Amount)

	return nil
}

func (s *TopupService) Reject(tid string) error {
	if _, err := s.topups.GetByTID(tid); err != nil {
		return err
	}
	applied, err := s.topups.MarkRejected(tid)
	if err != nil {
		return err
	}
	if !applied {
		return ErrTopupAlreadyDecided
	}
	return nil
}

func (s *TopupService) ListPending() ([]models.TopupRequest, error) {
	return s.topups.ListPending()
}

func (s *TopupService) ListByEmail(email string) ([]models.TopupRequest, error) {
	return s.topups.ListByEmail(email)
}

func (s *TopupService) notifyNewTopup(topup *models.TopupRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	msg := fmt.Sprintf("Topup baru menunggu persetujuan: %s, %d kredit (Rp%d) %s",
		topup.Email, topup.Amount, topup.Price, topup.TID)
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Warn("topup notification failed",
			zap.String("tid", topup.TID),
			zap.Error(err))
	}
}
