package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/repository"
	"github.com/satmoko/studio-backend/pkg/email"
	"github.com/satmoko/studio-backend/pkg/notify"
	"github.com/satmoko/studio-backend/pkg/payment"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUnknownPlan      = errors.New("unknown plan")
	ErrInvalidSignature = errors.New("invalid signature")
)

// TokenIssuer requests checkout tokens from the payment gateway.
type TokenIssuer interface {
	CreateTransaction(ctx context.Context, txn payment.TransactionRequest) (*payment.TransactionResponse, error)
}

type PaymentService struct {
	db           *gorm.DB
	gateway      TokenIssuer
	members      *repository.MemberRepository
	orders       *repository.PaymentOrderRepository
	notifier     notify.Notifier
	emailService *email.Service
	serverKey    string
	logger       *zap.Logger
}

func NewPaymentService(
	db *gorm.DB,
	gateway TokenIssuer,
	members *repository.MemberRepository,
	orders *repository.PaymentOrderRepository,
	notifier notify.Notifier,
	emailService *email.Service,
	serverKey string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		db:           db,
		gateway:      gateway,
		members:      members,
		orders:       orders,
		notifier:     notifier,
		emailService: emailService,
		serverKey:    serverKey,
		logger:       logger,
	}
}

// Checkout resolves the plan, requests a token from the gateway and
// records the pending order the webhook will later settle.
func (s *PaymentService) Checkout(ctx context.Context, memberEmail, planID string) (*models.CheckoutResponse, error) {
	plan, ok := models.GetPlan(planID)
	if !ok {
		return nil, ErrUnknownPlan
	}

	member, err := s.members.GetByEmail(memberEmail)
	if err != nil {
		return nil, err
	}

	orderID := "SS-" + uuid.NewString()

	resp, err := s.gateway.CreateTransaction(ctx, payment.TransactionRequest{
		OrderID:     orderID,
		GrossAmount: plan.Price,
		Email:       member.Email,
		FullName:    member.FullName,
	})
	if err != nil {
		return nil, err
	}

	order := &models.PaymentOrder{
		OrderID:      orderID,
		Email:        member.Email,
		PlanID:       plan.ID,
		Credits:      plan.Credits,
		DurationDays: plan.DurationDays,
		GrossAmount:  plan.Price,
		SnapToken:    resp.Token,
		Status:       models.OrderStatusPending,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	return &models.CheckoutResponse{
		OrderID:     orderID,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// HandleNotification applies a webhook notification. The caller always
// acknowledges the provider with 200; the returned error is for logging
// and the response body only.
func (s *PaymentService) HandleNotification(n *models.GatewayNotification) error {
	if !payment.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, s.serverKey, n.SignatureKey) {
		s.logger.Warn("rejected webhook with invalid signature",
			zap.String("order_id", n.OrderID),
			zap.String("transaction_status", n.TransactionStatus))
		return ErrInvalidSignature
	}

	switch n.TransactionStatus {
	case "settlement", "capture":
		if n.FraudStatus == "challenge" {
			s.logger.Info("holding challenged transaction",
				zap.String("order_id", n.OrderID))
			return nil
		}
		return s.ApplySettlement(n.OrderID)
	case "deny", "cancel", "expire":
		if _, err := s.orders.MarkFailed(n.OrderID); err != nil {
			return err
		}
		return nil
	default:
		// pending, authorize and friends carry no state change.
		return nil
	}
}

// ApplySettlement activates the member behind an order exactly once.
// The pending -> settled transition and the credit grant share one
// transaction; replaying the same settlement is a no-op.
func (s *PaymentService) ApplySettlement(orderID string) error {
	var settled *models.PaymentOrder

	err := s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)

		order, err := orders.GetByOrderID(orderID)
		if err != nil {
			return err
		}

		applied, err := orders.MarkSettled(orderID)
		if err != nil {
			return err
		}
		if !applied {
			// Duplicate delivery; the first one already credited.
			return nil
		}

		validUntil := time.Now().AddDate(0, 0, order.DurationDays)
		if err := s.members.WithTx(tx).Grant(order.Email, order.Credits, &validUntil); err != nil {
			return err
		}

		settled = order
		return nil
	})
	if err != nil {
		return err
	}
	if settled == nil {
		return nil
	}

	s.logger.Info("settlement applied",
		zap.String("order_id", settled.OrderID),
		zap.String("email", settled.Email),
		zap.Int64("credits", settled.Credits))

	// Side effects are fire-and-forget; the provider response never
	// depends on them.
	go s.notifySettlement(settled)

	return nil
}

func (s *PaymentService) notifySettlement(order *models.PaymentOrder) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	msg := fmt.Sprintf("Pembayaran settle: %s (%s) +%d kredit, %s",
		order.Email, order.PlanID, order.Credits, order.OrderID)
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Warn("settlement notification failed",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}

	member, err := s.members.GetByEmail(order.Email)
	if err != nil || member.ValidUntil == nil {
		return
	}
	s.emailService.SendActivationReceipt(member.Email, member.FullName, order.Credits, *member.ValidUntil)
}

func (s *PaymentService) History(email string) ([]models.PaymentOrder, error) {
	return s.orders.GetHistory(email)
}
