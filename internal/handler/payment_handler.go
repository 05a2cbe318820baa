package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/satmoko/studio-backend/internal/middleware"
	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/service"
	"github.com/satmoko/studio-backend/pkg/payment"
	"github.com/satmoko/studio-backend/pkg/utils"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *utils.Validator
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, validator *utils.Validator, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator,
		logger:         logger,
	}
}

func (h *PaymentHandler) GetPlans(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(models.Plans(), ""))
}

func (h *PaymentHandler) Checkout(c *fiber.Ctx) error {
	email, ok := middleware.MemberEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Not authenticated"))
	}

	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	resp, err := h.paymentService.Checkout(c.UserContext(), email, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPlan):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Unknown plan"))
		case errors.Is(err, payment.ErrNotConfigured):
			// Configuration error, distinct from a provider error.
			return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse("Payment gateway is not configured"))
		default:
			return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse(err.Error()))
		}
	}

	return c.JSON(models.SuccessResponse(resp, "Checkout token issued"))
}

// HandleNotification is the provider-facing webhook. It acknowledges
// with 200 whenever the payload parses, even on rejection: providers
// retry aggressively on non-2xx and an invalid signature will not
// become valid on retry.
func (h *PaymentHandler) HandleNotification(c *fiber.Ctx) error {
	var n models.GatewayNotification
	if err := c.BodyParser(&n); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid notification payload"))
	}

	if err := h.paymentService.HandleNotification(&n); err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			return c.JSON(models.ErrorResponse("Invalid signature"))
		}
		h.logger.Error("notification processing failed",
			zap.String("order_id", n.OrderID),
			zap.Error(err))
		return c.JSON(models.ErrorResponse("Notification not applied"))
	}

	return c.JSON(models.SuccessResponse(nil, "OK"))
}

func (h *PaymentHandler) GetHistory(c *fiber.Ctx) error {
	email, ok := middleware.MemberEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Not authenticated"))
	}

	orders, err := h.paymentService.History(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(orders, ""))
}
