package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/satmoko/studio-backend/internal/middleware"
	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/repository"
	"github.com/satmoko/studio-backend/internal/service"
	"github.com/satmoko/studio-backend/pkg/utils"
)

type CreditHandler struct {
	ledger    *service.LedgerService
	validator *utils.Validator
}

func NewCreditHandler(ledger *service.LedgerService, validator *utils.Validator) *CreditHandler {
	return &CreditHandler{
		ledger:    ledger,
		validator: validator,
	}
}

func (h *CreditHandler) GetBalance(c *fiber.Ctx) error {
	email, ok := middleware.MemberEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Not authenticated"))
	}

	balance, err := h.ledger.GetBalance(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(models.BalanceResponse{
		Email:     models.NormalizeEmail(email),
		Credits:   balance,
		Unlimited: h.ledger.IsAdmin(email),
	}, ""))
}

// Deduct charges a feature use before the client invokes the feature.
// An insufficient balance means the feature must not run.
func (h *CreditHandler) Deduct(c *fiber.Ctx) error {
	email, ok := middleware.MemberEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Not authenticated"))
	}

	var req models.DeductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.ledger.Deduct(email, req.Amount); err != nil {
		if errors.Is(err, repository.ErrInsufficientCredits) {
			return c.Status(fiber.StatusPaymentRequired).JSON(models.ErrorResponse("Insufficient credits"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	balance, err := h.ledger.GetBalance(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"feature":   req.Feature,
		"deducted":  req.Amount,
		"remaining": balance,
	}, "Credits deducted"))
}
